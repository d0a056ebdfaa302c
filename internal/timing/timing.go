// Package timing measures where a completion session spends its time:
// coarse phase marks (config load, session run) and the latency of
// individual fetch ticks while background sources stream candidates.
package timing

import (
	"fmt"
	"time"
)

// Timer tracks the coarse phases of one invocation.
type Timer struct {
	start time.Time
	marks map[string]time.Duration
	order []string // mark order, for consistent summaries
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{
		start: time.Now(),
		marks: make(map[string]time.Duration),
	}
}

// Mark records a checkpoint with a label and returns the elapsed time.
func (t *Timer) Mark(label string) time.Duration {
	elapsed := time.Since(t.start)
	t.marks[label] = elapsed
	t.order = append(t.order, label)
	return elapsed
}

// Elapsed returns the total time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Get returns the duration recorded for a label.
func (t *Timer) Get(label string) (time.Duration, bool) {
	d, ok := t.marks[label]
	return d, ok
}

// Summary formats all marks in recording order.
func (t *Timer) Summary() string {
	summary := fmt.Sprintf("Total: %.3fms", ms(t.Elapsed()))

	if len(t.marks) > 0 {
		summary += " ("
		for i, label := range t.order {
			if i > 0 {
				summary += ", "
			}
			summary += fmt.Sprintf("%s: %.3fms", label, ms(t.marks[label]))
		}
		summary += ")"
	}

	return summary
}

// TickMeter aggregates fetch-tick latency. A tick is one request/response
// round-trip with a completer; while a background walker streams, ticks
// fire at the poll cadence, so only aggregates are kept.
type TickMeter struct {
	count int
	total time.Duration
	max   time.Duration
}

// Observe records one tick.
func (m *TickMeter) Observe(d time.Duration) {
	m.count++
	m.total += d
	if d > m.max {
		m.max = d
	}
}

// Count returns the number of ticks observed.
func (m *TickMeter) Count() int { return m.count }

// Average returns the mean tick duration, or zero before the first tick.
func (m *TickMeter) Average() time.Duration {
	if m.count == 0 {
		return 0
	}
	return m.total / time.Duration(m.count)
}

// Max returns the slowest tick seen.
func (m *TickMeter) Max() time.Duration { return m.max }

// Summary formats the aggregates.
func (m *TickMeter) Summary() string {
	return fmt.Sprintf("ticks: %d, avg: %.3fms, max: %.3fms", m.count, ms(m.Average()), ms(m.max))
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
