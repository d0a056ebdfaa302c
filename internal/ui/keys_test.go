package ui

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readOne(t *testing.T, input string) Key {
	t.Helper()
	key, err := ReadKey(bufio.NewReader(strings.NewReader(input)))
	require.NoError(t, err)
	return key
}

func TestReadKey_ControlKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  KeyKind
	}{
		{"ctrl-c", "\x03", KeyCtrlC},
		{"carriage return", "\r", KeyEnter},
		{"newline", "\n", KeyEnter},
		{"tab", "\t", KeyTab},
		{"delete", "\x7f", KeyBackspace},
		{"backspace", "\x08", KeyBackspace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, readOne(t, tt.input).Kind)
		})
	}
}

func TestReadKey_EscapeSequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  KeyKind
	}{
		{"up", "\x1b[A", KeyUp},
		{"down", "\x1b[B", KeyDown},
		{"right", "\x1b[C", KeyRight},
		{"left", "\x1b[D", KeyLeft},
		{"home", "\x1b[H", KeyHome},
		{"end", "\x1b[F", KeyEnd},
		{"application home", "\x1bOH", KeyHome},
		{"home tilde", "\x1b[1~", KeyHome},
		{"end tilde", "\x1b[4~", KeyEnd},
		{"page up", "\x1b[5~", KeyPageUp},
		{"page down", "\x1b[6~", KeyPageDown},
		{"unknown tilde", "\x1b[3~", KeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, readOne(t, tt.input).Kind)
		})
	}
}

func TestReadKey_BareEscape(t *testing.T) {
	// A lone ESC with nothing buffered behind it is the escape key.
	assert.Equal(t, KeyEscape, readOne(t, "\x1b").Kind)
}

func TestReadKey_Runes(t *testing.T) {
	key := readOne(t, "a")
	assert.Equal(t, KeyRune, key.Kind)
	assert.Equal(t, 'a', key.Rune)

	key = readOne(t, "é")
	assert.Equal(t, KeyRune, key.Kind)
	assert.Equal(t, 'é', key.Rune)
}

func TestReadKey_Sequence(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("ab\x1b[B\r"))

	expected := []Key{
		{Kind: KeyRune, Rune: 'a'},
		{Kind: KeyRune, Rune: 'b'},
		{Kind: KeyDown},
		{Kind: KeyEnter},
	}
	for _, want := range expected {
		key, err := ReadKey(r)
		require.NoError(t, err)
		assert.Equal(t, want, key)
	}

	_, err := ReadKey(r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadKey_IgnoresOtherControlBytes(t *testing.T) {
	assert.Equal(t, KeyUnknown, readOne(t, "\x01").Kind)
}

func TestReadKeys_OneKeyPerRequest(t *testing.T) {
	requests := make(chan struct{})
	keys := make(chan Key)
	go readKeys(strings.NewReader("xy"), requests, keys)

	requests <- struct{}{}
	assert.Equal(t, Key{Kind: KeyRune, Rune: 'x'}, <-keys)

	requests <- struct{}{}
	assert.Equal(t, Key{Kind: KeyRune, Rune: 'y'}, <-keys)

	// Input exhausted: the next read fails and the key channel closes.
	requests <- struct{}{}
	_, ok := <-keys
	assert.False(t, ok)
}
