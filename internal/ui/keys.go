package ui

import (
	"bufio"
	"io"
	"unicode"
)

// KeyKind identifies a decoded keystroke.
type KeyKind int

// Key kinds understood by the interaction loop.
const (
	KeyRune KeyKind = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyCtrlC
	KeyUnknown
)

// Key is one decoded keystroke. Rune is set for KeyRune only.
type Key struct {
	Kind KeyKind
	Rune rune
}

// ReadKey decodes the next keystroke from a raw-mode terminal.
func ReadKey(r *bufio.Reader) (Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return Key{}, err
	}

	switch b {
	case 0x03:
		return Key{Kind: KeyCtrlC}, nil
	case '\r', '\n':
		return Key{Kind: KeyEnter}, nil
	case '\t':
		return Key{Kind: KeyTab}, nil
	case 0x7f, 0x08:
		return Key{Kind: KeyBackspace}, nil
	case 0x1b:
		return readEscape(r)
	}

	if b < 0x20 {
		// Other control bytes carry no meaning here.
		return Key{Kind: KeyUnknown}, nil
	}
	if err := r.UnreadByte(); err != nil {
		return Key{}, err
	}
	ru, _, err := r.ReadRune()
	if err != nil {
		return Key{}, err
	}
	if !unicode.IsPrint(ru) {
		return Key{Kind: KeyUnknown}, nil
	}
	return Key{Kind: KeyRune, Rune: ru}, nil
}

// readEscape decodes the remainder of an escape sequence. A terminal writes
// a full sequence in one go, so a lone ESC with nothing buffered behind it
// is the escape key itself.
func readEscape(r *bufio.Reader) (Key, error) {
	if r.Buffered() == 0 {
		return Key{Kind: KeyEscape}, nil
	}
	b, err := r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	if b != '[' && b != 'O' {
		return Key{Kind: KeyUnknown}, nil
	}

	code, err := r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	switch code {
	case 'A':
		return Key{Kind: KeyUp}, nil
	case 'B':
		return Key{Kind: KeyDown}, nil
	case 'C':
		return Key{Kind: KeyRight}, nil
	case 'D':
		return Key{Kind: KeyLeft}, nil
	case 'H':
		return Key{Kind: KeyHome}, nil
	case 'F':
		return Key{Kind: KeyEnd}, nil
	}

	if code < '0' || code > '9' {
		return Key{Kind: KeyUnknown}, nil
	}
	// Sequences of the form ESC [ <digits> ~ .
	digits := []byte{code}
	for {
		b, err := r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		if b >= '0' && b <= '9' {
			digits = append(digits, b)
			continue
		}
		if b != '~' {
			return Key{Kind: KeyUnknown}, nil
		}
		break
	}
	switch string(digits) {
	case "1", "7":
		return Key{Kind: KeyHome}, nil
	case "4", "8":
		return Key{Kind: KeyEnd}, nil
	case "5":
		return Key{Kind: KeyPageUp}, nil
	case "6":
		return Key{Kind: KeyPageDown}, nil
	default:
		return Key{Kind: KeyUnknown}, nil
	}
}

// readKeys is the reader goroutine: it decodes one key per request token
// and stops when the request channel closes or the tty reaches EOF. At most
// one key is ever in flight.
func readKeys(r io.Reader, requests <-chan struct{}, keys chan<- Key) {
	reader := bufio.NewReader(r)
	for range requests {
		key, err := ReadKey(reader)
		if err != nil {
			close(keys)
			return
		}
		keys <- key
	}
}
