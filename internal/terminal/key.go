package terminal

import (
	"fmt"
	"unicode/utf8"
)

// KeyCode identifies a decoded key press.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyHome
	KeyEnd
	KeyDelete
	KeyCtrlC
)

func (c KeyCode) String() string {
	switch c {
	case KeyRune:
		return "Rune"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeyBackspace:
		return "Backspace"
	case KeyTab:
		return "Tab"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyDelete:
		return "Delete"
	case KeyCtrlC:
		return "Ctrl+C"
	default:
		return "Unknown"
	}
}

// Key is a single key press. Rune is only set for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// Char returns a KeyRune key for r.
func Char(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Is reports whether k is the printable character r.
func (k Key) Is(r rune) bool {
	return k.Code == KeyRune && k.Rune == r
}

func (k Key) String() string {
	if k.Code == KeyRune {
		return fmt.Sprintf("%q", k.Rune)
	}
	return k.Code.String()
}

// decodeKey decodes the first key in b and returns it together with the
// number of bytes it used. b must not be empty.
func decodeKey(b []byte) (Key, int) {
	switch b[0] {
	case 0x1b:
		return decodeEscape(b)
	case 13, 10:
		return Key{Code: KeyEnter}, 1
	case 9:
		return Key{Code: KeyTab}, 1
	case 127, 8:
		return Key{Code: KeyBackspace}, 1
	case 3:
		return Key{Code: KeyCtrlC}, 1
	}

	if b[0] < 32 {
		return Key{Code: KeyUnknown}, 1
	}

	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return Key{Code: KeyUnknown}, 1
	}
	return Char(r), size
}

// decodeEscape handles ESC, CSI (ESC [) and SS3 (ESC O) sequences.
func decodeEscape(b []byte) (Key, int) {
	if len(b) == 1 {
		return Key{Code: KeyEscape}, 1
	}

	switch b[1] {
	case '[':
		return decodeCSI(b)
	case 'O':
		if len(b) < 3 {
			return Key{Code: KeyEscape}, 1
		}
		if code, ok := finalKey(b[2]); ok {
			return Key{Code: code}, 3
		}
		return Key{Code: KeyUnknown}, 3
	}

	// Esc followed by an ordinary byte: report the Esc alone, the byte
	// stays queued as the next key.
	return Key{Code: KeyEscape}, 1
}

func decodeCSI(b []byte) (Key, int) {
	// Parameters and intermediates run until a final byte in 0x40..0x7e.
	end := -1
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			end = i
			break
		}
	}
	if end < 0 {
		return Key{Code: KeyEscape}, 1
	}

	final := b[end]
	params := string(b[2:end])
	n := end + 1

	if final == '~' {
		switch params {
		case "1", "7":
			return Key{Code: KeyHome}, n
		case "4", "8":
			return Key{Code: KeyEnd}, n
		case "3":
			return Key{Code: KeyDelete}, n
		}
		return Key{Code: KeyUnknown}, n
	}

	if code, ok := finalKey(final); ok {
		return Key{Code: code}, n
	}
	return Key{Code: KeyUnknown}, n
}

func finalKey(c byte) (KeyCode, bool) {
	switch c {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	case 'H':
		return KeyHome, true
	case 'F':
		return KeyEnd, true
	}
	return KeyUnknown, false
}
