package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"
)

// ErrNotTerminal is returned by Open when stdin is not a terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// escTimeout is how long ReadKey waits for the rest of an unfinished
// escape sequence.
const escTimeout = 50 * time.Millisecond

// Term is the Port backed by the process's stdin/stdout.
type Term struct {
	in       *os.File
	out      *os.File
	fd       int
	oldState *term.State

	// pending holds bytes read past the last decoded key.
	pending []byte
	line    *term.Terminal
}

// Open puts stdin into raw mode. Close must be called to restore it.
func Open() (*Term, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	return &Term{
		in:       os.Stdin,
		out:      os.Stdout,
		fd:       fd,
		oldState: oldState,
	}, nil
}

// Close restores the terminal state saved by Open.
func (t *Term) Close() error {
	if t.oldState == nil {
		return nil
	}
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	return err
}

// ReadKey blocks until one key press is decoded. Bytes that belong to
// later keys are kept for the next call.
func (t *Term) ReadKey() (Key, error) {
	if len(t.pending) == 0 {
		buf := make([]byte, 64)
		n, err := t.in.Read(buf)
		if err != nil {
			return Key{}, err
		}
		if n == 0 {
			return Key{}, io.EOF
		}
		t.pending = append(t.pending, buf[:n]...)
	}

	// An escape sequence split across reads gets escTimeout to complete.
	for partialEscape(t.pending) {
		extra := make([]byte, 8)
		en := t.readWithTimeout(extra, escTimeout)
		if en == 0 {
			break
		}
		t.pending = append(t.pending, extra[:en]...)
	}

	key, used := decodeKey(t.pending)
	t.pending = t.pending[used:]
	return key, nil
}

// ReadLine reads one edited line using the x/term line editor. The editor
// is fed one byte at a time so keys typed after Enter stay queued for
// ReadKey.
func (t *Term) ReadLine() (string, error) {
	if t.line == nil {
		t.line = term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{byteReader{pendingReader{t}}, t.out}, "")
	}
	return t.line.ReadLine()
}

// partialEscape reports whether b starts with an ESC, CSI or SS3 sequence
// that is still missing bytes.
func partialEscape(b []byte) bool {
	if len(b) == 0 || b[0] != 0x1b {
		return false
	}
	if len(b) == 1 {
		return true
	}
	switch b[1] {
	case '[':
		for _, c := range b[2:] {
			if c >= 0x40 && c <= 0x7e {
				return false
			}
		}
		return true
	case 'O':
		return len(b) == 2
	}
	return false
}

// readWithTimeout tries to read from stdin within the given duration.
// Returns the byte count, or 0 if the timeout expires.
func (t *Term) readWithTimeout(buf []byte, timeout time.Duration) int {
	syscall.SetNonblock(t.fd, true)
	defer syscall.SetNonblock(t.fd, false)

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		n, err := t.in.Read(buf)
		if n > 0 {
			return n
		}
		if err != nil && !errors.Is(err, syscall.EAGAIN) {
			return 0
		}
		time.Sleep(5 * time.Millisecond)
	}
	return 0
}

// pendingReader drains bytes queued by ReadKey before reading stdin.
type pendingReader struct {
	t *Term
}

func (r pendingReader) Read(p []byte) (int, error) {
	if len(r.t.pending) > 0 {
		n := copy(p, r.t.pending)
		r.t.pending = r.t.pending[n:]
		return n, nil
	}
	return r.t.in.Read(p)
}

// byteReader limits every Read to a single byte.
type byteReader struct {
	r io.Reader
}

func (b byteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return b.r.Read(p)
}
