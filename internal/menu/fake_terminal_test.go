package menu

import (
	"errors"
	"strings"
	"sync"

	"github.com/moasq/termpick/internal/terminal"
)

var errNoMoreKeys = errors.New("script exhausted")

// fakeTerminal is a scripted Port: fixed size, queued keys and a record of
// every frame drawn.
type fakeTerminal struct {
	mu sync.Mutex

	rows, cols int
	sizeErr    error
	readErr    error

	keys  []terminal.Key
	lines []string

	// keyGate, when set, blocks ReadKey until it is closed.
	keyGate chan struct{}

	frames        [][]string // rows written between clears
	curRow        int
	clears        int
	cursorVisible bool
	calls         []string

	clearWaiters map[int]chan struct{}
}

func newFakeTerminal(rows, cols int, keys ...terminal.Key) *fakeTerminal {
	return &fakeTerminal{
		rows:          rows,
		cols:          cols,
		keys:          keys,
		cursorVisible: true,
		clearWaiters:  make(map[int]chan struct{}),
	}
}

func (f *fakeTerminal) Size() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sizeErr != nil {
		return 0, 0, f.sizeErr
	}
	return f.rows, f.cols, nil
}

func (f *fakeTerminal) ClearScreen() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.calls = append(f.calls, "clear")
	f.frames = append(f.frames, nil)
	f.curRow = 0
	if ch, ok := f.clearWaiters[f.clears]; ok {
		close(ch)
		delete(f.clearWaiters, f.clears)
	}
	return nil
}

func (f *fakeTerminal) MoveCursorTo(_, row int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.curRow = row
	return nil
}

func (f *fakeTerminal) ShowCursor() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursorVisible = true
	f.calls = append(f.calls, "show")
	return nil
}

func (f *fakeTerminal) HideCursor() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursorVisible = false
	f.calls = append(f.calls, "hide")
	return nil
}

func (f *fakeTerminal) ReadKey() (terminal.Key, error) {
	f.mu.Lock()
	gate := f.keyGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return terminal.Key{}, f.readErr
	}
	if len(f.keys) == 0 {
		return terminal.Key{}, errNoMoreKeys
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, nil
}

func (f *fakeTerminal) ReadLine() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.lines) == 0 {
		return "", errNoMoreKeys
	}
	l := f.lines[0]
	f.lines = f.lines[1:]
	return l, nil
}

func (f *fakeTerminal) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.frames) == 0 {
		f.frames = append(f.frames, nil)
	}
	frame := f.frames[len(f.frames)-1]
	for len(frame) <= f.curRow {
		frame = append(frame, "")
	}
	frame[f.curRow] += string(p)
	f.frames[len(f.frames)-1] = frame
	return len(p), nil
}

// waitForClears returns a channel closed once the screen has been cleared
// n times in total.
func (f *fakeTerminal) waitForClears(n int) <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	if f.clears >= n {
		close(ch)
		return ch
	}
	f.clearWaiters[n] = ch
	return ch
}

// lastFrame returns the most recent frame that has any rows drawn.
func (f *fakeTerminal) lastFrame() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.frames) - 1; i >= 0; i-- {
		if len(f.frames[i]) > 0 {
			return f.frames[i]
		}
	}
	return nil
}

func (f *fakeTerminal) drawnFrames() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, fr := range f.frames {
		if len(fr) > 0 {
			n++
		}
	}
	return n
}

func (f *fakeTerminal) callLog() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.calls, ",")
}

// markStyle prefixes rows so tests can tell selected and normal rows apart.
type markStyle string

func (s markStyle) Render(strs ...string) string {
	return string(s) + strings.Join(strs, "")
}

func down() terminal.Key  { return terminal.Key{Code: terminal.KeyDown} }
func up() terminal.Key    { return terminal.Key{Code: terminal.KeyUp} }
func enter() terminal.Key { return terminal.Key{Code: terminal.KeyEnter} }

func testOptions() Options {
	return Options{
		SelectedStyle: markStyle(">"),
		NormalStyle:   markStyle(" "),
	}
}
