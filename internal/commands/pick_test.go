package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moasq/termpick/internal/config"
	"github.com/moasq/termpick/internal/logging"
	"github.com/moasq/termpick/internal/terminal"
)

var errScriptDone = errors.New("script done")

// scriptedPort replays keys and lines; drawing is ignored.
type scriptedPort struct {
	mu      sync.Mutex
	keys    []terminal.Key
	lines   []string
	lineErr error
	out     bytes.Buffer
}

func (s *scriptedPort) Size() (int, int, error)     { return 10, 20, nil }
func (s *scriptedPort) ClearScreen() error          { return nil }
func (s *scriptedPort) MoveCursorTo(_, _ int) error { return nil }
func (s *scriptedPort) ShowCursor() error           { return nil }
func (s *scriptedPort) HideCursor() error           { return nil }

func (s *scriptedPort) ReadKey() (terminal.Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.keys) == 0 {
		return terminal.Key{}, errScriptDone
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

func (s *scriptedPort) ReadLine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lineErr != nil {
		return "", s.lineErr
	}
	if len(s.lines) == 0 {
		return "", errScriptDone
	}
	l := s.lines[0]
	s.lines = s.lines[1:]
	return l, nil
}

func (s *scriptedPort) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}

func chars(s string) []terminal.Key {
	var keys []terminal.Key
	for _, r := range s {
		keys = append(keys, terminal.Char(r))
	}
	return keys
}

func enterKey() terminal.Key { return terminal.Key{Code: terminal.KeyEnter} }

func newTestPicker(t *testing.T, port *scriptedPort, options ...string) *picker {
	t.Helper()
	cfg := config.Default()
	cfg.Options = options
	cfg.Cancel = "<none>"
	p, err := newPicker(port, cfg)
	require.NoError(t, err)
	return p
}

func TestPickerLetterNavigation(t *testing.T) {
	port := &scriptedPort{keys: append(chars("jjk"), enterKey())}
	got, err := newTestPicker(t, port, "a", "b", "c").run()
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestPickerArrowKeysStillWork(t *testing.T) {
	port := &scriptedPort{keys: []terminal.Key{{Code: terminal.KeyDown}, enterKey()}}
	got, err := newTestPicker(t, port, "a", "b").run()
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestPickerAddPromptsAndAppends(t *testing.T) {
	port := &scriptedPort{
		keys:  append(chars("ajj"), enterKey()),
		lines: []string{"fresh"},
	}
	p := newTestPicker(t, port, "a", "b")
	got, err := p.run()
	require.NoError(t, err)

	assert.Equal(t, "fresh", got)
	assert.Contains(t, port.out.String(), "add: ")
	assert.Equal(t, []string{"a", "b", "fresh"}, p.menu.State().Options)
}

func TestPickerAddIgnoresBlankInput(t *testing.T) {
	port := &scriptedPort{
		keys:  append(chars("a"), enterKey()),
		lines: []string{"   "},
	}
	p := newTestPicker(t, port, "only")
	got, err := p.run()
	require.NoError(t, err)
	assert.Equal(t, "only", got)
	assert.Equal(t, 1, p.menu.State().Len())
}

func TestPickerAddPromptFailureAborts(t *testing.T) {
	port := &scriptedPort{keys: chars("a"), lineErr: errors.New("stdin closed")}
	_, err := newTestPicker(t, port, "a").run()
	assert.ErrorIs(t, err, port.lineErr)
}

func TestPickerDeleteRemovesHighlighted(t *testing.T) {
	port := &scriptedPort{keys: append(chars("jd"), enterKey())}
	p := newTestPicker(t, port, "a", "b", "c")
	got, err := p.run()
	require.NoError(t, err)
	assert.Equal(t, "c", got)
	assert.Equal(t, []string{"a", "c"}, p.menu.State().Options)
}

func TestPickerDeleteAllReturnsEmpty(t *testing.T) {
	port := &scriptedPort{keys: chars("dd")}
	got, err := newTestPicker(t, port, "a", "b").run()
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestPickerQuitReturnsCancelValue(t *testing.T) {
	for _, key := range []terminal.Key{
		terminal.Char('q'),
		{Code: terminal.KeyEscape},
		{Code: terminal.KeyCtrlC},
	} {
		port := &scriptedPort{keys: []terminal.Key{key}}
		got, err := newTestPicker(t, port, "a").run()
		require.NoError(t, err, key.String())
		assert.Equal(t, "<none>", got, key.String())
	}
}

func TestPickerCopyUsesClipboard(t *testing.T) {
	var copied []string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	t.Cleanup(func() { copyToClipboard = orig })

	port := &scriptedPort{keys: append(chars("jy"), enterKey())}
	p := newTestPicker(t, port, "a", "b")
	got, err := p.run()
	require.NoError(t, err)
	assert.Equal(t, "b", got)
	assert.Equal(t, []string{"b"}, copied)
	assert.NoError(t, p.copyErr)
}

func TestPickerCopyFailureIsNotFatal(t *testing.T) {
	orig := copyToClipboard
	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { copyToClipboard = orig })

	port := &scriptedPort{keys: append(chars("y"), enterKey())}
	p := newTestPicker(t, port, "a")
	got, err := p.run()
	require.NoError(t, err)
	assert.Equal(t, "a", got)
	assert.EqualError(t, p.copyErr, "no clipboard")
}

func TestPickerCustomBindings(t *testing.T) {
	cfg := config.Default()
	cfg.Options = []string{"a", "b"}
	cfg.Keys.Down = "s"
	cfg.Keys.Quit = "x"

	port := &scriptedPort{keys: append(chars("js"), enterKey())}
	p, err := newPicker(port, cfg)
	require.NoError(t, err)

	got, err := p.run()
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestNewPickerRejectsBadBindings(t *testing.T) {
	cfg := config.Default()
	cfg.Keys.Add = "j"
	_, err := newPicker(&scriptedPort{}, cfg)
	assert.Error(t, err)
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "menu.yaml")
	require.NoError(t, os.WriteFile(good, []byte("options: [a, b]\n"), 0o644))
	assert.NoError(t, checkFile(good))

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("cancel: x\n"), 0o644))
	assert.ErrorIs(t, checkFile(empty), config.ErrNoOptions)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[keys]\nup = \"jj\"\n"), 0o644))
	assert.Error(t, checkFile(bad))
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, "picked"))
	assert.Equal(t, "picked\n", buf.String())
}

func TestPickerLogsUnderItsSubsystem(t *testing.T) {
	var buf bytes.Buffer
	logging.InitForCLI(logging.LevelDebug, &buf)
	t.Cleanup(func() { logging.InitForCLI(logging.LevelInfo, nil) })

	port := &scriptedPort{keys: append(chars("d"), enterKey())}
	got, err := newTestPicker(t, port, "a", "b").run()
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	out := buf.String()
	assert.Contains(t, out, "subsystem=picker")
	assert.Contains(t, out, `msg="menu started"`)
	assert.Contains(t, out, `msg="option deleted" subsystem=picker option=a`)
	assert.Contains(t, out, "subsystem=menu")
}
