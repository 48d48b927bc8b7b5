package menu

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/moasq/termpick/internal/terminal"
)

// Menu is a single-choice list drawn on a terminal Port.
type Menu struct {
	port  terminal.Port
	state *State
	opts  Options
	log   *slog.Logger

	rows    int // visible rows of the last frame
	started bool
}

// New creates a menu over a copy of options.
func New(port terminal.Port, options []string, opts Options) *Menu {
	opts = opts.withDefaults()
	return &Menu{
		port:  port,
		state: NewState(options),
		opts:  opts,
		log:   opts.Logger.With("subsystem", "menu"),
	}
}

// State exposes the live menu state.
func (m *Menu) State() *State {
	return m.state
}

// keyResult carries one ReadKey outcome back to the render loop.
type keyResult struct {
	key terminal.Key
	err error
}

// Run draws the menu and handles keys until an option is confirmed, a
// mapper returns a Return event, or the list becomes empty. Terminal
// failures abort the run.
func (m *Menu) Run() (string, error) {
	for {
		if m.state.Len() == 0 {
			m.log.Debug("option list empty, exiting")
			return m.exit("")
		}
		if m.state.Clamp() {
			m.log.Debug("selection clamped", "selected", m.state.Selected, "options", m.state.Len())
			continue
		}

		if err := m.port.HideCursor(); err != nil {
			return m.fail(fmt.Errorf("failed to hide cursor: %w", err))
		}
		if err := m.draw(); err != nil {
			return m.fail(err)
		}
		if !m.started {
			m.started = true
			m.opts.Start()
		}

		key, err := m.awaitKey()
		if err != nil {
			return m.fail(err)
		}

		ev := m.opts.Keys.MapKey(key, m.state)
		if err := m.port.ClearScreen(); err != nil {
			return m.fail(fmt.Errorf("failed to clear screen: %w", err))
		}
		m.log.Debug("key handled",
			"key", key.String(),
			"event", ev.String(),
			"selected", m.state.Selected,
			"scroll", m.state.Scroll,
		)

		switch ev.Kind {
		case EventMoveUp:
			m.state.ScrollUp()
		case EventMoveDown:
			m.state.ScrollDown(m.rows)
		case EventConfirm:
			m.state.Clamp()
			value, _ := m.state.Current()
			return m.exit(value)
		case EventReturn:
			return m.exit(ev.Payload)
		}
	}
}

// draw queries the terminal size and paints one frame.
func (m *Menu) draw() error {
	termRows, cols, err := m.port.Size()
	if err != nil {
		return fmt.Errorf("failed to query terminal size: %w", err)
	}
	m.rows = visibleRows(termRows)
	m.state.Fit(m.rows)
	return render(m.port, m.state, m.opts.SelectedStyle, m.opts.NormalStyle, cols, m.rows)
}

// awaitKey reads one key on a separate goroutine and redraws on every
// refresh tick until it arrives. The read cannot be cancelled.
func (m *Menu) awaitKey() (terminal.Key, error) {
	results := make(chan keyResult, 1)
	go func() {
		key, err := m.port.ReadKey()
		results <- keyResult{key: key, err: err}
	}()

	ticker := time.NewTicker(m.opts.Refresh)
	defer ticker.Stop()

	for {
		select {
		case res := <-results:
			if res.err != nil {
				return terminal.Key{}, fmt.Errorf("failed to read key: %w", res.err)
			}
			return res.key, nil
		case <-ticker.C:
			if err := m.draw(); err != nil {
				return terminal.Key{}, err
			}
		}
	}
}

// exit restores the cursor, clears the screen and returns value.
func (m *Menu) exit(value string) (string, error) {
	if err := m.port.ShowCursor(); err != nil {
		return "", fmt.Errorf("failed to show cursor: %w", err)
	}
	if err := m.port.ClearScreen(); err != nil {
		return "", fmt.Errorf("failed to clear screen: %w", err)
	}
	return value, nil
}

func (m *Menu) fail(err error) (string, error) {
	_ = m.port.ShowCursor()
	m.log.Error("menu aborted", "error", err)
	return "", err
}
