package commands

import (
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/moasq/termpick/internal/config"
	"github.com/moasq/termpick/internal/logging"
	"github.com/moasq/termpick/internal/menu"
	"github.com/moasq/termpick/internal/terminal"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// picker is the command-line embedding of the menu: letter-key navigation,
// prompting for new options, deleting, copying and quitting.
type picker struct {
	port   terminal.Port
	keys   config.Bindings
	cancel string
	log    *slog.Logger
	menu   *menu.Menu

	// promptErr aborts the run after the mapper returns.
	promptErr error
	copyErr   error
}

// newPicker logs through the logger configured by logging.InitForCLI.
func newPicker(port terminal.Port, cfg *config.Config) (*picker, error) {
	keys, err := cfg.Keys.Resolve()
	if err != nil {
		return nil, err
	}

	p := &picker{
		port:   port,
		keys:   keys,
		cancel: cfg.Cancel,
		log:    logging.Subsystem("picker"),
	}
	p.menu = menu.New(port, cfg.Options, menu.Options{
		SelectedStyle: cfg.Styles.Selected.Lipgloss(),
		NormalStyle:   cfg.Styles.Normal.Lipgloss(),
		Keys:          p,
		Start: func() {
			p.log.Info("menu started", "options", len(cfg.Options))
		},
		Refresh: cfg.RefreshInterval(),
		Logger:  logging.Logger(),
	})
	return p, nil
}

func (p *picker) run() (string, error) {
	result, err := p.menu.Run()
	if err != nil {
		return "", err
	}
	if p.promptErr != nil {
		return "", p.promptErr
	}
	p.log.Info("menu finished", "result", result)
	return result, nil
}

// MapKey implements menu.KeyMapper.
func (p *picker) MapKey(key terminal.Key, st *menu.State) menu.Event {
	switch {
	case key.Is(p.keys.Down):
		return menu.MoveDown()
	case key.Is(p.keys.Up):
		return menu.MoveUp()
	case key.Is(p.keys.Add):
		return p.add(st)
	case key.Is(p.keys.Delete):
		if removed, ok := st.RemoveSelected(); ok {
			p.log.Info("option deleted", "option", removed)
		}
		return menu.Noop()
	case key.Is(p.keys.Copy):
		p.copy(st)
		return menu.Noop()
	case key.Is(p.keys.Quit), key.Code == terminal.KeyEscape, key.Code == terminal.KeyCtrlC:
		return menu.Return(p.cancel)
	}
	return menu.DefaultKeyMapper.MapKey(key, st)
}

func (p *picker) add(st *menu.State) menu.Event {
	text, err := terminal.Prompt(p.port, "add")
	if err != nil {
		p.promptErr = err
		return menu.Return(p.cancel)
	}
	if strings.TrimSpace(text) == "" {
		return menu.Noop()
	}
	st.Append(text)
	p.log.Info("option added", "option", text)
	return menu.Noop()
}

func (p *picker) copy(st *menu.State) {
	current, ok := st.Current()
	if !ok {
		return
	}
	if err := copyToClipboard(current); err != nil {
		p.copyErr = err
		p.log.Warn("clipboard copy failed", "error", err)
		return
	}
	p.log.Debug("option copied", "option", current)
}
