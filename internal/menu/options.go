package menu

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/moasq/termpick/internal/terminal"
)

// DefaultRefresh is how often the menu redraws while waiting for a key.
const DefaultRefresh = 200 * time.Millisecond

// Style renders one menu row. lipgloss.Style satisfies it.
type Style interface {
	Render(strs ...string) string
}

// KeyMapper turns a key press into an Event. Implementations may edit
// st.Options as a side effect and return Noop to keep the menu running.
type KeyMapper interface {
	MapKey(key terminal.Key, st *State) Event
}

// KeyMapperFunc adapts a function to KeyMapper.
type KeyMapperFunc func(key terminal.Key, st *State) Event

func (f KeyMapperFunc) MapKey(key terminal.Key, st *State) Event {
	return f(key, st)
}

// DefaultKeyMapper handles arrow navigation and Enter. It never touches
// the state.
var DefaultKeyMapper KeyMapper = KeyMapperFunc(func(key terminal.Key, _ *State) Event {
	switch key.Code {
	case terminal.KeyDown:
		return MoveDown()
	case terminal.KeyUp:
		return MoveUp()
	case terminal.KeyEnter:
		return Confirm()
	default:
		return Noop()
	}
})

// StartHook runs once, after the first frame is drawn.
type StartHook func()

// Options configures a Menu. Zero fields take the values of
// DefaultOptions.
type Options struct {
	SelectedStyle Style
	NormalStyle   Style
	Keys          KeyMapper
	Start         StartHook
	Refresh       time.Duration
	Logger        *slog.Logger
}

// DefaultOptions returns the stock configuration: a grey highlight bar,
// arrow keys and Enter.
func DefaultOptions() Options {
	return Options{
		SelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("241")),
		NormalStyle:   lipgloss.NewStyle(),
		Keys:          DefaultKeyMapper,
		Start:         func() {},
		Refresh:       DefaultRefresh,
		Logger:        slog.New(slog.DiscardHandler),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.SelectedStyle == nil {
		o.SelectedStyle = def.SelectedStyle
	}
	if o.NormalStyle == nil {
		o.NormalStyle = def.NormalStyle
	}
	if o.Keys == nil {
		o.Keys = def.Keys
	}
	if o.Start == nil {
		o.Start = def.Start
	}
	if o.Refresh <= 0 {
		o.Refresh = def.Refresh
	}
	if o.Logger == nil {
		o.Logger = def.Logger
	}
	return o
}
