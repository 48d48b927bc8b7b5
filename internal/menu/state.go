package menu

// State is the option list and cursor of one menu run. Key mappers receive
// a pointer to it and may edit Options directly.
type State struct {
	Options  []string
	Selected int // index into Options, 0 when Options is empty
	Scroll   int // index of the first visible option
}

// NewState copies options into a fresh state with the cursor at the top.
func NewState(options []string) *State {
	opts := make([]string, len(options))
	copy(opts, options)
	return &State{Options: opts}
}

// Len returns the number of options.
func (s *State) Len() int {
	return len(s.Options)
}

// Current returns the highlighted option.
func (s *State) Current() (string, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return "", false
	}
	return s.Options[s.Selected], true
}

// Append adds an option at the end of the list.
func (s *State) Append(option string) {
	s.Options = append(s.Options, option)
}

// RemoveSelected deletes the highlighted option and returns it. Selected is
// left as is; the render loop clamps it before the next frame.
func (s *State) RemoveSelected() (string, bool) {
	removed, ok := s.Current()
	if !ok {
		return "", false
	}
	s.Options = append(s.Options[:s.Selected], s.Options[s.Selected+1:]...)
	return removed, true
}

// Clamp brings Selected back into range after the list shrank. It snaps
// straight to the last option instead of stepping one index per pass.
// Reports whether Selected changed.
func (s *State) Clamp() bool {
	prev := s.Selected
	switch {
	case len(s.Options) == 0:
		s.Selected = 0
	case s.Selected >= len(s.Options):
		s.Selected = len(s.Options) - 1
	case s.Selected < 0:
		s.Selected = 0
	}
	return s.Selected != prev
}

// Fit keeps the visible window of the given height around Selected and
// inside the list. It is a no-op while the window invariant already holds,
// so it only matters after a resize or a deletion.
func (s *State) Fit(rows int) {
	if rows < 1 {
		rows = 1
	}
	if s.Selected < s.Scroll {
		s.Scroll = s.Selected
	}
	if s.Selected >= s.Scroll+rows {
		s.Scroll = s.Selected - rows + 1
	}
	if maxScroll := max(0, len(s.Options)-rows); s.Scroll > maxScroll {
		s.Scroll = maxScroll
	}
	if s.Scroll < 0 {
		s.Scroll = 0
	}
}

// ScrollUp moves the cursor one option up, scrolling the window when the
// cursor leaves it.
func (s *State) ScrollUp() {
	if s.Selected > 0 {
		s.Selected--
		if s.Selected < s.Scroll {
			s.Scroll--
		}
	}
}

// ScrollDown moves the cursor one option down within a window of rows
// visible options.
func (s *State) ScrollDown(rows int) {
	if s.Selected < len(s.Options)-1 {
		s.Selected++
		if s.Selected >= s.Scroll+rows {
			s.Scroll++
		}
	}
}
