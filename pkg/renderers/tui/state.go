package tui

// State tracks the answers collected during one editing session, keyed by
// field name.
type State struct {
	before map[string]string
	after  map[string]string
	order  []string
}

// NewState seeds the state with the values shown before editing.
func NewState(before map[string]string) *State {
	clone := make(map[string]string, len(before))
	for k, v := range before {
		clone[k] = v
	}
	return &State{before: clone, after: make(map[string]string)}
}

// Record stores an answer, replacing any earlier answer for name.
func (s *State) Record(name, value string) {
	if _, seen := s.after[name]; !seen {
		s.order = append(s.order, name)
	}
	s.after[name] = value
}

// Changed lists fields whose answer differs from the starting value, in the
// order they were first answered.
func (s *State) Changed() []string {
	var out []string
	for _, name := range s.order {
		if s.after[name] != s.before[name] {
			out = append(out, name)
		}
	}
	return out
}

// Value returns the answer for name, falling back to the starting value.
func (s *State) Value(name string) (string, bool) {
	if v, ok := s.after[name]; ok {
		return v, true
	}
	v, ok := s.before[name]
	return v, ok
}
