package search

// RunState holds the two latches that decide a run's verdict. Both start
// false and only ever move to true.
type RunState struct {
	selected bool
	hadError bool
}

// MarkSelected records that a line was written to the output channel.
func (s *RunState) MarkSelected() { s.selected = true }

// MarkError records that a line was written to the error channel.
func (s *RunState) MarkError() { s.hadError = true }

func (s RunState) Selected() bool { return s.selected }

func (s RunState) HadError() bool { return s.hadError }

// Success is true when something was selected and nothing failed.
func (s RunState) Success() bool { return s.selected && !s.hadError }
