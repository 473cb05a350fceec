package search

// WorkList is the ordered sequence of paths a run visits. Paths appended
// while it is being drained are visited later in the same pass.
type WorkList struct {
	items  []string
	cursor int
}

// NewWorkList returns a work-list seeded with a copy of initial.
func NewWorkList(initial []string) *WorkList {
	items := make([]string, len(initial))
	copy(items, initial)
	return &WorkList{items: items}
}

// Next returns the path at the cursor and advances it.
func (w *WorkList) Next() (string, bool) {
	if w.cursor >= len(w.items) {
		return "", false
	}
	p := w.items[w.cursor]
	w.cursor++
	return p, true
}

// Append adds paths to the end of the list.
func (w *WorkList) Append(paths ...string) {
	w.items = append(w.items, paths...)
}

// Len is the total number of paths ever queued.
func (w *WorkList) Len() int { return len(w.items) }

// Remaining is the number of paths not yet returned by Next.
func (w *WorkList) Remaining() int { return len(w.items) - w.cursor }
