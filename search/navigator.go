package search

import "fmt"

// Navigator is a cursor over a result set. It starts before the first
// result; Next and Previous wrap around at either end.
type Navigator struct {
	results []Result
	current int
}

// NewNavigator captures the results of rs. Later changes to rs are not seen.
func NewNavigator(rs ResultSet) *Navigator {
	return &Navigator{
		results: append([]Result(nil), rs.Results...),
		current: -1,
	}
}

// Len returns the number of results.
func (n *Navigator) Len() int { return len(n.results) }

// Index returns the current index, -1 before the first move.
func (n *Navigator) Index() int { return n.current }

// Next moves forward, from the last result back to the first.
func (n *Navigator) Next() {
	if len(n.results) == 0 {
		return
	}
	n.current = (n.current + 1) % len(n.results)
}

// Previous moves back, from the first result (or the start) to the last.
func (n *Navigator) Previous() {
	if len(n.results) == 0 {
		return
	}
	if n.current < 0 {
		n.current = len(n.results) - 1
		return
	}
	n.current = (n.current - 1 + len(n.results)) % len(n.results)
}

// Current returns the result under the cursor.
func (n *Navigator) Current() (Result, bool) {
	if n.current < 0 || n.current >= len(n.results) {
		return Result{}, false
	}
	return n.results[n.current], true
}

// Position is the one based position to display and the total. Before the
// first move the cursor is shown on the first result.
func (n *Navigator) Position() (int, int) {
	if len(n.results) == 0 {
		return 0, 0
	}
	if n.current < 0 {
		return 1, len(n.results)
	}
	return n.current + 1, len(n.results)
}

// Counter renders the position for display, empty when there are no results.
func (n *Navigator) Counter() string {
	pos, total := n.Position()
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("Result %d of %d", pos, total)
}
