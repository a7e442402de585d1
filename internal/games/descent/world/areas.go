package world

import "sort"

// Contact is one body overlapping one area.
type Contact struct {
	Area Handle
	Body Handle
}

func (c Contact) less(o Contact) bool {
	if c.Area.index != o.Area.index {
		return c.Area.index < o.Area.index
	}
	if c.Area.gen != o.Area.gen {
		return c.Area.gen < o.Area.gen
	}
	if c.Body.index != o.Body.index {
		return c.Body.index < o.Body.index
	}
	return c.Body.gen < o.Body.gen
}

// AreaTracker turns per-tick overlap sets into enter and exit events.
type AreaTracker struct {
	inside map[Contact]struct{}
}

// NewAreaTracker creates a tracker with no contacts.
func NewAreaTracker() *AreaTracker {
	return &AreaTracker{inside: make(map[Contact]struct{})}
}

// Update replaces the tracked contacts with current. Entered preserves the
// order of current; exited is sorted by handle so results never depend on
// map iteration. Contacts whose area or body vanished count as exits.
func (t *AreaTracker) Update(current []Contact) (entered, exited []Contact) {
	next := make(map[Contact]struct{}, len(current))
	for _, c := range current {
		if _, dup := next[c]; dup {
			continue
		}
		next[c] = struct{}{}
		if _, ok := t.inside[c]; !ok {
			entered = append(entered, c)
		}
	}
	for c := range t.inside {
		if _, ok := next[c]; !ok {
			exited = append(exited, c)
		}
	}
	sort.Slice(exited, func(i, j int) bool { return exited[i].less(exited[j]) })
	t.inside = next
	return entered, exited
}

// Inside reports whether the contact is currently tracked.
func (t *AreaTracker) Inside(c Contact) bool {
	_, ok := t.inside[c]
	return ok
}

// Len returns the number of tracked contacts.
func (t *AreaTracker) Len() int {
	return len(t.inside)
}

// Reset forgets every contact without emitting exits.
func (t *AreaTracker) Reset() {
	t.inside = make(map[Contact]struct{})
}
