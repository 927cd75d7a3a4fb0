package layout

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the ordered pane collection. Pane ids are unique within the
// collection; every operation keyed by a missing pane id is a silent
// no-op, the same availability-first policy the drawing store follows.
type Store struct {
	mu    sync.RWMutex
	panes []Pane

	subMu sync.Mutex
	subs  []func(op, id string)
}

// NewStore creates a store seeded with the single default price pane.
func NewStore() *Store {
	s := &Store{}
	s.panes = []Pane{defaultPricePane()}
	return s
}

func defaultPricePane() Pane {
	ind := make([]string, len(DefaultPriceIndicators))
	copy(ind, DefaultPriceIndicators)
	return Pane{
		ID:         uuid.NewString(),
		Type:       PanePrice,
		Height:     DefaultPriceHeight,
		Indicators: ind,
		Visible:    true,
		Locked:     false,
	}
}

// Subscribe registers fn to be called synchronously after every
// mutation, outside the store lock.
func (s *Store) Subscribe(fn func(op, id string)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify(op, id string) {
	s.subMu.Lock()
	subs := make([]func(op, id string), len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(op, id)
	}
}

// AddPane appends a pane of the given type with its default height and
// returns the new id. indicators may be nil.
func (s *Store) AddPane(t PaneType, indicators []string) string {
	ind := make([]string, len(indicators))
	copy(ind, indicators)
	p := Pane{
		ID:         uuid.NewString(),
		Type:       t,
		Height:     DefaultHeight(t),
		Indicators: ind,
		Visible:    true,
		Locked:     false,
	}

	s.mu.Lock()
	s.panes = append(s.panes, p)
	s.mu.Unlock()

	s.notify("add", p.ID)
	return p.ID
}

// RemovePane drops the pane. Drawing objects that referenced it are not
// cascade-deleted; they dangle until cleaned up by the caller.
func (s *Store) RemovePane(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.panes = append(s.panes[:i], s.panes[i+1:]...)
	s.mu.Unlock()

	s.notify("remove", id)
}

// SetPaneHeight stores the requested height as-is. Clamping is the
// caller's responsibility (see ClampHeight); a locked pane's height
// never changes, attempts are silent no-ops.
func (s *Store) SetPaneHeight(id string, height int) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 || s.panes[i].Locked {
		s.mu.Unlock()
		return
	}
	s.panes[i].Height = height
	s.mu.Unlock()

	s.notify("resize", id)
}

// AddIndicatorToPane appends the indicator to the pane's list.
// Duplicates are permitted; there is no uniqueness invariant.
func (s *Store) AddIndicatorToPane(paneID, indicatorID string) {
	s.mu.Lock()
	i := s.indexOf(paneID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.panes[i].Indicators = append(s.panes[i].Indicators, indicatorID)
	s.mu.Unlock()

	s.notify("indicators", paneID)
}

// RemoveIndicatorFromPane removes every occurrence of the indicator from
// the pane's list.
func (s *Store) RemoveIndicatorFromPane(paneID, indicatorID string) {
	s.mu.Lock()
	i := s.indexOf(paneID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	kept := s.panes[i].Indicators[:0]
	for _, ind := range s.panes[i].Indicators {
		if ind != indicatorID {
			kept = append(kept, ind)
		}
	}
	s.panes[i].Indicators = kept
	s.mu.Unlock()

	s.notify("indicators", paneID)
}

// MoveIndicatorToPane removes the indicator from one pane and appends it
// to another. The append happens even when the indicator was absent from
// the source pane, so callers must check membership to avoid duplicates.
func (s *Store) MoveIndicatorToPane(indicatorID, fromPaneID, toPaneID string) {
	s.RemoveIndicatorFromPane(fromPaneID, indicatorID)
	s.AddIndicatorToPane(toPaneID, indicatorID)
}

// TogglePaneVisibility flips the pane's visible flag.
func (s *Store) TogglePaneVisibility(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.panes[i].Visible = !s.panes[i].Visible
	s.mu.Unlock()

	s.notify("visibility", id)
}

// TogglePaneLock flips the pane's locked flag.
func (s *Store) TogglePaneLock(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.panes[i].Locked = !s.panes[i].Locked
	s.mu.Unlock()

	s.notify("lock", id)
}

// ReorderPanes replaces the pane order with the panes found for each id
// in orderedIDs. Existing panes whose id is absent from orderedIDs are
// silently dropped from the result. Unknown ids are skipped.
func (s *Store) ReorderPanes(orderedIDs []string) {
	s.mu.Lock()
	next := make([]Pane, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		if i := s.indexOf(id); i >= 0 {
			next = append(next, s.panes[i])
		}
	}
	s.panes = next
	s.mu.Unlock()

	s.notify("reorder", "")
}

// ResetPanes discards every pane and restores the single default price
// pane with the default indicator set.
func (s *Store) ResetPanes() {
	s.mu.Lock()
	s.panes = []Pane{defaultPricePane()}
	id := s.panes[0].ID
	s.mu.Unlock()

	s.notify("reset", id)
}

// Panes returns a copy of the pane list in display order.
func (s *Store) Panes() []Pane {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Pane, 0, len(s.panes))
	for _, p := range s.panes {
		out = append(out, clonePane(p))
	}
	return out
}

// PaneByID returns a copy of the pane and whether it exists.
func (s *Store) PaneByID(id string) (Pane, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return clonePane(s.panes[i]), true
	}
	return Pane{}, false
}

// Count returns the number of panes.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.panes)
}

// Replace swaps the whole pane list, used on rehydration.
func (s *Store) Replace(panes []Pane) {
	s.mu.Lock()
	s.panes = make([]Pane, 0, len(panes))
	for _, p := range panes {
		s.panes = append(s.panes, clonePane(p))
	}
	s.mu.Unlock()

	s.notify("replace", "")
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	for i := range s.panes {
		if s.panes[i].ID == id {
			return i
		}
	}
	return -1
}
