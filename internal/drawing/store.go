package drawing

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// duplicateOffset is added to the x and y of every point when an object
// is duplicated so the copy does not sit exactly on top of the source.
const duplicateOffset = 10

// Store is the authoritative collection of drawing objects, grouped by
// owning pane, plus the transient single-selection state. It favors
// availability over strict error signaling: mutations keyed by a missing
// id are silent no-ops so stale UI callbacks never crash a session.
type Store struct {
	mu       sync.RWMutex
	objects  []Object
	selected string
	dragged  string

	subMu sync.Mutex
	subs  []func(op, id string)
}

// NewStore creates an empty drawing object store.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers fn to be called synchronously after every mutation.
// The callback runs outside the store lock and may read the store.
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

// AddObject creates a drawing object and returns its id. The new object
// becomes the current selection. Returns "" without mutating anything
// when points is empty or typ is not a drawing tool.
func (s *Store) AddObject(typ Tool, paneID string, points []Point, style Style, metadata map[string]any) string {
	if len(points) == 0 || !ValidTool(typ) {
		return ""
	}

	now := time.Now()
	id := uuid.NewString()
	obj := Object{
		ID:     id,
		Type:   typ,
		PaneID: paneID,
		Points: make([]Point, len(points)),
		Style:  style,
		Properties: Properties{
			Name:      fmt.Sprintf("%s_%s", typ, id[len(id)-6:]),
			Locked:    false,
			Visible:   true,
			ZIndex:    now.UnixMilli(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Metadata: metadata,
	}
	copy(obj.Points, points)

	s.mu.Lock()
	s.objects = append(s.objects, obj)
	s.selected = id
	s.mu.Unlock()

	s.notify("add", id)
	return id
}

// UpdateObject applies a partial update. Properties merge field-by-field;
// every other non-nil field replaces the current value outright.
// UpdatedAt is always stamped. No-op when id does not exist.
func (s *Store) UpdateObject(id string, patch ObjectPatch) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	obj := &s.objects[i]
	if patch.PaneID != nil {
		obj.PaneID = *patch.PaneID
	}
	if patch.Points != nil {
		obj.Points = make([]Point, len(patch.Points))
		copy(obj.Points, patch.Points)
	}
	if patch.Style != nil {
		obj.Style = *patch.Style
	}
	if patch.Properties != nil {
		obj.Properties = patch.Properties.apply(obj.Properties)
	}
	if patch.Metadata != nil {
		obj.Metadata = patch.Metadata
	}
	obj.Properties.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.notify("update", id)
}

// SetObjectStyle merges a partial style over the object's current style.
func (s *Store) SetObjectStyle(id string, patch StylePatch) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.objects[i].Style = patch.Apply(s.objects[i].Style)
	s.objects[i].Properties.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.notify("update", id)
}

// SetObjectProperties merges a partial properties update onto the object.
func (s *Store) SetObjectProperties(id string, patch PropertiesPatch) {
	s.UpdateObject(id, ObjectPatch{Properties: &patch})
}

// DeleteObject removes the object and clears the selection when it was
// selected. No-op when id does not exist.
func (s *Store) DeleteObject(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	if s.selected == id {
		s.selected = ""
	}
	if s.dragged == id {
		s.dragged = ""
	}
	s.mu.Unlock()

	s.notify("delete", id)
}

// DuplicateObject copies an object with a fresh id and every point offset
// by +10 on both axes. Returns the new id, or "" when the source does not
// exist.
func (s *Store) DuplicateObject(id string) string {
	s.mu.RLock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.RUnlock()
		return ""
	}
	src := cloneObject(s.objects[i])
	s.mu.RUnlock()

	points := make([]Point, len(src.Points))
	for j, p := range src.Points {
		p.X += duplicateOffset
		p.Y += duplicateOffset
		points[j] = p
	}
	return s.AddObject(src.Type, src.PaneID, points, src.Style, src.Metadata)
}

// MoveObjectToPane reassigns the object's owning pane. The target pane is
// not validated against the layout; a dangling pane id simply leaves the
// object unrenderable.
func (s *Store) MoveObjectToPane(id, targetPaneID string) {
	s.UpdateObject(id, ObjectPatch{PaneID: &targetPaneID})
}

// MoveObject translates every point by the delta. Time and price fields
// are left untouched; callers reconcile chart space if they need to.
func (s *Store) MoveObject(id string, dx, dy float64) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	for j := range s.objects[i].Points {
		s.objects[i].Points[j].X += dx
		s.objects[i].Points[j].Y += dy
	}
	s.objects[i].Properties.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.notify("update", id)
}

// SelectObject marks the object as the current selection. Selecting a
// missing id clears the selection instead.
func (s *Store) SelectObject(id string) {
	s.mu.Lock()
	if s.indexOf(id) < 0 {
		s.selected = ""
	} else {
		s.selected = id
	}
	s.mu.Unlock()

	s.notify("select", id)
}

// ClearSelection drops the current selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selected = ""
	s.mu.Unlock()

	s.notify("select", "")
}

// SetDraggedObject records the object currently under a pointer drag.
// Pass "" to clear. Not validated and not persisted.
func (s *Store) SetDraggedObject(id string) {
	s.mu.Lock()
	s.dragged = id
	s.mu.Unlock()
}

// DraggedObjectID returns the id recorded by SetDraggedObject.
func (s *Store) DraggedObjectID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dragged
}

// SelectObjectsInRect selects the first object owned by rect's pane with
// at least one point inside the bounds. Picks at most one object and
// returns its id, or "" when nothing was hit (selection is then cleared).
func (s *Store) SelectObjectsInRect(rect Rect) string {
	s.mu.Lock()
	hit := ""
	for _, obj := range s.objects {
		if obj.PaneID != rect.PaneID {
			continue
		}
		for _, p := range obj.Points {
			if rect.Contains(p) {
				hit = obj.ID
				break
			}
		}
		if hit != "" {
			break
		}
	}
	s.selected = hit
	s.mu.Unlock()

	s.notify("select", hit)
	return hit
}

// DeleteSelectedObjects deletes the currently selected object, if any.
func (s *Store) DeleteSelectedObjects() {
	if id := s.SelectedObjectID(); id != "" {
		s.DeleteObject(id)
	}
}

// DuplicateSelectedObjects duplicates the currently selected object and
// returns the new id, or "" when nothing is selected.
func (s *Store) DuplicateSelectedObjects() string {
	id := s.SelectedObjectID()
	if id == "" {
		return ""
	}
	return s.DuplicateObject(id)
}

// LockSelectedObjects marks the currently selected object locked.
func (s *Store) LockSelectedObjects() {
	if id := s.SelectedObjectID(); id != "" {
		locked := true
		s.SetObjectProperties(id, PropertiesPatch{Locked: &locked})
	}
}

// SetSelectedObjectsVisible sets visibility on the selected object.
func (s *Store) SetSelectedObjectsVisible(visible bool) {
	if id := s.SelectedObjectID(); id != "" {
		s.SetObjectProperties(id, PropertiesPatch{Visible: &visible})
	}
}

// SelectedObjectID returns the id of the selected object, or "".
func (s *Store) SelectedObjectID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SelectedObjects returns zero or one objects (single-selection model).
func (s *Store) SelectedObjects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == "" {
		return []Object{}
	}
	if i := s.indexOf(s.selected); i >= 0 {
		return []Object{cloneObject(s.objects[i])}
	}
	return []Object{}
}

// ObjectByID returns a copy of the object and whether it exists.
func (s *Store) ObjectByID(id string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return cloneObject(s.objects[i]), true
	}
	return Object{}, false
}

// ObjectsByPane returns the objects owned by the pane in their original
// insertion order. Callers needing draw order sort by ZIndex themselves.
func (s *Store) ObjectsByPane(paneID string) []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Object{}
	for _, obj := range s.objects {
		if obj.PaneID == paneID {
			out = append(out, cloneObject(obj))
		}
	}
	return out
}

// Objects returns a copy of every object in insertion order.
func (s *Store) Objects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Object, 0, len(s.objects))
	for _, obj := range s.objects {
		out = append(out, cloneObject(obj))
	}
	return out
}

// Count returns the number of stored objects.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// ClearAllObjects removes every object and the selection.
func (s *Store) ClearAllObjects() {
	s.mu.Lock()
	s.objects = nil
	s.selected = ""
	s.dragged = ""
	s.mu.Unlock()

	s.notify("clear", "")
}

// Replace swaps the whole collection, used on rehydration and state
// import. Selection is transient and resets.
func (s *Store) Replace(objects []Object) {
	s.mu.Lock()
	s.objects = make([]Object, 0, len(objects))
	for _, obj := range objects {
		s.objects = append(s.objects, cloneObject(obj))
	}
	s.selected = ""
	s.dragged = ""
	s.mu.Unlock()

	s.notify("replace", "")
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	for i := range s.objects {
		if s.objects[i].ID == id {
			return i
		}
	}
	return -1
}
