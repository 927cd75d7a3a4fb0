package drawing

import (
	"strings"
	"testing"
)

func seedObject(t *testing.T, s *Store, paneID string, points ...Point) string {
	t.Helper()
	if len(points) == 0 {
		points = []Point{{X: 1, Y: 2}}
	}
	id := s.AddObject(ToolTrendLine, paneID, points, DefaultStyle(), nil)
	if id == "" {
		t.Fatalf("AddObject() returned empty id")
	}
	return id
}

func TestAddObjectAssignsDistinctIDs(t *testing.T) {
	s := NewStore()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := seedObject(t, s, "pane-1")
		if seen[id] {
			t.Fatalf("AddObject() returned duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestAddObjectDefaults(t *testing.T) {
	s := NewStore()
	id := s.AddObject(ToolRectangle, "pane-1", []Point{{X: 5, Y: 5}}, DefaultStyle(), map[string]any{"source": "test"})

	obj, ok := s.ObjectByID(id)
	if !ok {
		t.Fatalf("ObjectByID(%q) not found", id)
	}
	wantName := "rectangle_" + id[len(id)-6:]
	if obj.Properties.Name != wantName {
		t.Fatalf("Name = %q, want %q", obj.Properties.Name, wantName)
	}
	if obj.Properties.Locked {
		t.Fatalf("new object is locked")
	}
	if !obj.Properties.Visible {
		t.Fatalf("new object is not visible")
	}
	if obj.Properties.ZIndex != obj.Properties.CreatedAt.UnixMilli() {
		t.Fatalf("ZIndex = %d, want creation stamp %d", obj.Properties.ZIndex, obj.Properties.CreatedAt.UnixMilli())
	}
	if obj.Properties.UpdatedAt != obj.Properties.CreatedAt {
		t.Fatalf("UpdatedAt != CreatedAt on a fresh object")
	}
	if obj.Metadata["source"] != "test" {
		t.Fatalf("Metadata = %v, want source=test", obj.Metadata)
	}
	if s.SelectedObjectID() != id {
		t.Fatalf("new object is not selected")
	}
}

func TestAddObjectRejectsEmptyPointsAndCursor(t *testing.T) {
	s := NewStore()
	if id := s.AddObject(ToolTrendLine, "pane-1", nil, DefaultStyle(), nil); id != "" {
		t.Fatalf("AddObject with no points = %q, want empty", id)
	}
	if id := s.AddObject(ToolCursor, "pane-1", []Point{{X: 1}}, DefaultStyle(), nil); id != "" {
		t.Fatalf("AddObject with cursor tool = %q, want empty", id)
	}
	if s.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", s.Count())
	}
}

func TestSetObjectStylePreservesUnrelatedFields(t *testing.T) {
	s := NewStore()
	id := s.AddObject(ToolTrendLine, "pane-1", []Point{{X: 1}}, Style{
		Color:     "#ff0000",
		LineWidth: 3,
		LineStyle: LineDashed,
		FontSize:  14,
		Text:      "note",
	}, nil)

	color := "#ffffff"
	s.SetObjectStyle(id, StylePatch{Color: &color})

	obj, _ := s.ObjectByID(id)
	if obj.Style.Color != "#ffffff" {
		t.Fatalf("Color = %q, want #ffffff", obj.Style.Color)
	}
	if obj.Style.LineWidth != 3 || obj.Style.LineStyle != LineDashed || obj.Style.FontSize != 14 || obj.Style.Text != "note" {
		t.Fatalf("unrelated style fields changed: %+v", obj.Style)
	}
}

func TestDuplicateObjectOffsetsPoints(t *testing.T) {
	s := NewStore()
	id := s.AddObject(ToolTrendLine, "pane-1", []Point{{X: 0, Y: 0}, {X: 10, Y: 10}}, DefaultStyle(), nil)

	newID := s.DuplicateObject(id)
	if newID == "" || newID == id {
		t.Fatalf("DuplicateObject() = %q", newID)
	}

	src, _ := s.ObjectByID(id)
	dup, _ := s.ObjectByID(newID)
	want := []Point{{X: 10, Y: 10}, {X: 20, Y: 20}}
	for i, p := range dup.Points {
		if p.X != want[i].X || p.Y != want[i].Y {
			t.Fatalf("point %d = (%v,%v), want (%v,%v)", i, p.X, p.Y, want[i].X, want[i].Y)
		}
	}
	if dup.Type != src.Type || dup.PaneID != src.PaneID || dup.Style != src.Style {
		t.Fatalf("duplicate diverged: type=%s pane=%s style=%+v", dup.Type, dup.PaneID, dup.Style)
	}
}

func TestDuplicateObjectMissingSource(t *testing.T) {
	s := NewStore()
	if got := s.DuplicateObject("nope"); got != "" {
		t.Fatalf("DuplicateObject(missing) = %q, want empty", got)
	}
}

func TestDeleteObjectClearsSelection(t *testing.T) {
	s := NewStore()
	id := seedObject(t, s, "pane-1")
	s.SelectObject(id)

	s.DeleteObject(id)

	if got := s.SelectedObjects(); len(got) != 0 {
		t.Fatalf("SelectedObjects() has %d elements after delete, want 0", len(got))
	}
	if _, ok := s.ObjectByID(id); ok {
		t.Fatalf("object still present after delete")
	}
}

func TestMutationsOnMissingIDAreNoOps(t *testing.T) {
	s := NewStore()
	id := seedObject(t, s, "pane-1")
	before, _ := s.ObjectByID(id)

	name := "renamed"
	s.UpdateObject("nonexistent", ObjectPatch{Properties: &PropertiesPatch{Name: &name}})
	s.DeleteObject("nonexistent")
	s.MoveObject("nonexistent", 5, 5)
	s.MoveObjectToPane("nonexistent", "pane-9")

	after, _ := s.ObjectByID(id)
	if after.Properties.Name != before.Properties.Name || after.Points[0] != before.Points[0] {
		t.Fatalf("existing object changed by missing-id mutations: %+v", after)
	}
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
}

func TestUpdateObjectMergesProperties(t *testing.T) {
	s := NewStore()
	id := seedObject(t, s, "pane-1")
	obj, _ := s.ObjectByID(id)

	locked := true
	s.UpdateObject(id, ObjectPatch{Properties: &PropertiesPatch{Locked: &locked}})

	after, _ := s.ObjectByID(id)
	if !after.Properties.Locked {
		t.Fatalf("Locked not applied")
	}
	if after.Properties.Name != obj.Properties.Name || after.Properties.Visible != obj.Properties.Visible {
		t.Fatalf("unrelated properties changed: %+v", after.Properties)
	}
	if after.Properties.UpdatedAt.Before(obj.Properties.UpdatedAt) {
		t.Fatalf("UpdatedAt went backwards")
	}
}

func TestMoveObjectLeavesChartSpaceUntouched(t *testing.T) {
	s := NewStore()
	id := s.AddObject(ToolTrendLine, "pane-1", []Point{{X: 1, Y: 2, Time: 1700000000, Price: 42.5}}, DefaultStyle(), nil)

	s.MoveObject(id, 9, -2)

	obj, _ := s.ObjectByID(id)
	p := obj.Points[0]
	if p.X != 10 || p.Y != 0 {
		t.Fatalf("point = (%v,%v), want (10,0)", p.X, p.Y)
	}
	if p.Time != 1700000000 || p.Price != 42.5 {
		t.Fatalf("time/price were rewritten: %+v", p)
	}
}

func TestObjectsByPanePreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	a := seedObject(t, s, "pane-1")
	seedObject(t, s, "pane-2")
	b := seedObject(t, s, "pane-1")

	got := s.ObjectsByPane("pane-1")
	if len(got) != 2 {
		t.Fatalf("ObjectsByPane returned %d objects, want 2", len(got))
	}
	if got[0].ID != a || got[1].ID != b {
		t.Fatalf("order = [%s %s], want [%s %s]", got[0].ID, got[1].ID, a, b)
	}
}

func TestSelectObjectsInRect(t *testing.T) {
	s := NewStore()
	seedObject(t, s, "pane-1", Point{X: 100, Y: 100})
	hitID := seedObject(t, s, "pane-1", Point{X: 5, Y: 5}, Point{X: 500, Y: 500})
	seedObject(t, s, "pane-2", Point{X: 5, Y: 5})

	rect := Rect{PaneID: "pane-1", X: 0, Y: 0, Width: 10, Height: 10}
	if got := s.SelectObjectsInRect(rect); got != hitID {
		t.Fatalf("SelectObjectsInRect() = %q, want %q", got, hitID)
	}
	sel := s.SelectedObjects()
	if len(sel) != 1 || sel[0].ID != hitID {
		t.Fatalf("selection = %v, want [%s]", sel, hitID)
	}

	miss := Rect{PaneID: "pane-1", X: 1000, Y: 1000, Width: 5, Height: 5}
	if got := s.SelectObjectsInRect(miss); got != "" {
		t.Fatalf("SelectObjectsInRect(miss) = %q, want empty", got)
	}
	if len(s.SelectedObjects()) != 0 {
		t.Fatalf("selection not cleared on miss")
	}
}

func TestSelectionScopedBulkOps(t *testing.T) {
	s := NewStore()

	// Nothing selected: all no-ops.
	s.ClearSelection()
	s.DeleteSelectedObjects()
	s.LockSelectedObjects()
	s.SetSelectedObjectsVisible(false)
	if got := s.DuplicateSelectedObjects(); got != "" {
		t.Fatalf("DuplicateSelectedObjects() with empty selection = %q", got)
	}

	id := seedObject(t, s, "pane-1")
	s.SelectObject(id)

	s.LockSelectedObjects()
	obj, _ := s.ObjectByID(id)
	if !obj.Properties.Locked {
		t.Fatalf("LockSelectedObjects did not lock")
	}

	s.SetSelectedObjectsVisible(false)
	obj, _ = s.ObjectByID(id)
	if obj.Properties.Visible {
		t.Fatalf("SetSelectedObjectsVisible(false) did not apply")
	}

	newID := s.DuplicateSelectedObjects()
	if newID == "" {
		t.Fatalf("DuplicateSelectedObjects() returned empty id")
	}
	// The duplicate becomes the selection via the add path.
	if s.SelectedObjectID() != newID {
		t.Fatalf("selected = %q, want duplicate %q", s.SelectedObjectID(), newID)
	}

	s.DeleteSelectedObjects()
	if _, ok := s.ObjectByID(newID); ok {
		t.Fatalf("DeleteSelectedObjects did not delete the duplicate")
	}
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
}

func TestClearAllObjects(t *testing.T) {
	s := NewStore()
	seedObject(t, s, "pane-1")
	seedObject(t, s, "pane-2")

	s.ClearAllObjects()

	if s.Count() != 0 {
		t.Fatalf("Count() = %d after clear, want 0", s.Count())
	}
	if len(s.SelectedObjects()) != 0 {
		t.Fatalf("selection survived clear")
	}
}

func TestSubscribeFiresAfterMutation(t *testing.T) {
	s := NewStore()
	var ops []string
	s.Subscribe(func(op, id string) { ops = append(ops, op) })

	id := seedObject(t, s, "pane-1")
	s.MoveObject(id, 1, 1)
	s.DeleteObject(id)

	want := "add,update,delete"
	if got := strings.Join(ops, ","); got != want {
		t.Fatalf("subscriber ops = %q, want %q", got, want)
	}
}

func TestSubscriberMayReadStore(t *testing.T) {
	s := NewStore()
	var count int
	s.Subscribe(func(op, id string) { count = s.Count() })

	seedObject(t, s, "pane-1")
	if count != 1 {
		t.Fatalf("subscriber saw Count()=%d, want 1", count)
	}
}
