package drawing

import "testing"

func TestFinishDrawingCommitsAndSelects(t *testing.T) {
	s := NewStore()
	sess := NewSession(s)

	sess.SetActiveTool(ToolRectangle)
	sess.StartDrawing("pane-1", Point{X: 1, Y: 1})
	sess.AddPoint(Point{X: 20, Y: 30})

	id := sess.FinishDrawing()
	if id == "" {
		t.Fatalf("FinishDrawing() returned empty id")
	}
	if sess.State().IsDrawing {
		t.Fatalf("still drawing after finish")
	}

	obj, ok := s.ObjectByID(id)
	if !ok {
		t.Fatalf("committed object not found")
	}
	if obj.Type != ToolRectangle || obj.PaneID != "pane-1" || len(obj.Points) != 2 {
		t.Fatalf("committed object = %+v", obj)
	}
	if s.SelectedObjectID() != id {
		t.Fatalf("committed object is not selected")
	}
}

func TestFinishDrawingWhileIdleIsNoOp(t *testing.T) {
	s := NewStore()
	sess := NewSession(s)

	if id := sess.FinishDrawing(); id != "" {
		t.Fatalf("FinishDrawing() while idle = %q, want empty", id)
	}
	if s.Count() != 0 {
		t.Fatalf("store has %d objects, want 0", s.Count())
	}
}

func TestFinishDrawingIncompleteGestureCancels(t *testing.T) {
	s := NewStore()
	sess := NewSession(s)

	// The session does not validate tool names; the commit gate does.
	sess.SetActiveTool(Tool("bogus"))
	sess.StartDrawing("pane-1", Point{X: 1, Y: 1})

	if id := sess.FinishDrawing(); id != "" {
		t.Fatalf("FinishDrawing() with unknown tool = %q, want empty", id)
	}
	if sess.State().IsDrawing {
		t.Fatalf("isDrawing after finish fallback")
	}
	if s.Count() != 0 {
		t.Fatalf("malformed object reached the store")
	}
}

func TestSwitchToCursorCancelsGesture(t *testing.T) {
	s := NewStore()
	sess := NewSession(s)

	sess.SetActiveTool(ToolRectangle)
	sess.StartDrawing("pane-1", Point{X: 1, Y: 1})
	sess.AddPoint(Point{X: 2, Y: 2})

	sess.SetActiveTool(ToolCursor)

	st := sess.State()
	if st.IsDrawing {
		t.Fatalf("isDrawing after switching to cursor")
	}
	if st.Current != nil {
		t.Fatalf("current gesture survived cursor switch: %+v", st.Current)
	}
	if s.Count() != 0 {
		t.Fatalf("object was committed by cursor switch")
	}
}

func TestStartDrawingRequiresTool(t *testing.T) {
	s := NewStore()
	sess := NewSession(s)

	sess.StartDrawing("pane-1", Point{X: 1, Y: 1})
	if sess.State().IsDrawing {
		t.Fatalf("drawing started with cursor tool")
	}
}

func TestStartDrawingRestartsGesture(t *testing.T) {
	s := NewStore()
	sess := NewSession(s)

	sess.SetActiveTool(ToolBrush)
	sess.StartDrawing("pane-1", Point{X: 1, Y: 1})
	sess.AddPoint(Point{X: 2, Y: 2})
	sess.StartDrawing("pane-2", Point{X: 9, Y: 9})

	st := sess.State()
	if !st.IsDrawing || st.Current == nil {
		t.Fatalf("restart lost the gesture: %+v", st)
	}
	if st.Current.PaneID != "pane-2" || len(st.Current.Points) != 1 {
		t.Fatalf("gesture not restarted: %+v", st.Current)
	}
}

func TestStartDrawingClearsSelection(t *testing.T) {
	s := NewStore()
	sess := NewSession(s)

	id := s.AddObject(ToolTrendLine, "pane-1", []Point{{X: 1}}, DefaultStyle(), nil)
	s.SelectObject(id)

	sess.SetActiveTool(ToolEllipse)
	sess.StartDrawing("pane-1", Point{X: 3, Y: 3})

	if len(s.SelectedObjects()) != 0 {
		t.Fatalf("selection survived start of a new gesture")
	}
}

func TestAddPointWhileIdleIsNoOp(t *testing.T) {
	s := NewStore()
	sess := NewSession(s)

	sess.AddPoint(Point{X: 1, Y: 1})

	st := sess.State()
	if st.IsDrawing || st.Current != nil {
		t.Fatalf("AddPoint while idle changed session: %+v", st)
	}
}

func TestCancelDrawingAlwaysSafe(t *testing.T) {
	s := NewStore()
	sess := NewSession(s)

	sess.CancelDrawing()
	sess.CancelDrawing()

	sess.SetActiveTool(ToolText)
	sess.StartDrawing("pane-1", Point{X: 1, Y: 1})
	sess.CancelDrawing()

	if s.Count() != 0 {
		t.Fatalf("cancel committed an object")
	}
	if sess.ActiveTool() != ToolText {
		t.Fatalf("cancel changed the active tool to %q", sess.ActiveTool())
	}
}

func TestStatePointsAreCopies(t *testing.T) {
	s := NewStore()
	sess := NewSession(s)

	sess.SetActiveTool(ToolBrush)
	sess.StartDrawing("pane-1", Point{X: 1, Y: 1})

	st := sess.State()
	st.Current.Points[0].X = 99

	if got := sess.State().Current.Points[0].X; got != 1 {
		t.Fatalf("snapshot aliases session state: X = %v", got)
	}
}
