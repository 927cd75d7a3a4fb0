package drawing

import "sync"

// Pending is the working state of an in-progress drawing gesture. It is
// never persisted.
type Pending struct {
	Type   Tool    `json:"type"`
	PaneID string  `json:"pane_id"`
	Points []Point `json:"points"`
	Style  Style   `json:"style"`
}

// SessionState is a read-only snapshot of the session for rendering a
// live preview.
type SessionState struct {
	ActiveTool Tool     `json:"active_tool"`
	IsDrawing  bool     `json:"is_drawing"`
	Current    *Pending `json:"current,omitempty"`
}

// Session is the modal state machine that turns tool selection plus
// pointer input into committed drawing objects. It is deliberately
// uniform across tools: per-tool point-arity rules live in the caller,
// the session only guarantees structural validity at commit time.
//
// No method returns an error; invalid calls are silent no-ops, matching
// the store's availability-first policy.
type Session struct {
	mu      sync.Mutex
	store   *Store
	tool    Tool
	drawing bool
	current *Pending
}

// NewSession creates an idle session committing into store. The initial
// tool is the cursor.
func NewSession(store *Store) *Session {
	return &Session{store: store, tool: ToolCursor}
}

// ActiveTool returns the currently selected tool.
func (s *Session) ActiveTool() Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

// SetActiveTool switches the active tool. Switching to the cursor always
// abandons an in-progress gesture.
func (s *Session) SetActiveTool(tool Tool) {
	s.mu.Lock()
	s.tool = tool
	s.mu.Unlock()
	if tool == ToolCursor {
		s.CancelDrawing()
	}
}

// StartDrawing begins a gesture on the pane at the given point. Invalid
// while the cursor is active. Starting while already drawing restarts
// the gesture rather than erroring. Any existing selection is cleared.
func (s *Session) StartDrawing(paneID string, point Point) {
	s.mu.Lock()
	if s.tool == ToolCursor {
		s.mu.Unlock()
		return
	}
	s.current = &Pending{
		Type:   s.tool,
		PaneID: paneID,
		Points: []Point{point},
		Style:  DefaultStyle(),
	}
	s.drawing = true
	s.mu.Unlock()

	s.store.ClearSelection()
}

// AddPoint appends a point to the gesture. No-op while idle.
func (s *Session) AddPoint(point Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drawing || s.current == nil {
		return
	}
	s.current.Points = append(s.current.Points, point)
}

// FinishDrawing commits the gesture into the store and returns the new
// object id. A structurally incomplete gesture (no type, pane, or
// points) falls back to cancellation and returns "". The committed
// object becomes the selection via the store's add path.
func (s *Session) FinishDrawing() string {
	s.mu.Lock()
	if !s.drawing {
		s.mu.Unlock()
		return ""
	}
	cur := s.current
	s.drawing = false
	s.current = nil
	s.mu.Unlock()

	if cur == nil || cur.Type == ToolCursor || cur.PaneID == "" || len(cur.Points) == 0 {
		return ""
	}
	return s.store.AddObject(cur.Type, cur.PaneID, cur.Points, cur.Style, nil)
}

// CancelDrawing discards any in-progress gesture. Always safe to call.
func (s *Session) CancelDrawing() {
	s.mu.Lock()
	s.drawing = false
	s.current = nil
	s.mu.Unlock()
}

// State returns a snapshot for live preview rendering.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := SessionState{ActiveTool: s.tool, IsDrawing: s.drawing}
	if s.current != nil {
		cur := *s.current
		cur.Points = make([]Point, len(s.current.Points))
		copy(cur.Points, s.current.Points)
		st.Current = &cur
	}
	return st
}
