// Package engine wires the drawing and layout stores to the persistence
// adapter and an observer list. Every mutation entering through a
// Service method follows the same two-step: mutate the owning store,
// then persist the affected projection and broadcast an event to
// subscribers. Persistence is synchronous, so state is durable once the
// mutating call returns.
package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/ericsocrat/Lokifi-sub000/internal/drawing"
	"github.com/ericsocrat/Lokifi-sub000/internal/layout"
	"github.com/ericsocrat/Lokifi-sub000/internal/persist"
)

// Event describes a single store mutation for subscribers (the
// websocket feed, tests). Scope is "drawings", "layout", "session" or
// "settings".
type Event struct {
	Scope string `json:"scope"`
	Op    string `json:"op"`
	ID    string `json:"id,omitempty"`
}

// SnapSettings are the pointer-snapping toggles persisted alongside the
// drawing objects.
type SnapSettings struct {
	SnapToGrid  bool `json:"snap_to_grid"`
	SnapToPrice bool `json:"snap_to_price"`
	MagnetMode  bool `json:"magnet_mode"`
}

// SnapPatch is a partial snap-settings update.
type SnapPatch struct {
	SnapToGrid  *bool `json:"snap_to_grid,omitempty"`
	SnapToPrice *bool `json:"snap_to_price,omitempty"`
	MagnetMode  *bool `json:"magnet_mode,omitempty"`
}

// Health reports engine state for the health endpoint.
type Health struct {
	Status      string `json:"status"`
	ObjectCount int    `json:"object_count"`
	PaneCount   int    `json:"pane_count"`
	DataDir     string `json:"data_dir"`
}

// Service owns the annotation and layout stores, the drawing session,
// the snap settings and the persistence adapter.
type Service struct {
	objects *drawing.Store
	session *drawing.Session
	panes   *layout.Store
	disk    *persist.Store

	settingsMu sync.RWMutex
	settings   SnapSettings

	subMu sync.Mutex
	subs  []func(Event)
}

// NewService builds the engine, rehydrating both stores from disk when
// persisted state exists and falling back to the documented defaults
// otherwise.
func NewService(disk *persist.Store) *Service {
	s := &Service{
		objects: drawing.NewStore(),
		panes:   layout.NewStore(),
		disk:    disk,
	}
	s.session = drawing.NewSession(s.objects)

	if state, ok := disk.LoadDrawings(); ok {
		s.objects.Replace(state.Objects)
		s.settings = SnapSettings{
			SnapToGrid:  state.SnapToGrid,
			SnapToPrice: state.SnapToPrice,
			MagnetMode:  state.MagnetMode,
		}
		slog.Info("drawings rehydrated", "objects", len(state.Objects))
	}
	if state, ok := disk.LoadPanes(); ok && len(state.Panes) > 0 {
		s.panes.Replace(state.Panes)
		slog.Info("panes rehydrated", "panes", len(state.Panes))
	}

	// Subscriptions attach after rehydration so loading does not echo a
	// write back to disk.
	s.objects.Subscribe(func(op, id string) {
		s.persistDrawings()
		s.broadcast(Event{Scope: "drawings", Op: op, ID: id})
	})
	s.panes.Subscribe(func(op, id string) {
		s.persistPanes()
		s.broadcast(Event{Scope: "layout", Op: op, ID: id})
	})

	return s
}

// Subscribe registers fn for synchronous post-mutation events.
func (s *Service) Subscribe(fn func(Event)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Service) broadcast(ev Event) {
	s.subMu.Lock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (s *Service) persistDrawings() {
	if err := s.disk.SaveDrawings(s.exportDrawings()); err != nil {
		slog.Warn("drawings persist failed", "error", err)
	}
}

func (s *Service) persistPanes() {
	if err := s.disk.SavePanes(persist.PanesState{Panes: s.panes.Panes()}); err != nil {
		slog.Warn("panes persist failed", "error", err)
	}
}

func (s *Service) exportDrawings() persist.DrawingsState {
	s.settingsMu.RLock()
	set := s.settings
	s.settingsMu.RUnlock()
	return persist.DrawingsState{
		Objects:     s.objects.Objects(),
		SnapToGrid:  set.SnapToGrid,
		SnapToPrice: set.SnapToPrice,
		MagnetMode:  set.MagnetMode,
	}
}

// --- Drawing objects ---

// ObjectsByPane lists the objects owned by a pane. With drawOrder the
// result is sorted by z-index descending, newest on top; otherwise the
// original insertion order is preserved.
func (s *Service) ObjectsByPane(paneID string, drawOrder bool) []drawing.Object {
	objs := s.objects.ObjectsByPane(paneID)
	if drawOrder {
		sort.SliceStable(objs, func(i, j int) bool {
			return objs[i].Properties.ZIndex > objs[j].Properties.ZIndex
		})
	}
	return objs
}

// Object returns an object by id.
func (s *Service) Object(id string) (drawing.Object, error) {
	obj, ok := s.objects.ObjectByID(id)
	if !ok {
		return drawing.Object{}, newError(CodeObjectNotFound, fmt.Sprintf("object not found: %s", id))
	}
	return obj, nil
}

// UpdateObject applies a partial update. Missing ids are silent no-ops.
func (s *Service) UpdateObject(id string, patch drawing.ObjectPatch) {
	s.objects.UpdateObject(id, patch)
}

// SetObjectStyle merges a partial style onto the object's current style.
func (s *Service) SetObjectStyle(id string, patch drawing.StylePatch) {
	s.objects.SetObjectStyle(id, patch)
}

// SetObjectProperties merges partial properties onto the object.
func (s *Service) SetObjectProperties(id string, patch drawing.PropertiesPatch) {
	s.objects.SetObjectProperties(id, patch)
}

// MoveObject translates every point of the object by the delta.
func (s *Service) MoveObject(id string, dx, dy float64) {
	s.objects.MoveObject(id, dx, dy)
}

// MoveObjectToPane reassigns the owning pane. The target is not
// validated; an unknown pane id leaves the object dangling.
func (s *Service) MoveObjectToPane(id, paneID string) {
	s.objects.MoveObjectToPane(id, paneID)
}

// DuplicateObject copies an object with a small positional offset and
// returns the new object.
func (s *Service) DuplicateObject(id string) (drawing.Object, error) {
	newID := s.objects.DuplicateObject(id)
	if newID == "" {
		return drawing.Object{}, newError(CodeObjectNotFound, fmt.Sprintf("object not found: %s", id))
	}
	obj, _ := s.objects.ObjectByID(newID)
	return obj, nil
}

// DeleteObject removes an object. Missing ids are silent no-ops.
func (s *Service) DeleteObject(id string) {
	s.objects.DeleteObject(id)
}

// ClearObjects removes every drawing object.
func (s *Service) ClearObjects() {
	s.objects.ClearAllObjects()
}

// ClearPaneObjects removes every object owned by a pane.
func (s *Service) ClearPaneObjects(paneID string) {
	for _, obj := range s.objects.ObjectsByPane(paneID) {
		s.objects.DeleteObject(obj.ID)
	}
}

// --- Selection ---

// SelectObject marks an object selected.
func (s *Service) SelectObject(id string) {
	s.objects.SelectObject(id)
}

// ClearSelection drops the selection.
func (s *Service) ClearSelection() {
	s.objects.ClearSelection()
}

// SelectedObjects returns the zero-or-one element selection.
func (s *Service) SelectedObjects() []drawing.Object {
	return s.objects.SelectedObjects()
}

// SelectObjectsInRect hit-tests the rectangle against its pane's objects
// and selects the first with any point inside. Returns the selected id,
// "" when nothing was hit.
func (s *Service) SelectObjectsInRect(rect drawing.Rect) string {
	return s.objects.SelectObjectsInRect(rect)
}

// SetDraggedObject records the object under a pointer drag.
func (s *Service) SetDraggedObject(id string) {
	s.objects.SetDraggedObject(id)
}

// DeleteSelectedObjects removes the selected object, if any.
func (s *Service) DeleteSelectedObjects() {
	s.objects.DeleteSelectedObjects()
}

// DuplicateSelectedObjects duplicates the selected object; "" when
// nothing is selected.
func (s *Service) DuplicateSelectedObjects() string {
	return s.objects.DuplicateSelectedObjects()
}

// LockSelectedObjects locks the selected object.
func (s *Service) LockSelectedObjects() {
	s.objects.LockSelectedObjects()
}

// SetSelectedObjectsVisible sets visibility on the selected object.
func (s *Service) SetSelectedObjectsVisible(visible bool) {
	s.objects.SetSelectedObjectsVisible(visible)
}

// --- Drawing session ---

// SessionState snapshots the session for live preview.
func (s *Service) SessionState() drawing.SessionState {
	return s.session.State()
}

// SetActiveTool switches the active tool. Switching to the cursor
// abandons any in-progress gesture.
func (s *Service) SetActiveTool(tool drawing.Tool) error {
	if tool != drawing.ToolCursor && !drawing.ValidTool(tool) {
		return newError(CodeValidation, fmt.Sprintf("unknown tool: %s", tool))
	}
	s.session.SetActiveTool(tool)
	s.broadcast(Event{Scope: "session", Op: "tool", ID: string(tool)})
	return nil
}

// StartDrawing begins a gesture. No-op while the cursor tool is active.
func (s *Service) StartDrawing(paneID string, point drawing.Point) {
	s.session.StartDrawing(paneID, point)
	s.broadcast(Event{Scope: "session", Op: "start", ID: paneID})
}

// AddPoint appends a point to the in-progress gesture.
func (s *Service) AddPoint(point drawing.Point) {
	s.session.AddPoint(point)
	s.broadcast(Event{Scope: "session", Op: "point"})
}

// FinishDrawing commits the gesture and returns the created object, or
// ok=false when the gesture was incomplete and fell back to cancel.
func (s *Service) FinishDrawing() (drawing.Object, bool) {
	id := s.session.FinishDrawing()
	s.broadcast(Event{Scope: "session", Op: "finish", ID: id})
	if id == "" {
		return drawing.Object{}, false
	}
	obj, _ := s.objects.ObjectByID(id)
	return obj, true
}

// CancelDrawing discards the in-progress gesture.
func (s *Service) CancelDrawing() {
	s.session.CancelDrawing()
	s.broadcast(Event{Scope: "session", Op: "cancel"})
}

// --- Pane layout ---

// Panes lists every pane in display order.
func (s *Service) Panes() []layout.Pane {
	return s.panes.Panes()
}

// Pane returns a pane by id.
func (s *Service) Pane(id string) (layout.Pane, error) {
	p, ok := s.panes.PaneByID(id)
	if !ok {
		return layout.Pane{}, newError(CodePaneNotFound, fmt.Sprintf("pane not found: %s", id))
	}
	return p, nil
}

// AddPane creates a pane of the given type and returns it.
func (s *Service) AddPane(t layout.PaneType, indicators []string) (layout.Pane, error) {
	if t != layout.PanePrice && t != layout.PaneIndicator {
		return layout.Pane{}, newError(CodeValidation, fmt.Sprintf("unknown pane type: %s", t))
	}
	id := s.panes.AddPane(t, indicators)
	p, _ := s.panes.PaneByID(id)
	return p, nil
}

// RemovePane drops a pane. Objects referencing it are not cascaded.
func (s *Service) RemovePane(id string) {
	s.panes.RemovePane(id)
}

// ResizePane clamps the requested height to the pane type's legal range
// and writes it. Locked panes keep their height. The clamp lives here,
// on the calling path, not in the store; every height mutation must come
// through this method so the clamp rule stays uniform.
func (s *Service) ResizePane(id string, height int) {
	p, ok := s.panes.PaneByID(id)
	if !ok {
		return
	}
	s.panes.SetPaneHeight(id, layout.ClampHeight(p.Type, height))
}

// TogglePaneVisibility flips a pane's visible flag.
func (s *Service) TogglePaneVisibility(id string) {
	s.panes.TogglePaneVisibility(id)
}

// TogglePaneLock flips a pane's locked flag.
func (s *Service) TogglePaneLock(id string) {
	s.panes.TogglePaneLock(id)
}

// ReorderPanes replaces pane order; ids absent from the permutation are
// dropped.
func (s *Service) ReorderPanes(orderedIDs []string) {
	s.panes.ReorderPanes(orderedIDs)
}

// ResetPanes restores the single default price pane.
func (s *Service) ResetPanes() {
	s.panes.ResetPanes()
}

// AddIndicatorToPane appends an indicator id to a pane.
func (s *Service) AddIndicatorToPane(paneID, indicatorID string) {
	s.panes.AddIndicatorToPane(paneID, indicatorID)
}

// RemoveIndicatorFromPane removes an indicator id from a pane.
func (s *Service) RemoveIndicatorFromPane(paneID, indicatorID string) {
	s.panes.RemoveIndicatorFromPane(paneID, indicatorID)
}

// MoveIndicatorToPane moves an indicator between panes.
func (s *Service) MoveIndicatorToPane(indicatorID, fromPaneID, toPaneID string) {
	s.panes.MoveIndicatorToPane(indicatorID, fromPaneID, toPaneID)
}

// --- Settings ---

// SnapSettings returns the current snap/magnet toggles.
func (s *Service) SnapSettings() SnapSettings {
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()
	return s.settings
}

// UpdateSnapSettings merges a partial settings update, persists it with
// the drawings blob and returns the merged value.
func (s *Service) UpdateSnapSettings(patch SnapPatch) SnapSettings {
	s.settingsMu.Lock()
	if patch.SnapToGrid != nil {
		s.settings.SnapToGrid = *patch.SnapToGrid
	}
	if patch.SnapToPrice != nil {
		s.settings.SnapToPrice = *patch.SnapToPrice
	}
	if patch.MagnetMode != nil {
		s.settings.MagnetMode = *patch.MagnetMode
	}
	merged := s.settings
	s.settingsMu.Unlock()

	s.persistDrawings()
	s.broadcast(Event{Scope: "settings", Op: "update"})
	return merged
}

// --- State export/import ---

// ExportDrawingsState returns the persisted projection of the drawing
// store: objects plus snap settings.
func (s *Service) ExportDrawingsState() persist.DrawingsState {
	return s.exportDrawings()
}

// ImportDrawingsState replaces the drawing store contents and snap
// settings from a previously exported blob.
func (s *Service) ImportDrawingsState(state persist.DrawingsState) {
	s.settingsMu.Lock()
	s.settings = SnapSettings{
		SnapToGrid:  state.SnapToGrid,
		SnapToPrice: state.SnapToPrice,
		MagnetMode:  state.MagnetMode,
	}
	s.settingsMu.Unlock()
	s.objects.Replace(state.Objects)
}

// HealthCheck reports store counts and the storage location.
func (s *Service) HealthCheck() Health {
	return Health{
		Status:      "ok",
		ObjectCount: s.objects.Count(),
		PaneCount:   s.panes.Count(),
		DataDir:     s.disk.Dir(),
	}
}
