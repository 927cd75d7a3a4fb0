package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/ericsocrat/Lokifi-sub000/internal/drawing"
	"github.com/ericsocrat/Lokifi-sub000/internal/engine"
	"github.com/ericsocrat/Lokifi-sub000/internal/layout"
	"github.com/ericsocrat/Lokifi-sub000/internal/persist"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Service is the engine surface the API consumes. Mutations keyed by a
// missing id succeed silently, matching the store contract; only reads
// and validation return errors.
type Service interface {
	ObjectsByPane(paneID string, drawOrder bool) []drawing.Object
	Object(id string) (drawing.Object, error)
	UpdateObject(id string, patch drawing.ObjectPatch)
	SetObjectStyle(id string, patch drawing.StylePatch)
	SetObjectProperties(id string, patch drawing.PropertiesPatch)
	MoveObject(id string, dx, dy float64)
	MoveObjectToPane(id, paneID string)
	DuplicateObject(id string) (drawing.Object, error)
	DeleteObject(id string)
	ClearObjects()
	ClearPaneObjects(paneID string)
	SelectObject(id string)
	ClearSelection()
	SelectedObjects() []drawing.Object
	SelectObjectsInRect(rect drawing.Rect) string
	SetDraggedObject(id string)
	DeleteSelectedObjects()
	DuplicateSelectedObjects() string
	LockSelectedObjects()
	SetSelectedObjectsVisible(visible bool)
	SessionState() drawing.SessionState
	SetActiveTool(tool drawing.Tool) error
	StartDrawing(paneID string, point drawing.Point)
	AddPoint(point drawing.Point)
	FinishDrawing() (drawing.Object, bool)
	CancelDrawing()
	Panes() []layout.Pane
	Pane(id string) (layout.Pane, error)
	AddPane(t layout.PaneType, indicators []string) (layout.Pane, error)
	RemovePane(id string)
	ResizePane(id string, height int)
	TogglePaneVisibility(id string)
	TogglePaneLock(id string)
	ReorderPanes(orderedIDs []string)
	ResetPanes()
	AddIndicatorToPane(paneID, indicatorID string)
	RemoveIndicatorFromPane(paneID, indicatorID string)
	MoveIndicatorToPane(indicatorID, fromPaneID, toPaneID string)
	SnapSettings() engine.SnapSettings
	UpdateSnapSettings(patch engine.SnapPatch) engine.SnapSettings
	ExportDrawingsState() persist.DrawingsState
	ImportDrawingsState(state persist.DrawingsState)
	HealthCheck() engine.Health
}

type objectIDInput struct {
	ObjectID string `path:"object_id"`
}

type paneIDInput struct {
	PaneID string `path:"pane_id"`
}

type objectOutput struct {
	Body drawing.Object
}

type statusOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

func statusOK() *statusOutput {
	out := &statusOutput{}
	out.Body.Status = "ok"
	return out
}

// NewServer builds the HTTP handler for the engine. events, when
// non-nil, is mounted at /ws/events for the mutation feed.
func NewServer(svc Service, events http.Handler) http.Handler {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	cfg := huma.DefaultConfig("Annotation & Layout Engine API", "1.0.0")
	cfg.DocsPath = ""
	api := humachi.New(router, cfg)

	router.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if _, err := w.Write([]byte(docsHTML)); err != nil {
			slog.Debug("docs response write failed", "error", err)
		}
	})

	if events != nil {
		router.Handle("/ws/events", events)
	}

	registerDrawingHandlers(api, svc)
	registerSessionHandlers(api, svc)
	registerLayoutHandlers(api, svc)
	registerMiscHandlers(api, svc)

	return router
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var coded *engine.CodedError
	if errors.As(err, &coded) {
		switch coded.Code {
		case engine.CodeValidation:
			return huma.Error400BadRequest(coded.Message)
		case engine.CodeObjectNotFound, engine.CodePaneNotFound:
			return huma.Error404NotFound(coded.Message)
		case engine.CodeStorageFailure:
			return huma.Error500InternalServerError(coded.Message)
		default:
			return huma.Error500InternalServerError(fmt.Sprintf("%s: %s", coded.Code, coded.Message))
		}
	}
	return huma.Error500InternalServerError(err.Error())
}
