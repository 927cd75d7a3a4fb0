package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ericsocrat/Lokifi-sub000/internal/drawing"
	"github.com/ericsocrat/Lokifi-sub000/internal/persist"
)

func registerDrawingHandlers(api huma.API, svc Service) {
	// --- Tool catalog ---

	type toolGroupsOutput struct {
		Body struct {
			Groups []drawing.ToolGroup `json:"groups"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "list-drawing-tools", Method: http.MethodGet, Path: "/api/v1/drawings/tools", Summary: "List drawing tools grouped by category", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *struct{}) (*toolGroupsOutput, error) {
			out := &toolGroupsOutput{}
			out.Body.Groups = drawing.ToolGroups
			return out, nil
		})

	// --- Object CRUD ---

	type paneObjectsInput struct {
		PaneID    string `path:"pane_id"`
		DrawOrder bool   `query:"draw_order" doc:"Sort by z-index descending (newest on top) instead of insertion order."`
	}
	type objectListOutput struct {
		Body struct {
			PaneID  string           `json:"pane_id"`
			Objects []drawing.Object `json:"objects"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "list-pane-objects", Method: http.MethodGet, Path: "/api/v1/panes/{pane_id}/objects", Summary: "List drawing objects owned by a pane", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *paneObjectsInput) (*objectListOutput, error) {
			out := &objectListOutput{}
			out.Body.PaneID = input.PaneID
			out.Body.Objects = svc.ObjectsByPane(input.PaneID, input.DrawOrder)
			return out, nil
		})

	huma.Register(api, huma.Operation{OperationID: "clear-pane-objects", Method: http.MethodDelete, Path: "/api/v1/panes/{pane_id}/objects", Summary: "Delete every drawing object owned by a pane", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *paneIDInput) (*statusOutput, error) {
			svc.ClearPaneObjects(input.PaneID)
			return statusOK(), nil
		})

	huma.Register(api, huma.Operation{OperationID: "get-object", Method: http.MethodGet, Path: "/api/v1/objects/{object_id}", Summary: "Get a drawing object by id", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *objectIDInput) (*objectOutput, error) {
			obj, err := svc.Object(input.ObjectID)
			if err != nil {
				return nil, mapErr(err)
			}
			return &objectOutput{Body: obj}, nil
		})

	type updateObjectInput struct {
		ObjectID string `path:"object_id"`
		Body     drawing.ObjectPatch
	}
	huma.Register(api, huma.Operation{OperationID: "update-object", Method: http.MethodPatch, Path: "/api/v1/objects/{object_id}", Summary: "Partially update a drawing object", Description: "Properties merge field-by-field; other supplied fields replace the current value. A missing id is a silent no-op.", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *updateObjectInput) (*statusOutput, error) {
			svc.UpdateObject(input.ObjectID, input.Body)
			return statusOK(), nil
		})

	type styleInput struct {
		ObjectID string `path:"object_id"`
		Body     drawing.StylePatch
	}
	huma.Register(api, huma.Operation{OperationID: "set-object-style", Method: http.MethodPatch, Path: "/api/v1/objects/{object_id}/style", Summary: "Merge a partial style onto an object", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *styleInput) (*statusOutput, error) {
			svc.SetObjectStyle(input.ObjectID, input.Body)
			return statusOK(), nil
		})

	type propertiesInput struct {
		ObjectID string `path:"object_id"`
		Body     drawing.PropertiesPatch
	}
	huma.Register(api, huma.Operation{OperationID: "set-object-properties", Method: http.MethodPatch, Path: "/api/v1/objects/{object_id}/properties", Summary: "Merge partial properties onto an object", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *propertiesInput) (*statusOutput, error) {
			svc.SetObjectProperties(input.ObjectID, input.Body)
			return statusOK(), nil
		})

	type moveObjectInput struct {
		ObjectID string `path:"object_id"`
		Body     struct {
			DeltaX float64 `json:"delta_x"`
			DeltaY float64 `json:"delta_y"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "move-object", Method: http.MethodPost, Path: "/api/v1/objects/{object_id}/move", Summary: "Translate every point of an object by a screen-space delta", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *moveObjectInput) (*statusOutput, error) {
			svc.MoveObject(input.ObjectID, input.Body.DeltaX, input.Body.DeltaY)
			return statusOK(), nil
		})

	type movePaneInput struct {
		ObjectID string `path:"object_id"`
		Body     struct {
			PaneID string `json:"pane_id" required:"true"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "move-object-to-pane", Method: http.MethodPost, Path: "/api/v1/objects/{object_id}/move-to-pane", Summary: "Reassign an object's owning pane", Description: "The target pane is not validated; an unknown id leaves the object unrenderable.", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *movePaneInput) (*statusOutput, error) {
			svc.MoveObjectToPane(input.ObjectID, input.Body.PaneID)
			return statusOK(), nil
		})

	huma.Register(api, huma.Operation{OperationID: "duplicate-object", Method: http.MethodPost, Path: "/api/v1/objects/{object_id}/duplicate", Summary: "Duplicate an object with a small positional offset", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *objectIDInput) (*objectOutput, error) {
			obj, err := svc.DuplicateObject(input.ObjectID)
			if err != nil {
				return nil, mapErr(err)
			}
			return &objectOutput{Body: obj}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "delete-object", Method: http.MethodDelete, Path: "/api/v1/objects/{object_id}", Summary: "Delete a drawing object", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *objectIDInput) (*statusOutput, error) {
			svc.DeleteObject(input.ObjectID)
			return statusOK(), nil
		})

	huma.Register(api, huma.Operation{OperationID: "clear-objects", Method: http.MethodDelete, Path: "/api/v1/objects", Summary: "Delete every drawing object", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *struct{}) (*statusOutput, error) {
			svc.ClearObjects()
			return statusOK(), nil
		})

	// --- Selection ---

	type selectionOutput struct {
		Body struct {
			Objects []drawing.Object `json:"objects"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "get-selection", Method: http.MethodGet, Path: "/api/v1/selection", Summary: "Get the selected objects (zero or one)", Tags: []string{"Selection"}},
		func(ctx context.Context, input *struct{}) (*selectionOutput, error) {
			out := &selectionOutput{}
			out.Body.Objects = svc.SelectedObjects()
			return out, nil
		})

	huma.Register(api, huma.Operation{OperationID: "select-object", Method: http.MethodPut, Path: "/api/v1/selection/{object_id}", Summary: "Select an object by id", Tags: []string{"Selection"}},
		func(ctx context.Context, input *objectIDInput) (*statusOutput, error) {
			svc.SelectObject(input.ObjectID)
			return statusOK(), nil
		})

	huma.Register(api, huma.Operation{OperationID: "clear-selection", Method: http.MethodDelete, Path: "/api/v1/selection", Summary: "Clear the selection", Tags: []string{"Selection"}},
		func(ctx context.Context, input *struct{}) (*statusOutput, error) {
			svc.ClearSelection()
			return statusOK(), nil
		})

	type selectRectInput struct {
		Body drawing.Rect
	}
	type selectRectOutput struct {
		Body struct {
			SelectedID string `json:"selected_id,omitempty"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "select-in-rect", Method: http.MethodPost, Path: "/api/v1/selection/rect", Summary: "Select the first object with a point inside a pane-scoped rectangle", Tags: []string{"Selection"}},
		func(ctx context.Context, input *selectRectInput) (*selectRectOutput, error) {
			out := &selectRectOutput{}
			out.Body.SelectedID = svc.SelectObjectsInRect(input.Body)
			return out, nil
		})

	type dragInput struct {
		Body struct {
			ObjectID string `json:"object_id"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "set-dragged-object", Method: http.MethodPut, Path: "/api/v1/selection/dragged", Summary: "Record the object under a pointer drag (empty id clears)", Tags: []string{"Selection"}},
		func(ctx context.Context, input *dragInput) (*statusOutput, error) {
			svc.SetDraggedObject(input.Body.ObjectID)
			return statusOK(), nil
		})

	huma.Register(api, huma.Operation{OperationID: "delete-selected", Method: http.MethodPost, Path: "/api/v1/selection/delete", Summary: "Delete the selected object", Tags: []string{"Selection"}},
		func(ctx context.Context, input *struct{}) (*statusOutput, error) {
			svc.DeleteSelectedObjects()
			return statusOK(), nil
		})

	type duplicateSelectedOutput struct {
		Body struct {
			NewID string `json:"new_id,omitempty"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "duplicate-selected", Method: http.MethodPost, Path: "/api/v1/selection/duplicate", Summary: "Duplicate the selected object", Tags: []string{"Selection"}},
		func(ctx context.Context, input *struct{}) (*duplicateSelectedOutput, error) {
			out := &duplicateSelectedOutput{}
			out.Body.NewID = svc.DuplicateSelectedObjects()
			return out, nil
		})

	huma.Register(api, huma.Operation{OperationID: "lock-selected", Method: http.MethodPost, Path: "/api/v1/selection/lock", Summary: "Lock the selected object", Tags: []string{"Selection"}},
		func(ctx context.Context, input *struct{}) (*statusOutput, error) {
			svc.LockSelectedObjects()
			return statusOK(), nil
		})

	type visibleInput struct {
		Body struct {
			Visible bool `json:"visible"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "set-selected-visible", Method: http.MethodPost, Path: "/api/v1/selection/visible", Summary: "Set visibility of the selected object", Tags: []string{"Selection"}},
		func(ctx context.Context, input *visibleInput) (*statusOutput, error) {
			svc.SetSelectedObjectsVisible(input.Body.Visible)
			return statusOK(), nil
		})

	// --- State export/import ---

	type exportOutput struct {
		Body persist.DrawingsState
	}
	huma.Register(api, huma.Operation{OperationID: "export-drawings-state", Method: http.MethodGet, Path: "/api/v1/drawings/state", Summary: "Export the persisted drawings projection", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *struct{}) (*exportOutput, error) {
			return &exportOutput{Body: svc.ExportDrawingsState()}, nil
		})

	type importInput struct {
		Body persist.DrawingsState
	}
	huma.Register(api, huma.Operation{OperationID: "import-drawings-state", Method: http.MethodPut, Path: "/api/v1/drawings/state", Summary: "Replace the drawing store from an exported projection", Tags: []string{"Drawings"}},
		func(ctx context.Context, input *importInput) (*statusOutput, error) {
			svc.ImportDrawingsState(input.Body)
			return statusOK(), nil
		})
}
