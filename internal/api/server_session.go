package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ericsocrat/Lokifi-sub000/internal/drawing"
)

func registerSessionHandlers(api huma.API, svc Service) {
	type sessionOutput struct {
		Body drawing.SessionState
	}
	huma.Register(api, huma.Operation{OperationID: "get-session", Method: http.MethodGet, Path: "/api/v1/session", Summary: "Get the drawing session state", Description: "Includes the in-progress drawing for live preview. Never persisted.", Tags: []string{"Session"}},
		func(ctx context.Context, input *struct{}) (*sessionOutput, error) {
			return &sessionOutput{Body: svc.SessionState()}, nil
		})

	type setToolInput struct {
		Body struct {
			Tool drawing.Tool `json:"tool" required:"true" doc:"A drawing tool name, or cursor for no drawing. Switching to cursor abandons an in-progress gesture."`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "set-active-tool", Method: http.MethodPut, Path: "/api/v1/session/tool", Summary: "Set the active drawing tool", Tags: []string{"Session"}},
		func(ctx context.Context, input *setToolInput) (*sessionOutput, error) {
			if err := svc.SetActiveTool(input.Body.Tool); err != nil {
				return nil, mapErr(err)
			}
			return &sessionOutput{Body: svc.SessionState()}, nil
		})

	type startInput struct {
		Body struct {
			PaneID string        `json:"pane_id" required:"true"`
			Point  drawing.Point `json:"point" required:"true"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "start-drawing", Method: http.MethodPost, Path: "/api/v1/session/start", Summary: "Start a drawing gesture", Description: "No-op while the cursor tool is active. Starting while already drawing restarts the gesture.", Tags: []string{"Session"}},
		func(ctx context.Context, input *startInput) (*sessionOutput, error) {
			svc.StartDrawing(input.Body.PaneID, input.Body.Point)
			return &sessionOutput{Body: svc.SessionState()}, nil
		})

	type pointInput struct {
		Body struct {
			Point drawing.Point `json:"point" required:"true"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "add-drawing-point", Method: http.MethodPost, Path: "/api/v1/session/points", Summary: "Append a point to the in-progress gesture", Tags: []string{"Session"}},
		func(ctx context.Context, input *pointInput) (*sessionOutput, error) {
			svc.AddPoint(input.Body.Point)
			return &sessionOutput{Body: svc.SessionState()}, nil
		})

	type finishOutput struct {
		Body struct {
			Committed bool            `json:"committed"`
			Object    *drawing.Object `json:"object,omitempty"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "finish-drawing", Method: http.MethodPost, Path: "/api/v1/session/finish", Summary: "Commit the in-progress gesture", Description: "A structurally incomplete gesture is cancelled instead of committed.", Tags: []string{"Session"}},
		func(ctx context.Context, input *struct{}) (*finishOutput, error) {
			out := &finishOutput{}
			if obj, ok := svc.FinishDrawing(); ok {
				out.Body.Committed = true
				out.Body.Object = &obj
			}
			return out, nil
		})

	huma.Register(api, huma.Operation{OperationID: "cancel-drawing", Method: http.MethodPost, Path: "/api/v1/session/cancel", Summary: "Discard the in-progress gesture", Tags: []string{"Session"}},
		func(ctx context.Context, input *struct{}) (*statusOutput, error) {
			svc.CancelDrawing()
			return statusOK(), nil
		})
}
