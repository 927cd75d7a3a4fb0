package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ericsocrat/Lokifi-sub000/internal/layout"
)

func registerLayoutHandlers(api huma.API, svc Service) {
	type paneListOutput struct {
		Body struct {
			Panes []layout.Pane `json:"panes"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "list-panes", Method: http.MethodGet, Path: "/api/v1/panes", Summary: "List panes in display order", Tags: []string{"Layout"}},
		func(ctx context.Context, input *struct{}) (*paneListOutput, error) {
			out := &paneListOutput{}
			out.Body.Panes = svc.Panes()
			return out, nil
		})

	type paneOutput struct {
		Body layout.Pane
	}
	huma.Register(api, huma.Operation{OperationID: "get-pane", Method: http.MethodGet, Path: "/api/v1/panes/{pane_id}", Summary: "Get a pane by id", Tags: []string{"Layout"}},
		func(ctx context.Context, input *paneIDInput) (*paneOutput, error) {
			p, err := svc.Pane(input.PaneID)
			if err != nil {
				return nil, mapErr(err)
			}
			return &paneOutput{Body: p}, nil
		})

	type addPaneInput struct {
		Body struct {
			Type       layout.PaneType `json:"type" required:"true" enum:"price,indicator"`
			Indicators []string        `json:"indicators,omitempty"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "add-pane", Method: http.MethodPost, Path: "/api/v1/panes", Summary: "Add a pane", Description: "Default height is 400 for price panes and 150 for indicator panes.", Tags: []string{"Layout"}},
		func(ctx context.Context, input *addPaneInput) (*paneOutput, error) {
			p, err := svc.AddPane(input.Body.Type, input.Body.Indicators)
			if err != nil {
				return nil, mapErr(err)
			}
			return &paneOutput{Body: p}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "remove-pane", Method: http.MethodDelete, Path: "/api/v1/panes/{pane_id}", Summary: "Remove a pane", Description: "Drawing objects referencing the pane are not cascade-deleted; they dangle until cleaned up.", Tags: []string{"Layout"}},
		func(ctx context.Context, input *paneIDInput) (*statusOutput, error) {
			svc.RemovePane(input.PaneID)
			return statusOK(), nil
		})

	type resizeInput struct {
		PaneID string `path:"pane_id"`
		Body   struct {
			Height int `json:"height" required:"true"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "resize-pane", Method: http.MethodPatch, Path: "/api/v1/panes/{pane_id}/height", Summary: "Resize a pane", Description: "Height is clamped to the pane type's legal range. Locked panes keep their height.", Tags: []string{"Layout"}},
		func(ctx context.Context, input *resizeInput) (*statusOutput, error) {
			svc.ResizePane(input.PaneID, input.Body.Height)
			return statusOK(), nil
		})

	huma.Register(api, huma.Operation{OperationID: "toggle-pane-visibility", Method: http.MethodPost, Path: "/api/v1/panes/{pane_id}/toggle-visibility", Summary: "Toggle a pane's visibility", Tags: []string{"Layout"}},
		func(ctx context.Context, input *paneIDInput) (*statusOutput, error) {
			svc.TogglePaneVisibility(input.PaneID)
			return statusOK(), nil
		})

	huma.Register(api, huma.Operation{OperationID: "toggle-pane-lock", Method: http.MethodPost, Path: "/api/v1/panes/{pane_id}/toggle-lock", Summary: "Toggle a pane's lock", Tags: []string{"Layout"}},
		func(ctx context.Context, input *paneIDInput) (*statusOutput, error) {
			svc.TogglePaneLock(input.PaneID)
			return statusOK(), nil
		})

	type reorderInput struct {
		Body struct {
			OrderedIDs []string `json:"ordered_ids" required:"true"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "reorder-panes", Method: http.MethodPut, Path: "/api/v1/panes/order", Summary: "Replace the pane order", Description: "Panes whose id is absent from the permutation are dropped from the result.", Tags: []string{"Layout"}},
		func(ctx context.Context, input *reorderInput) (*paneListOutput, error) {
			svc.ReorderPanes(input.Body.OrderedIDs)
			out := &paneListOutput{}
			out.Body.Panes = svc.Panes()
			return out, nil
		})

	huma.Register(api, huma.Operation{OperationID: "reset-panes", Method: http.MethodPost, Path: "/api/v1/panes/reset", Summary: "Restore the single default price pane", Tags: []string{"Layout"}},
		func(ctx context.Context, input *struct{}) (*paneListOutput, error) {
			svc.ResetPanes()
			out := &paneListOutput{}
			out.Body.Panes = svc.Panes()
			return out, nil
		})

	type indicatorInput struct {
		PaneID string `path:"pane_id"`
		Body   struct {
			IndicatorID string `json:"indicator_id" required:"true"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "add-pane-indicator", Method: http.MethodPost, Path: "/api/v1/panes/{pane_id}/indicators", Summary: "Attach an indicator to a pane", Description: "Duplicates are permitted; insertion order is display order.", Tags: []string{"Layout"}},
		func(ctx context.Context, input *indicatorInput) (*statusOutput, error) {
			svc.AddIndicatorToPane(input.PaneID, input.Body.IndicatorID)
			return statusOK(), nil
		})

	type removeIndicatorInput struct {
		PaneID      string `path:"pane_id"`
		IndicatorID string `path:"indicator_id"`
	}
	huma.Register(api, huma.Operation{OperationID: "remove-pane-indicator", Method: http.MethodDelete, Path: "/api/v1/panes/{pane_id}/indicators/{indicator_id}", Summary: "Detach an indicator from a pane", Tags: []string{"Layout"}},
		func(ctx context.Context, input *removeIndicatorInput) (*statusOutput, error) {
			svc.RemoveIndicatorFromPane(input.PaneID, input.IndicatorID)
			return statusOK(), nil
		})

	type moveIndicatorInput struct {
		Body struct {
			IndicatorID string `json:"indicator_id" required:"true"`
			FromPaneID  string `json:"from_pane_id" required:"true"`
			ToPaneID    string `json:"to_pane_id" required:"true"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "move-indicator", Method: http.MethodPost, Path: "/api/v1/panes/indicators/move", Summary: "Move an indicator between panes", Description: "The append to the target pane happens even when the indicator was absent from the source.", Tags: []string{"Layout"}},
		func(ctx context.Context, input *moveIndicatorInput) (*statusOutput, error) {
			svc.MoveIndicatorToPane(input.Body.IndicatorID, input.Body.FromPaneID, input.Body.ToPaneID)
			return statusOK(), nil
		})
}
