package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ericsocrat/Lokifi-sub000/internal/engine"
)

func registerMiscHandlers(api huma.API, svc Service) {
	type healthOutput struct {
		Body engine.Health
	}
	huma.Register(api, huma.Operation{OperationID: "health", Method: http.MethodGet, Path: "/api/v1/health", Summary: "Engine health and store counts", Tags: []string{"System"}},
		func(ctx context.Context, input *struct{}) (*healthOutput, error) {
			return &healthOutput{Body: svc.HealthCheck()}, nil
		})

	type snapOutput struct {
		Body engine.SnapSettings
	}
	huma.Register(api, huma.Operation{OperationID: "get-snap-settings", Method: http.MethodGet, Path: "/api/v1/settings/snap", Summary: "Get snap/magnet settings", Tags: []string{"Settings"}},
		func(ctx context.Context, input *struct{}) (*snapOutput, error) {
			return &snapOutput{Body: svc.SnapSettings()}, nil
		})

	type snapPatchInput struct {
		Body engine.SnapPatch
	}
	huma.Register(api, huma.Operation{OperationID: "update-snap-settings", Method: http.MethodPatch, Path: "/api/v1/settings/snap", Summary: "Merge a partial snap/magnet settings update", Tags: []string{"Settings"}},
		func(ctx context.Context, input *snapPatchInput) (*snapOutput, error) {
			return &snapOutput{Body: svc.UpdateSnapSettings(input.Body)}, nil
		})
}
