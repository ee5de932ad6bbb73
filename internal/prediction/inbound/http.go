// Package inbound exposes the prediction module over HTTP.
package inbound

import (
	"context"

	"github.com/sentiqlab/sentiq/internal/pkg/router"
	"github.com/sentiqlab/sentiq/internal/prediction/entity"
	"github.com/sentiqlab/sentiq/internal/prediction/usecase"
)

type uc interface {
	Create(ctx context.Context, in usecase.CreateInput) (*usecase.CreateOutput, error)
	List(ctx context.Context, in usecase.ListInput) (*usecase.ListOutput, error)
	Detail(ctx context.Context, in usecase.DetailInput) (*entity.Prediction, error)
	Stats(ctx context.Context, in usecase.StatsInput) (*usecase.StatsOutput, error)
}

// RegisterHTTPEndpoint attaches the prediction endpoints to the router.
// All of them need authentication.
func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/predictions", end.Create)
	r.GET("/api/v1/predictions", end.List)
	r.GET("/api/v1/predictions/:id", end.Detail)

	// a dashed path, ":id" above would otherwise shadow "stats"
	r.GET("/api/v1/predictions-stats", end.Stats)
}
