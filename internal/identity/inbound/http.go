// Package inbound exposes the identity module over HTTP.
package inbound

import (
	"context"

	"github.com/sentiqlab/sentiq/internal/identity/usecase"
	"github.com/sentiqlab/sentiq/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Profile(ctx context.Context, in usecase.ProfileInput) (*usecase.ProfileOutput, error)
}

// RegisterHTTPEndpoint attaches the identity endpoints to the router.
func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/identity/register", end.Register)
	r.POST("/api/v1/identity/login", end.Login)

	// needs authentication
	r.GET("/api/v1/identity/profile", end.Profile)
}
