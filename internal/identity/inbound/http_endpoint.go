package inbound

import (
	"github.com/sentiqlab/sentiq/internal/identity/usecase"
	"github.com/sentiqlab/sentiq/internal/pkg/goerror"
	"github.com/sentiqlab/sentiq/internal/pkg/router"
	"github.com/sentiqlab/sentiq/internal/pkg/token"
)

// HTTPEndpoint exposes HTTP handlers for account workflows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates an account and returns an access token.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		UserID:      resp.UserID,
		Email:       resp.Email,
		FullName:    resp.FullName,
		AccessToken: resp.AccessToken,
	}, nil
}

// Login authenticates a user and returns an access token.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{AccessToken: resp.AccessToken}, nil
}

// Profile returns the authenticated account.
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	claims := token.GetAuth(r.Context())
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	resp, err := h.uc.Profile(r.Context(), usecase.ProfileInput{Email: claims.Subject})
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		UserID:    resp.UserID,
		Email:     resp.Email,
		FullName:  resp.FullName,
		CreatedAt: resp.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
