package inbound

import (
	"github.com/sentiqlab/sentiq/internal/pkg/goerror"
	"github.com/sentiqlab/sentiq/internal/pkg/router"
	"github.com/sentiqlab/sentiq/internal/pkg/token"
	"github.com/sentiqlab/sentiq/internal/prediction/usecase"
)

// HTTPEndpoint exposes HTTP handlers for prediction workflows.
type HTTPEndpoint struct {
	uc uc
}

// Create scores a text and stores the result for the caller.
func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	claims := token.GetAuth(r.Context())
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	var req CreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Create(r.Context(), usecase.CreateInput{
		Email:          claims.Subject,
		Text:           req.Text,
		ModelVersion:   req.ModelVersion,
		IdempotencyKey: r.GetHeader("X-Idempotency-Key"),
	})
	if err != nil {
		return nil, err
	}

	return CreateResponse{
		ID:           resp.ID,
		ModelVersion: resp.ModelVersion,
		Label:        resp.Label,
		Score:        resp.Score,
	}, nil
}

// List returns the caller's predictions, newest first.
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	claims := token.GetAuth(r.Context())
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}
	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.List(r.Context(), usecase.ListInput{
		Email:        claims.Subject,
		Label:        r.GetQuery("label"),
		ModelVersion: r.GetQuery("model_version"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]PredictionItem, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		items = append(items, newPredictionItem(p))
	}

	return ListResponse{
		Predictions: items,
		total:       resp.Total,
		page:        resp.Page,
		limit:       resp.Limit,
	}, nil
}

// Detail returns one of the caller's predictions.
func (h *HTTPEndpoint) Detail(r *router.Request) (any, error) {
	claims := token.GetAuth(r.Context())
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	pred, err := h.uc.Detail(r.Context(), usecase.DetailInput{
		Email: claims.Subject,
		ID:    id,
	})
	if err != nil {
		return nil, err
	}

	return DetailResponse{PredictionItem: newPredictionItem(*pred)}, nil
}

// Stats returns aggregate counts over the caller's predictions.
func (h *HTTPEndpoint) Stats(r *router.Request) (any, error) {
	claims := token.GetAuth(r.Context())
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	resp, err := h.uc.Stats(r.Context(), usecase.StatsInput{Email: claims.Subject})
	if err != nil {
		return nil, err
	}

	return StatsResponse{
		Total:          resp.Total,
		ByClass:        resp.ByClass,
		ByModelVersion: resp.ByModelVersion,
	}, nil
}
