package inbound

import (
	"net/http"

	"github.com/sentiqlab/sentiq/internal/prediction/entity"
)

type CreateRequest struct {
	Text         string `json:"text"`
	ModelVersion string `json:"model_version"`
}

type CreateResponse struct {
	ID           int64   `json:"id"`
	ModelVersion string  `json:"model_version"`
	Label        string  `json:"label"`
	Score        float64 `json:"score"`
}

func (CreateResponse) Message() string {
	return "Prediction created"
}

func (CreateResponse) StatusCode() int {
	return http.StatusCreated
}

type PredictionItem struct {
	ID           int64   `json:"id"`
	ModelVersion string  `json:"model_version"`
	Text         string  `json:"text"`
	Label        string  `json:"label"`
	Score        float64 `json:"score"`
	ElapsedMS    float64 `json:"elapsed_ms"`
	CreatedAt    string  `json:"created_at"`
}

func newPredictionItem(p entity.Prediction) PredictionItem {
	return PredictionItem{
		ID:           p.ID,
		ModelVersion: p.ModelVersion,
		Text:         p.Input.GetString("text"),
		Label:        p.Output.GetString("label"),
		Score:        p.Output.GetFloat64("score"),
		ElapsedMS:    p.Output.GetFloat64("elapsed_ms"),
		CreatedAt:    p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

type ListResponse struct {
	Predictions []PredictionItem `json:"predictions"`

	total int64
	page  int32
	limit int32
}

func (l ListResponse) Meta() map[string]any {
	return map[string]any{
		"total": l.total,
		"page":  l.page,
		"limit": l.limit,
	}
}

type DetailResponse struct {
	PredictionItem
}

type StatsResponse struct {
	Total          int64            `json:"total"`
	ByClass        map[string]int64 `json:"by_class"`
	ByModelVersion map[string]int64 `json:"by_model_version"`
}
