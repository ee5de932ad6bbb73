// Package entity holds the prediction module's domain types.
package entity

import (
	"time"

	"github.com/sentiqlab/sentiq/internal/pkg/valueobject"
)

// Labels produced by the scoring engines.
const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
)

// Model versions the service accepts. Unknown versions fall back to v1.
const (
	ModelVersionV1 = "v1"
	ModelVersionV2 = "v2"
)

// Prediction is a stored classification record.
type Prediction struct {
	ID           int64
	UserID       string
	ModelVersion string
	Input        valueobject.JSONMap
	Output       valueobject.JSONMap
	CreatedAt    time.Time
}

// ListFilter narrows and pages a prediction listing.
type ListFilter struct {
	UserID       string
	Label        string
	ModelVersion string
	Limit        int32
	Offset       int32
}

// StatsRow is one record's contribution to the summary aggregation.
type StatsRow struct {
	ModelVersion string
	Label        string
}
