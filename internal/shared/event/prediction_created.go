package event

// PredictionCreatedDestination is the topic for stored classification results.
const PredictionCreatedDestination = "prediction_created"

// PredictionCreatedMessage announces a stored classification result.
type PredictionCreatedMessage struct {
	PredictionID int64   `json:"prediction_id"`
	UserID       string  `json:"user_id"`
	Label        string  `json:"label"`
	Score        float64 `json:"score"`
	ModelVersion string  `json:"model_version"`
}
