package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sentiqlab/sentiq/internal/pkg/config"
	"github.com/sentiqlab/sentiq/internal/pkg/instrument"
	"github.com/sentiqlab/sentiq/internal/prediction/usecase"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
)

type remoteRequest struct {
	Text         string `json:"text"`
	ModelVersion string `json:"model_version"`
}

type remoteResponse struct {
	Label        string  `json:"label"`
	Score        float64 `json:"score"`
	ModelVersion string  `json:"model_version"`
}

// Remote scores texts against an HTTP model server. Transient failures
// (5xx, transport errors) are retried with exponential backoff.
type Remote struct {
	client     *http.Client
	baseURL    string
	maxRetries uint64
	backoff    time.Duration
	ins        instrument.Instrumentation
}

// NewRemote constructs the remote engine from config.
func NewRemote(cfg config.Config, ins instrument.Instrumentation) *Remote {
	maxRetries := cfg.GetUint16("modules.prediction.engine.remote.max_retries")
	if maxRetries == 0 {
		maxRetries = 2
	}
	backoff := cfg.GetSecond("modules.prediction.engine.remote.backoff_seconds")
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}

	timeout := cfg.GetSecond("modules.prediction.engine.remote.timeout_seconds")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Remote{
		client:     &http.Client{Timeout: timeout},
		baseURL:    cfg.GetString("modules.prediction.engine.remote.base_url"),
		maxRetries: uint64(maxRetries),
		backoff:    backoff,
		ins:        ins,
	}
}

// Predict posts the text to the model server and returns its verdict.
func (r *Remote) Predict(ctx context.Context, text, version string) (*usecase.EngineResult, error) {
	ctx, span := r.ins.Tracer("prediction.outbound.engine").Start(ctx, "Remote.Predict")
	defer span.End()

	start := time.Now()
	version = normalizeVersion(version)

	body, err := json.Marshal(remoteRequest{Text: text, ModelVersion: version})
	if err != nil {
		return nil, err
	}

	var out remoteResponse
	backoff := retry.WithMaxRetries(r.maxRetries, retry.NewExponential(r.backoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return r.predictOnce(ctx, body, &out)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if out.ModelVersion == "" {
		out.ModelVersion = version
	}

	return &usecase.EngineResult{
		Label:        out.Label,
		Score:        out.Score,
		ModelVersion: out.ModelVersion,
		ElapsedMS:    float64(time.Since(start).Microseconds()) / 1000.0,
	}, nil
}

func (r *Remote) predictOnce(ctx context.Context, body []byte, out *remoteResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return retry.RetryableError(fmt.Errorf("model server returned %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model server returned %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
