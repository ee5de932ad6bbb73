// Package engine provides the sentiment scorers behind the prediction
// module: a deterministic in-process mock and a remote HTTP model server.
// The driver is chosen from config.
package engine

import (
	"fmt"

	"github.com/sentiqlab/sentiq/internal/pkg/config"
	"github.com/sentiqlab/sentiq/internal/pkg/instrument"
	"github.com/sentiqlab/sentiq/internal/prediction/usecase"
)

const (
	DriverMock   = "mock"
	DriverRemote = "remote"
)

// NewFromDriver builds the engine named by "modules.prediction.engine.driver".
func NewFromDriver(cfg config.Config, ins instrument.Instrumentation) (usecase.Engine, error) {
	driver := cfg.GetString("modules.prediction.engine.driver")
	switch driver {
	case DriverMock, "":
		return NewMock(ins), nil
	case DriverRemote:
		return NewRemote(cfg, ins), nil
	default:
		return nil, fmt.Errorf("unknown engine driver %q", driver)
	}
}

// normalizeVersion falls back to v1 for anything it does not recognize.
func normalizeVersion(version string) string {
	if version == "v2" {
		return "v2"
	}
	return "v1"
}
