package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/msgram/internal/model"
)

type CalculationCompletedEvent struct {
	ReleaseID       string             `json:"release_id,omitempty"`
	Repository      string             `json:"repository"`
	Version         string             `json:"version"`
	ModelVersion    string             `json:"model_version,omitempty"`
	SQC             float64            `json:"sqc"`
	Characteristics []model.ScoredNode `json:"characteristics"`
	Timestamp       time.Time          `json:"timestamp"`
}

type CalculationFailedEvent struct {
	Repository string    `json:"repository,omitempty"`
	Version    string    `json:"version,omitempty"`
	Error      string    `json:"error"`
	Kind       string    `json:"kind,omitempty"`
	Keys       []string  `json:"keys,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type ComparisonCompletedEvent struct {
	Norm      float64           `json:"norm"`
	Entries   []model.DiffEntry `json:"entries"`
	Timestamp time.Time         `json:"timestamp"`
}
