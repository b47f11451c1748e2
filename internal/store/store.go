package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/msgram/internal/scoring"
)

// Release is one scored analysis of a repository at a version.
type Release struct {
	ID           uuid.UUID       `json:"release_id"`
	Repository   string          `json:"repository"`
	Version      string          `json:"version"`
	ModelVersion string          `json:"model_version,omitempty"`
	SQC          float64         `json:"sqc"`
	Result       *scoring.Result `json:"result"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewRelease wraps a pipeline result for persistence.
func NewRelease(res *scoring.Result) *Release {
	return &Release{
		Repository:   res.Repository,
		Version:      res.Version,
		ModelVersion: res.ModelVersion,
		SQC:          res.SQC.Value,
		Result:       res,
	}
}

type ReleaseFilter struct {
	Repository string
	Limit      int
}

type Store interface {
	SaveRelease(ctx context.Context, r *Release) error
	GetRelease(ctx context.Context, id uuid.UUID) (*Release, error)
	ListReleases(ctx context.Context, filter ReleaseFilter) ([]*Release, error)
	Ping(ctx context.Context) error
	Close() error
}
