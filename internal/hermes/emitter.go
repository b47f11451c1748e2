package hermes

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/msgram/internal/compare"
	"github.com/MikeSquared-Agency/msgram/internal/model"
	"github.com/MikeSquared-Agency/msgram/internal/scoring"
)

// Emitter turns engine outcomes into events. Publishing is best effort: a
// failure is logged and never fails the caller. A nil client makes every
// method a no-op.
type Emitter struct {
	client Client
	logger *slog.Logger
	now    func() time.Time
}

func NewEmitter(c Client, logger *slog.Logger) *Emitter {
	return &Emitter{client: c, logger: logger, now: time.Now}
}

func (e *Emitter) CalculationCompleted(releaseID string, res *scoring.Result) {
	if !e.enabled() {
		return
	}
	// Unsaved calculations still get a unique subject token.
	token := releaseID
	if token == "" {
		token = uuid.NewString()
	}
	subject := SubjectCalculationCompleted(token)
	e.publish(subject, CalculationCompletedEvent{
		ReleaseID:       releaseID,
		Repository:      res.Repository,
		Version:         res.Version,
		ModelVersion:    res.ModelVersion,
		SQC:             res.SQC.Value,
		Characteristics: res.Characteristics,
		Timestamp:       e.now(),
	})
}

func (e *Emitter) CalculationFailed(in scoring.Input, err error) {
	if !e.enabled() {
		return
	}
	ev := CalculationFailedEvent{
		Repository: in.Repository,
		Version:    in.Version,
		Error:      err.Error(),
		Timestamp:  e.now(),
	}
	var qerr *model.Error
	if errors.As(err, &qerr) {
		ev.Kind = string(qerr.Kind)
		ev.Keys = qerr.Keys
	}
	e.publish(SubjectCalculationFailed, ev)
}

func (e *Emitter) ComparisonCompleted(cmp compare.Comparison) {
	if !e.enabled() {
		return
	}
	e.publish(SubjectComparisonCompleted, ComparisonCompletedEvent{
		Norm:      cmp.Norm,
		Entries:   cmp.Entries,
		Timestamp: e.now(),
	})
}

func (e *Emitter) enabled() bool {
	return e != nil && e.client != nil
}

func (e *Emitter) publish(subject string, ev any) {
	if err := e.client.Publish(subject, ev); err != nil {
		e.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
