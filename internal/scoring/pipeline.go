package scoring

import (
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/msgram/internal/model"
)

// Input is one repository analysis to score.
type Input struct {
	Name       string                `json:"name,omitempty"`
	Repository string                `json:"repository,omitempty"`
	Version    string                `json:"version,omitempty"`
	Readings   []model.MetricReading `json:"metrics"`
}

// Result holds every level of one pipeline run.
type Result struct {
	Repository         string             `json:"repository,omitempty"`
	Version            string             `json:"version,omitempty"`
	ModelVersion       string             `json:"model_version,omitempty"`
	Measures           []model.Measure    `json:"measures"`
	Subcharacteristics []model.ScoredNode `json:"subcharacteristics"`
	Characteristics    []model.ScoredNode `json:"characteristics"`
	SQC                model.ScoredNode   `json:"sqc"`
}

// CharacteristicVector returns the characteristic scores in model order.
func (r *Result) CharacteristicVector() (model.QualityVector, error) {
	return model.VectorFromNodes(r.Characteristics)
}

// Engine runs measure -> subcharacteristic -> characteristic -> SQC for one
// input, and many inputs in parallel.
type Engine struct {
	model      *model.Model
	normalizer *Normalizer
	aggregator *Aggregator
	workers    int
	logger     *slog.Logger
}

// NewEngine creates an Engine over an already validated model.
func NewEngine(m *model.Model, n *Normalizer, a *Aggregator, workers int, logger *slog.Logger) *Engine {
	if workers <= 0 {
		workers = 1
	}
	return &Engine{
		model:      m,
		normalizer: n,
		aggregator: a,
		workers:    workers,
		logger:     logger,
	}
}

// Model returns the model the engine aggregates with.
func (e *Engine) Model() *model.Model { return e.model }

// Calculate scores one input. Each level consumes the complete output of the
// one before it, so the first failing level ends the run.
func (e *Engine) Calculate(in Input) (*Result, error) {
	measures, err := e.normalizer.NormalizeAll(in.Readings)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	for _, m := range measures {
		if m.Clamped {
			e.logger.Debug("measure clamped", "input", in.Name, "measure", m.Key, "value", m.Value)
		}
	}

	values, err := model.MeasureValues(measures)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	levels := e.model.Levels()
	scored := make([][]model.ScoredNode, len(levels))
	for i, level := range levels {
		nodes, err := e.aggregator.Aggregate(level, values)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", level.Name, err)
		}
		// Weight is the node's share in the next level up.
		for j := range nodes {
			if i+1 < len(levels) {
				nodes[j].Weight, _ = levels[i+1].WeightOf(nodes[j].Key)
			} else {
				nodes[j].Weight = model.WeightTotal
			}
		}
		scored[i] = nodes
		values = model.NodeValues(nodes)
	}

	sqc := scored[2]
	if len(sqc) != 1 {
		return nil, fmt.Errorf("aggregate %s: expected one root node, got %d", model.LevelSQC, len(sqc))
	}

	return &Result{
		Repository:         in.Repository,
		Version:            in.Version,
		ModelVersion:       e.model.Version,
		Measures:           measures,
		Subcharacteristics: scored[0],
		Characteristics:    scored[1],
		SQC:                sqc[0],
	}, nil
}
