package scoring

import (
	"errors"
	"math"

	"github.com/MikeSquared-Agency/msgram/internal/model"
)

// Aggregator is the weighted-rollup engine shared by every level of the
// quality model.
type Aggregator struct {
	precision int
}

// MaxPrecision is the most decimals a float64 score can meaningfully carry.
const MaxPrecision = 15

// NewAggregator creates an Aggregator. A positive precision rounds each
// parent value to that many decimals once the full sum is known. Precision
// is bounded to [0, MaxPrecision].
func NewAggregator(precision int) *Aggregator {
	return &Aggregator{precision: min(max(precision, 0), MaxPrecision)}
}

// Aggregate computes one node per parent in level:
//
//	value = Σ (child.weight / 100) * childValues[child.key]
//
// A parent with a missing child fails alone; the remaining parents are still
// returned and the per-parent errors are joined. An invalid level fails
// before any value is computed.
func (a *Aggregator) Aggregate(level model.LevelSpec, childValues map[string]float64) ([]model.ScoredNode, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}

	nodes := make([]model.ScoredNode, 0, len(level.Nodes))
	var errs []error
	for _, parent := range level.Nodes {
		value, err := a.rollup(parent, childValues)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		nodes = append(nodes, model.ScoredNode{Key: parent.Key, Value: value})
	}
	return nodes, errors.Join(errs...)
}

func (a *Aggregator) rollup(parent model.Node, childValues map[string]float64) (float64, error) {
	var total float64
	for _, c := range parent.Children {
		v, ok := childValues[c.Key]
		if !ok {
			return 0, model.MissingKey(c.Key)
		}
		total += (c.Weight / model.WeightTotal) * v
	}
	if a.precision > 0 {
		p := math.Pow(10, float64(a.precision))
		total = math.Round(total*p) / p
	}
	return clamp(total, 0, 1), nil
}
