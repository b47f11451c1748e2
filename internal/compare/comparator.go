// Package compare measures how far a developed release is from its planned
// quality goal.
package compare

import (
	"math"

	"github.com/MikeSquared-Agency/msgram/internal/model"
)

// Comparison is the per-key diff of two vectors plus its Frobenius norm.
type Comparison struct {
	Entries []model.DiffEntry `json:"entries"`
	Norm    float64           `json:"norm"`
}

// Comparator classifies developed minus planned diffs against a fixed set of
// interpretation bands.
type Comparator struct {
	bands []model.Band
}

// NewComparator validates bands and copies them.
func NewComparator(bands []model.Band) (*Comparator, error) {
	if err := model.ValidateBands(bands); err != nil {
		return nil, err
	}
	cp := make([]model.Band, len(bands))
	copy(cp, bands)
	return &Comparator{bands: cp}, nil
}

// Bands returns the interpretation bands in ascending order.
func (c *Comparator) Bands() []model.Band {
	out := make([]model.Band, len(c.bands))
	copy(out, c.bands)
	return out
}

// Compare diffs developed against planned. Both vectors must hold exactly the
// same keys; entries follow the planned order.
func (c *Comparator) Compare(planned, developed model.QualityVector) (Comparison, error) {
	if err := checkShape(planned, developed); err != nil {
		return Comparison{}, err
	}

	entries := make([]model.DiffEntry, 0, planned.Len())
	var sq float64
	for _, key := range planned.Keys() {
		p, _ := planned.Value(key)
		d, _ := developed.Value(key)
		diff := d - p
		sq += diff * diff
		entries = append(entries, model.DiffEntry{
			Key:            key,
			Planned:        p,
			Developed:      d,
			Diff:           diff,
			Interpretation: model.Classify(c.bands, diff),
		})
	}
	return Comparison{Entries: entries, Norm: math.Sqrt(sq)}, nil
}

// NormDiff returns only the Frobenius norm of developed minus planned.
func NormDiff(planned, developed model.QualityVector) (float64, error) {
	if err := checkShape(planned, developed); err != nil {
		return 0, err
	}
	var sq float64
	for _, key := range planned.Keys() {
		p, _ := planned.Value(key)
		d, _ := developed.Value(key)
		sq += (d - p) * (d - p)
	}
	return math.Sqrt(sq), nil
}

func checkShape(planned, developed model.QualityVector) error {
	var missing, extra []string
	for _, key := range planned.Keys() {
		if _, ok := developed.Value(key); !ok {
			missing = append(missing, key)
		}
	}
	for _, key := range developed.Keys() {
		if _, ok := planned.Value(key); !ok {
			extra = append(extra, key)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		return model.ShapeMismatch(missing, extra)
	}
	return nil
}
