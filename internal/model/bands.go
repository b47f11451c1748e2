package model

import (
	"fmt"
	"math"
)

// Band is one interpretation range over a planned/developed diff. Max is an
// inclusive upper bound; the last band must leave it unset.
type Band struct {
	Label string   `json:"label" yaml:"label"`
	Max   *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// ValidateBands checks that bounds strictly increase and the last band is
// unbounded so every diff falls into exactly one band.
func ValidateBands(bands []Band) error {
	if len(bands) == 0 {
		return InvalidWeights("no interpretation bands configured")
	}
	prev := math.Inf(-1)
	for i, b := range bands {
		if b.Label == "" {
			return InvalidWeights(fmt.Sprintf("band %d has no label", i))
		}
		last := i == len(bands)-1
		if b.Max == nil {
			if !last {
				return InvalidWeights("only the last band may be unbounded", b.Label)
			}
			continue
		}
		if last {
			return InvalidWeights("last band must be unbounded", b.Label)
		}
		if math.IsNaN(*b.Max) || *b.Max <= prev {
			return InvalidWeights("band bounds must strictly increase", b.Label)
		}
		prev = *b.Max
	}
	return nil
}

// Classify returns the label of the first band whose bound admits diff.
// Bands are assumed valid.
func Classify(bands []Band, diff float64) string {
	for _, b := range bands {
		if b.Max == nil || diff <= *b.Max {
			return b.Label
		}
	}
	return ""
}
