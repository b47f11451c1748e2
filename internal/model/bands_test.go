package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestValidateBands(t *testing.T) {
	tests := []struct {
		name  string
		bands []Band
		ok    bool
	}{
		{"default", []Band{{Label: "low", Max: f(-0.05)}, {Label: "ok", Max: f(0.05)}, {Label: "high"}}, true},
		{"single unbounded", []Band{{Label: "any"}}, true},
		{"empty", nil, false},
		{"missing label", []Band{{Max: f(0)}, {Label: "high"}}, false},
		{"bounded last", []Band{{Label: "low", Max: f(0)}}, false},
		{"unbounded middle", []Band{{Label: "low"}, {Label: "high"}}, false},
		{"not increasing", []Band{{Label: "a", Max: f(0.1)}, {Label: "b", Max: f(0.1)}, {Label: "c"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBands(tt.bands)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidWeightConfiguration)
			}
		})
	}
}

func TestClassifyUpperBoundInclusive(t *testing.T) {
	bands := []Band{{Label: "low", Max: f(-0.05)}, {Label: "ok", Max: f(0.05)}, {Label: "high"}}
	assert.Equal(t, "low", Classify(bands, -0.05))
	assert.Equal(t, "ok", Classify(bands, 0.05))
	assert.Equal(t, "high", Classify(bands, 0.0501))
	assert.Equal(t, "low", Classify(bands, -1))
}
