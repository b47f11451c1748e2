package compare

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/msgram/internal/model"
)

func ptr(v float64) *float64 { return &v }

func defaultBands() []model.Band {
	return []model.Band{
		{Label: "deficient", Max: ptr(-0.05)},
		{Label: "satisfactory", Max: ptr(0.05)},
		{Label: "exceeded"},
	}
}

func vector(t *testing.T, kv ...model.KeyValue) model.QualityVector {
	t.Helper()
	v, err := model.NewQualityVector(kv)
	require.NoError(t, err)
	return v
}

func newComparator(t *testing.T) *Comparator {
	t.Helper()
	c, err := NewComparator(defaultBands())
	require.NoError(t, err)
	return c
}

func TestCompare(t *testing.T) {
	c := newComparator(t)
	planned := vector(t, model.KeyValue{Key: "reliability", Value: 0.8}, model.KeyValue{Key: "maintainability", Value: 0.7})
	developed := vector(t, model.KeyValue{Key: "maintainability", Value: 0.7}, model.KeyValue{Key: "reliability", Value: 0.6})

	cmp, err := c.Compare(planned, developed)
	require.NoError(t, err)
	require.Len(t, cmp.Entries, 2)

	rel := cmp.Entries[0]
	assert.Equal(t, "reliability", rel.Key)
	assert.InDelta(t, -0.2, rel.Diff, 1e-9)
	assert.Equal(t, "deficient", rel.Interpretation)

	mnt := cmp.Entries[1]
	assert.Equal(t, "maintainability", mnt.Key)
	assert.InDelta(t, 0, mnt.Diff, 1e-12)
	assert.Equal(t, "satisfactory", mnt.Interpretation)

	assert.InDelta(t, 0.2, cmp.Norm, 1e-9)
}

func TestCompareBandBoundaries(t *testing.T) {
	c := newComparator(t)
	tests := []struct {
		developed float64
		want      string
	}{
		{0.4, "deficient"},
		{0.5, "satisfactory"},
		{0.56, "exceeded"},
		{1, "exceeded"},
	}
	for _, tt := range tests {
		cmp, err := c.Compare(
			vector(t, model.KeyValue{Key: "k", Value: 0.5}),
			vector(t, model.KeyValue{Key: "k", Value: tt.developed}),
		)
		require.NoError(t, err)
		assert.Equal(t, tt.want, cmp.Entries[0].Interpretation, "developed %v", tt.developed)
	}
}

func TestCompareShapeMismatch(t *testing.T) {
	c := newComparator(t)
	planned := vector(t, model.KeyValue{Key: "reliability", Value: 0.8}, model.KeyValue{Key: "maintainability", Value: 0.7})
	developed := vector(t, model.KeyValue{Key: "reliability", Value: 0.6}, model.KeyValue{Key: "usability", Value: 0.5})

	cmp, err := c.Compare(planned, developed)
	require.Error(t, err)
	assert.Empty(t, cmp.Entries)

	var qerr *model.Error
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, model.KindShapeMismatch, qerr.Kind)
	assert.Equal(t, []string{"maintainability", "usability"}, qerr.Keys)
	assert.Contains(t, qerr.Detail, "missing from developed: maintainability")
	assert.Contains(t, qerr.Detail, "not planned: usability")

	_, err = NormDiff(planned, developed)
	assert.ErrorIs(t, err, model.ErrShapeMismatch)
}

func TestNewComparatorRejectsBadBands(t *testing.T) {
	_, err := NewComparator([]model.Band{{Label: "a", Max: ptr(0.1)}, {Label: "b", Max: ptr(0.0)}, {Label: "c"}})
	assert.ErrorIs(t, err, model.ErrInvalidWeightConfiguration)

	_, err = NewComparator(nil)
	assert.ErrorIs(t, err, model.ErrInvalidWeightConfiguration)
}

func TestComparatorCopiesBands(t *testing.T) {
	bands := defaultBands()
	c, err := NewComparator(bands)
	require.NoError(t, err)
	bands[0].Label = "changed"
	assert.Equal(t, "deficient", c.Bands()[0].Label)
}

func TestNormDiffProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	keys := []string{"reliability", "maintainability", "usability"}
	toVector := func(values []float64) model.QualityVector {
		m := make(map[string]float64, len(keys))
		for i, k := range keys {
			m[k] = values[i]
		}
		return model.VectorFromMap(m)
	}
	unit := gen.SliceOfN(len(keys), gen.Float64Range(0, 1))

	properties.Property("norm of a vector with itself is zero", prop.ForAll(
		func(a []float64) bool {
			n, err := NormDiff(toVector(a), toVector(a))
			return err == nil && n == 0
		},
		unit,
	))

	properties.Property("norm is symmetric", prop.ForAll(
		func(a, b []float64) bool {
			ab, err1 := NormDiff(toVector(a), toVector(b))
			ba, err2 := NormDiff(toVector(b), toVector(a))
			return err1 == nil && err2 == nil && math.Abs(ab-ba) < 1e-12
		},
		unit, unit,
	))

	properties.Property("compare agrees with norm diff", prop.ForAll(
		func(a, b []float64) bool {
			c, err := NewComparator(defaultBands())
			if err != nil {
				return false
			}
			cmp, err := c.Compare(toVector(a), toVector(b))
			if err != nil {
				return false
			}
			n, _ := NormDiff(toVector(a), toVector(b))
			return math.Abs(cmp.Norm-n) < 1e-12
		},
		unit, unit,
	))

	properties.TestingRun(t)
}
