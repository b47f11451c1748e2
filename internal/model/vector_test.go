package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualityVectorPreservesOrder(t *testing.T) {
	v, err := NewQualityVector([]KeyValue{{"b", 0.2}, {"a", 0.1}})
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, v.Keys())
	assert.Equal(t, 2, v.Len())
	val, ok := v.Value("a")
	assert.True(t, ok)
	assert.Equal(t, 0.1, val)
}

func TestQualityVectorRejectsDuplicates(t *testing.T) {
	_, err := NewQualityVector([]KeyValue{{"a", 0.1}, {"a", 0.2}})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestQualityVectorKeysIsACopy(t *testing.T) {
	v, err := NewQualityVector([]KeyValue{{"a", 0.1}})
	require.NoError(t, err)
	keys := v.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a"}, v.Keys())
}

func TestQualityVectorJSON(t *testing.T) {
	var v QualityVector
	require.NoError(t, json.Unmarshal([]byte(`[{"key":"char1","value":0.7},{"key":"char2","value":0.9}]`), &v))
	assert.Equal(t, []string{"char1", "char2"}, v.Keys())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"char1","value":0.7},{"key":"char2","value":0.9}]`, string(out))
}

func TestVectorFromMapSortsKeys(t *testing.T) {
	v := VectorFromMap(map[string]float64{"z": 1, "a": 0})
	assert.Equal(t, []string{"a", "z"}, v.Keys())
}
