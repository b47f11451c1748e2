package model

import (
	"encoding/json"
	"sort"
)

// QualityVector is an ordered, read-only mapping of key to value for one
// release's characteristic scores.
type QualityVector struct {
	keys   []string
	values map[string]float64
}

// NewQualityVector builds a vector preserving the order of entries.
func NewQualityVector(entries []KeyValue) (QualityVector, error) {
	values, err := IndexValues(entries)
	if err != nil {
		return QualityVector{}, err
	}
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return QualityVector{keys: keys, values: values}, nil
}

// VectorFromMap builds a vector ordered by key.
func VectorFromMap(m map[string]float64) QualityVector {
	keys := make([]string, 0, len(m))
	values := make(map[string]float64, len(m))
	for k, v := range m {
		keys = append(keys, k)
		values[k] = v
	}
	sort.Strings(keys)
	return QualityVector{keys: keys, values: values}
}

// VectorFromNodes builds a vector from scored nodes in their order.
func VectorFromNodes(nodes []ScoredNode) (QualityVector, error) {
	entries := make([]KeyValue, len(nodes))
	for i, n := range nodes {
		entries[i] = KeyValue{Key: n.Key, Value: n.Value}
	}
	return NewQualityVector(entries)
}

func (v QualityVector) Len() int { return len(v.keys) }

func (v QualityVector) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

func (v QualityVector) Value(key string) (float64, bool) {
	val, ok := v.values[key]
	return val, ok
}

func (v QualityVector) Entries() []KeyValue {
	out := make([]KeyValue, len(v.keys))
	for i, k := range v.keys {
		out[i] = KeyValue{Key: k, Value: v.values[k]}
	}
	return out
}

func (v QualityVector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Entries())
}

func (v *QualityVector) UnmarshalJSON(data []byte) error {
	var entries []KeyValue
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	parsed, err := NewQualityVector(entries)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
