package model

// MetricReading is one raw measurement produced by an extraction tool.
type MetricReading struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Measure is the normalized [0,1] interpretation of raw readings.
// Clamped is set when the normalization rule over- or undershot the range.
type Measure struct {
	Key     string  `json:"key"`
	Value   float64 `json:"value"`
	Clamped bool    `json:"clamped,omitempty"`
}

// ScoredNode is a subcharacteristic, characteristic or the overall score.
// Weight is the node's share in the parent that lists it.
type ScoredNode struct {
	Key    string  `json:"key"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// KeyValue is the ordered list shape used at the external interface.
type KeyValue struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// DiffEntry is one row of a planned/developed comparison.
type DiffEntry struct {
	Key            string  `json:"key"`
	Planned        float64 `json:"planned"`
	Developed      float64 `json:"developed"`
	Diff           float64 `json:"diff"`
	Interpretation string  `json:"interpretation"`
}

// IndexValues turns an ordered key/value list into a lookup map. A key that
// appears twice is rejected.
func IndexValues(entries []KeyValue) (map[string]float64, error) {
	out := make(map[string]float64, len(entries))
	for _, e := range entries {
		if _, dup := out[e.Key]; dup {
			return nil, DuplicateKey(e.Key)
		}
		out[e.Key] = e.Value
	}
	return out, nil
}

func MeasureValues(measures []Measure) (map[string]float64, error) {
	out := make(map[string]float64, len(measures))
	for _, m := range measures {
		if _, dup := out[m.Key]; dup {
			return nil, DuplicateKey(m.Key)
		}
		out[m.Key] = m.Value
	}
	return out, nil
}

func NodeValues(nodes []ScoredNode) map[string]float64 {
	out := make(map[string]float64, len(nodes))
	for _, n := range nodes {
		out[n.Key] = n.Value
	}
	return out
}
