package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/msgram/internal/model"
)

// RuleKind selects how a raw reading maps onto [0,1].
type RuleKind string

const (
	// Ratio passes a value already in [0,1] through.
	Ratio RuleKind = "ratio"
	// Percentage maps 0-100 onto 0-1.
	Percentage RuleKind = "percentage"
	// InversePercentage maps 0-100 onto 1-0 (lower is better).
	InversePercentage RuleKind = "inverse_percentage"
	// InverseRatio maps 0-1 onto 1-0.
	InverseRatio RuleKind = "inverse_ratio"
	// InverseThreshold maps [floor, threshold] onto 1-0.
	InverseThreshold RuleKind = "inverse_threshold"
	// Auxiliary readings only feed other rules through the context.
	Auxiliary RuleKind = "auxiliary"
)

// Rule is the normalization rule for one metric.
type Rule struct {
	Measure   string
	Kind      RuleKind
	Per       string // context metric the raw value is divided by first
	Floor     float64
	Threshold float64
}

// RuleTable is a closed, versioned set of rules keyed by metric identifier.
type RuleTable struct {
	Version string
	Rules   map[string]Rule
}

// RulesV1 covers the SonarQube and GitHub metrics msgram extracts plus the
// performance-test readings.
var RulesV1 = RuleTable{
	Version: "1",
	Rules: map[string]Rule{
		"coverage":                 {Measure: "test_coverage", Kind: Percentage},
		"duplicated_lines_density": {Measure: "duplication_absense", Kind: InversePercentage},
		"comment_lines_density":    {Measure: "commented_file_density", Kind: Percentage},
		"complexity":               {Measure: "non_complex_file_density", Kind: InverseThreshold, Per: "functions", Threshold: 10},
		"test_failures":            {Measure: "passed_tests", Kind: InverseRatio, Per: "tests"},
		"test_errors":              {Measure: "test_errors_absense", Kind: InverseRatio, Per: "tests"},
		"test_execution_time":      {Measure: "test_builds", Kind: InverseThreshold, Per: "tests", Threshold: 300},
		"security_rating":          {Measure: "security_rating", Kind: InverseThreshold, Floor: 1, Threshold: 5},
		"team_throughput":          {Measure: "team_throughput", Kind: Ratio},
		"ci_feedback_time":         {Measure: "ci_feedback_time", Kind: InverseThreshold, Threshold: 900},
		"cpu_utilization":          {Measure: "cpu_utilization", Kind: InversePercentage},
		"memory_utilization":       {Measure: "memory_utilization", Kind: InversePercentage},
		"response_time":            {Measure: "response_time", Kind: InverseThreshold, Threshold: 1000},

		"files":     {Kind: Auxiliary},
		"functions": {Kind: Auxiliary},
		"ncloc":     {Kind: Auxiliary},
		"tests":     {Kind: Auxiliary},
	},
}

// Context carries the other readings of the same input and per-metric
// threshold overrides.
type Context struct {
	Readings   map[string]float64
	Thresholds map[string]float64
}

// NewContext indexes readings by key. A metric reported twice is rejected.
func NewContext(readings []model.MetricReading, thresholds map[string]float64) (Context, error) {
	idx := make(map[string]float64, len(readings))
	for _, r := range readings {
		if _, dup := idx[r.Key]; dup {
			return Context{}, model.DuplicateKey(r.Key)
		}
		idx[r.Key] = r.Value
	}
	return Context{Readings: idx, Thresholds: thresholds}, nil
}

// Normalizer applies a rule table to raw readings.
type Normalizer struct {
	table      RuleTable
	thresholds map[string]float64
}

// NewNormalizer validates threshold overrides against the table.
func NewNormalizer(table RuleTable, thresholds map[string]float64) (*Normalizer, error) {
	for key, th := range thresholds {
		rule, ok := table.Rules[key]
		if !ok || rule.Kind == Auxiliary {
			return nil, model.UnsupportedMetric(key, "threshold override for unknown metric")
		}
		if rule.Kind != InverseThreshold {
			return nil, model.InvalidWeights(fmt.Sprintf("metric %q does not take a threshold", key), key)
		}
		if !(th > rule.Floor) {
			return nil, model.InvalidWeights(fmt.Sprintf("threshold %v must exceed %v", th, rule.Floor), key)
		}
	}
	return &Normalizer{table: table, thresholds: thresholds}, nil
}

// Version returns the rule table version.
func (n *Normalizer) Version() string { return n.table.Version }

// Normalize maps one raw reading onto [0,1].
func (n *Normalizer) Normalize(key string, raw float64, ctx Context) (model.Measure, error) {
	rule, ok := n.table.Rules[key]
	if !ok {
		return model.Measure{}, model.UnsupportedMetric(key, "no normalization rule")
	}
	if rule.Kind == Auxiliary {
		return model.Measure{}, model.UnsupportedMetric(key, "context-only metric")
	}

	x := raw
	if rule.Per != "" {
		den, ok := ctx.Readings[rule.Per]
		if !ok {
			return model.Measure{}, model.MissingKey(rule.Per)
		}
		// Nothing to measure against: worst score.
		if den == 0 {
			return model.Measure{Key: rule.Measure, Value: 0}, nil
		}
		x = raw / den
	}

	var v float64
	switch rule.Kind {
	case Ratio:
		v = x
	case Percentage:
		v = x / 100
	case InversePercentage:
		v = 1 - x/100
	case InverseRatio:
		v = 1 - x
	case InverseThreshold:
		threshold := rule.Threshold
		if th, ok := ctx.Thresholds[key]; ok {
			threshold = th
		}
		if !(threshold > rule.Floor) {
			return model.Measure{}, model.InvalidWeights(fmt.Sprintf("threshold %v must exceed %v", threshold, rule.Floor), key)
		}
		v = 1 - (x-rule.Floor)/(threshold-rule.Floor)
	default:
		return model.Measure{}, model.UnsupportedMetric(key, "unknown rule kind "+string(rule.Kind))
	}

	value, clamped := clamp01(v)
	return model.Measure{Key: rule.Measure, Value: value, Clamped: clamped}, nil
}

// NormalizeAll normalizes every non-auxiliary reading of one input. All
// failing readings are reported together.
func (n *Normalizer) NormalizeAll(readings []model.MetricReading) ([]model.Measure, error) {
	ctx, err := NewContext(readings, n.thresholds)
	if err != nil {
		return nil, err
	}

	measures := make([]model.Measure, 0, len(readings))
	seen := make(map[string]bool, len(readings))
	var errs []error
	for _, r := range readings {
		if rule, ok := n.table.Rules[r.Key]; ok && rule.Kind == Auxiliary {
			continue
		}
		m, err := n.Normalize(r.Key, r.Value, ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[m.Key] {
			errs = append(errs, model.DuplicateKey(m.Key))
			continue
		}
		seen[m.Key] = true
		measures = append(measures, m)
	}
	return measures, errors.Join(errs...)
}

// clamp01 bounds v to [0,1] and reports whether it had to. NaN maps to 0.
func clamp01(v float64) (float64, bool) {
	if math.IsNaN(v) {
		return 0, true
	}
	c := clamp(v, 0, 1)
	return c, c != v
}

func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
