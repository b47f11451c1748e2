package model

import (
	"fmt"
	"math"
)

// WeightTotal is the sum every parent's child weights must reach.
const WeightTotal = 100.0

// WeightTolerance is the absolute tolerance on WeightTotal.
const WeightTolerance = 1e-6

// Child is one weighted entry in a parent's child list.
type Child struct {
	Key    string  `json:"key" yaml:"key"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Node declares which children roll into the parent Key.
type Node struct {
	Key      string  `json:"key"`
	Children []Child `json:"children"`
}

// Sum returns the total of the child weights.
func (n Node) Sum() float64 {
	var s float64
	for _, c := range n.Children {
		s += c.Weight
	}
	return s
}

// Validate checks that child weights are non-negative, unique and sum to 100.
func (n Node) Validate() error {
	if n.Key == "" {
		return InvalidWeights("node without key")
	}
	if len(n.Children) == 0 {
		return InvalidWeights("node has no children", n.Key)
	}
	seen := make(map[string]bool, len(n.Children))
	for _, c := range n.Children {
		if c.Key == "" {
			return InvalidWeights("child without key", n.Key)
		}
		if seen[c.Key] {
			return InvalidWeights(fmt.Sprintf("child %q listed twice", c.Key), n.Key)
		}
		seen[c.Key] = true
		if c.Weight < 0 || math.IsNaN(c.Weight) {
			return InvalidWeights(fmt.Sprintf("negative weight %v for %q", c.Weight, c.Key), n.Key)
		}
	}
	if sum := n.Sum(); math.Abs(sum-WeightTotal) > WeightTolerance {
		return InvalidWeights(fmt.Sprintf("weights sum to %.6f, must sum to 100", sum), n.Key)
	}
	return nil
}

// LevelSpec is one aggregation level: the parents it computes and the
// children each of them consumes.
type LevelSpec struct {
	Name  string `json:"name"`
	Nodes []Node `json:"nodes"`
}

// Validate checks every node and rejects duplicate parents.
func (l LevelSpec) Validate() error {
	if len(l.Nodes) == 0 {
		return InvalidWeights(fmt.Sprintf("level %q has no nodes", l.Name))
	}
	seen := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		if seen[n.Key] {
			return InvalidWeights(fmt.Sprintf("node declared twice in level %q", l.Name), n.Key)
		}
		seen[n.Key] = true
		if err := n.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ChildKeys returns each distinct child key in declaration order.
func (l LevelSpec) ChildKeys() []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range l.Nodes {
		for _, c := range n.Children {
			if !seen[c.Key] {
				seen[c.Key] = true
				out = append(out, c.Key)
			}
		}
	}
	return out
}

// WeightOf returns the weight of childKey under the first parent listing it.
func (l LevelSpec) WeightOf(childKey string) (float64, bool) {
	for _, n := range l.Nodes {
		for _, c := range n.Children {
			if c.Key == childKey {
				return c.Weight, true
			}
		}
	}
	return 0, false
}
