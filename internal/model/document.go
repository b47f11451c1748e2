package model

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Level names.
const (
	LevelSubcharacteristics = "subcharacteristics"
	LevelCharacteristics    = "characteristics"
	LevelSQC                = "sqc"

	// SQCKey is the key of the single root node.
	SQCKey = "sqc"
)

var (
	//go:embed default_model.yaml
	defaultModel []byte
	//go:embed performance_model.yaml
	performanceModel []byte
)

// Built-in model names accepted by Load in place of a path.
const (
	BuiltinDefault     = "default"
	BuiltinPerformance = "performance"
)

var builtins = map[string][]byte{
	BuiltinDefault:     defaultModel,
	BuiltinPerformance: performanceModel,
}

// Document is the nested on-disk model (msgram.json / msgram.yaml).
type Document struct {
	Version         string              `json:"version" yaml:"version"`
	Characteristics []CharacteristicDoc `json:"characteristics" yaml:"characteristics"`
	Interpretation  InterpretationDoc   `json:"interpretation" yaml:"interpretation"`
}

type CharacteristicDoc struct {
	Key                string                `json:"key" yaml:"key"`
	Weight             float64               `json:"weight" yaml:"weight"`
	Subcharacteristics []SubcharacteristicDoc `json:"subcharacteristics" yaml:"subcharacteristics"`
}

type SubcharacteristicDoc struct {
	Key      string  `json:"key" yaml:"key"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Measures []Child `json:"measures" yaml:"measures"`
}

type InterpretationDoc struct {
	Bands []Band `json:"bands" yaml:"bands"`
}

// Model is the validated, flattened aggregation tree plus the comparison
// bands. It is read-only once built.
type Model struct {
	Version            string    `json:"version"`
	Subcharacteristics LevelSpec `json:"subcharacteristics"`
	Characteristics    LevelSpec `json:"characteristics"`
	SQC                LevelSpec `json:"sqc"`
	Bands              []Band    `json:"bands"`

	doc Document
}

// Levels returns the level specs in evaluation order.
func (m *Model) Levels() []LevelSpec {
	return []LevelSpec{m.Subcharacteristics, m.Characteristics, m.SQC}
}

// Document returns the nested form the model was built from.
func (m *Model) Document() Document { return m.doc }

// MeasureKeys returns every measure the model consumes.
func (m *Model) MeasureKeys() []string { return m.Subcharacteristics.ChildKeys() }

// Default returns the model compiled into the binary.
func Default() (*Model, error) {
	return Parse(defaultModel)
}

// Builtin returns a model compiled into the binary by name.
func Builtin(name string) (*Model, error) {
	data, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("no built-in model %q", name)
	}
	return Parse(data)
}

// Load reads a model file. An empty path selects the default model and a
// built-in name ("default", "performance") selects that model.
func Load(path string) (*Model, error) {
	if path == "" {
		return Default()
	}
	if _, ok := builtins[path]; ok {
		return Builtin(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a JSON or YAML model document, checks it against the model
// schema and validates every weight list before returning.
func Parse(data []byte) (*Model, error) {
	var raw any
	isJSON := bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
	if isJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, InvalidWeights("decode model: " + err.Error())
		}
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, InvalidWeights("decode model: " + err.Error())
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var doc Document
	var err error
	if isJSON {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, InvalidWeights("decode model: " + err.Error())
	}
	return FromDocument(doc)
}

// FromDocument flattens the nested document into the three level specs.
func FromDocument(doc Document) (*Model, error) {
	m := &Model{
		Version:            doc.Version,
		Subcharacteristics: LevelSpec{Name: LevelSubcharacteristics},
		Characteristics:    LevelSpec{Name: LevelCharacteristics},
		SQC:                LevelSpec{Name: LevelSQC},
		Bands:              doc.Interpretation.Bands,
		doc:                doc,
	}

	root := Node{Key: SQCKey}
	subIndex := make(map[string]int)
	for _, c := range doc.Characteristics {
		root.Children = append(root.Children, Child{Key: c.Key, Weight: c.Weight})

		node := Node{Key: c.Key}
		for _, s := range c.Subcharacteristics {
			node.Children = append(node.Children, Child{Key: s.Key, Weight: s.Weight})

			sub := Node{Key: s.Key, Children: slices.Clone(s.Measures)}
			if i, ok := subIndex[s.Key]; ok {
				if !slices.Equal(m.Subcharacteristics.Nodes[i].Children, sub.Children) {
					return nil, InvalidWeights("subcharacteristic declared with different measures", s.Key)
				}
				continue
			}
			subIndex[s.Key] = len(m.Subcharacteristics.Nodes)
			m.Subcharacteristics.Nodes = append(m.Subcharacteristics.Nodes, sub)
		}
		m.Characteristics.Nodes = append(m.Characteristics.Nodes, node)
	}
	m.SQC.Nodes = []Node{root}

	for _, level := range m.Levels() {
		if err := level.Validate(); err != nil {
			return nil, err
		}
	}
	if err := ValidateBands(m.Bands); err != nil {
		return nil, err
	}
	return m, nil
}
