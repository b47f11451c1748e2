package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MikeSquared-Agency/msgram/internal/model"
	"github.com/MikeSquared-Agency/msgram/internal/scoring"
)

// extractedExts are the file types picked up from an extraction directory.
var extractedExts = map[string]bool{".msgram": true, ".json": true}

// analysisFile is the object form of an extracted file.
type analysisFile struct {
	Repository string                `json:"repository"`
	Version    string                `json:"version"`
	Metrics    []model.MetricReading `json:"metrics"`
}

// readInput parses one extracted file: either a bare list of readings or an
// object with a metrics list. Missing repository and version are recovered
// from the file name when it carries a release date.
func readInput(path string) (scoring.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scoring.Input{}, fmt.Errorf("read %s: %w", path, err)
	}

	in := scoring.Input{Name: filepath.Base(path)}
	if isObject(data) {
		var f analysisFile
		if err := json.Unmarshal(data, &f); err != nil {
			return scoring.Input{}, fmt.Errorf("parse %s: %w", path, err)
		}
		in.Repository, in.Version, in.Readings = f.Repository, f.Version, f.Metrics
	} else if err := json.Unmarshal(data, &in.Readings); err != nil {
		return scoring.Input{}, fmt.Errorf("parse %s: %w", path, err)
	}

	if in.Repository == "" && in.Version == "" {
		if repo, version, err := scoring.ParseReleaseName(path); err == nil {
			in.Repository, in.Version = repo, version
		}
	}
	return in, nil
}

// loadedInput is one file of an extraction. A file that could not be read or
// parsed carries err and is reported as a failed input.
type loadedInput struct {
	input scoring.Input
	err   error
}

// collectInputs reads path, or every extracted file directly inside it when
// it is a directory, in name order. Only an unusable path is an error; a bad
// file inside a directory is returned with its load error.
func collectInputs(path string) ([]loadedInput, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		in, err := readInput(path)
		if err != nil {
			return nil, err
		}
		return []loadedInput{{input: in}}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", path, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !extractedExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no .msgram or .json files in %s", path)
	}

	loaded := make([]loadedInput, 0, len(names))
	for _, name := range names {
		in, err := readInput(filepath.Join(path, name))
		if err != nil {
			in = scoring.Input{Name: name}
		}
		loaded = append(loaded, loadedInput{input: in, err: err})
	}
	return loaded, nil
}

// calculateLoaded scores every readable input as one batch and returns one
// outcome per loaded file, in load order.
func calculateLoaded(ctx context.Context, engine *scoring.Engine, loaded []loadedInput) []scoring.Outcome {
	var inputs []scoring.Input
	for _, l := range loaded {
		if l.err == nil {
			inputs = append(inputs, l.input)
		}
	}
	scored := engine.CalculateBatch(ctx, inputs)

	outcomes := make([]scoring.Outcome, 0, len(loaded))
	next := 0
	for _, l := range loaded {
		if l.err != nil {
			outcomes = append(outcomes, scoring.Outcome{Input: l.input, Err: l.err})
			continue
		}
		outcomes = append(outcomes, scored[next])
		next++
	}
	return outcomes
}

// readVector parses a planned or developed vector: a list of key/value pairs
// or a calculation result, whose characteristics are used.
func readVector(path string) (model.QualityVector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.QualityVector{}, fmt.Errorf("read %s: %w", path, err)
	}

	if isObject(data) {
		var res struct {
			Characteristics []model.ScoredNode `json:"characteristics"`
		}
		if err := json.Unmarshal(data, &res); err != nil {
			return model.QualityVector{}, fmt.Errorf("parse %s: %w", path, err)
		}
		if len(res.Characteristics) == 0 {
			return model.QualityVector{}, fmt.Errorf("%s: no characteristics", path)
		}
		return model.VectorFromNodes(res.Characteristics)
	}

	var v model.QualityVector
	if err := json.Unmarshal(data, &v); err != nil {
		return model.QualityVector{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}

func isObject(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
