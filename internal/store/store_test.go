package store

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/msgram/internal/model"
	"github.com/MikeSquared-Agency/msgram/internal/scoring"
)

func TestNewRelease(t *testing.T) {
	res := &scoring.Result{
		Repository:   "svc",
		Version:      "09-11-2022-16-11",
		ModelVersion: "1",
		SQC:          model.ScoredNode{Key: model.SQCKey, Value: 0.64, Weight: 100},
	}
	r := NewRelease(res)
	if r.ID != uuid.Nil {
		t.Error("expected ID to be assigned on save")
	}
	if r.Repository != "svc" || r.Version != "09-11-2022-16-11" {
		t.Errorf("unexpected identity %s@%s", r.Repository, r.Version)
	}
	if r.SQC != 0.64 {
		t.Errorf("expected sqc 0.64, got %f", r.SQC)
	}
	if r.Result != res {
		t.Error("expected result to be carried")
	}
}

func TestReleaseJSON(t *testing.T) {
	r := &Release{ID: uuid.New(), Repository: "svc", SQC: 0.5}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["release_id"] != r.ID.String() {
		t.Errorf("expected release_id %s, got %v", r.ID, raw["release_id"])
	}
}

func TestReleaseFilterDefaults(t *testing.T) {
	f := ReleaseFilter{}
	if f.Limit != 0 {
		t.Errorf("expected 0 default limit, got %d", f.Limit)
	}
	if f.Repository != "" {
		t.Error("expected empty repository filter")
	}
}
