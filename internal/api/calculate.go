package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/msgram/internal/compare"
	"github.com/MikeSquared-Agency/msgram/internal/hermes"
	"github.com/MikeSquared-Agency/msgram/internal/model"
	"github.com/MikeSquared-Agency/msgram/internal/scoring"
	"github.com/MikeSquared-Agency/msgram/internal/store"
)

type QualityHandler struct {
	engine     *scoring.Engine
	comparator *compare.Comparator
	store      store.Store
	emitter    *hermes.Emitter
	logger     *slog.Logger
}

func NewQualityHandler(e *scoring.Engine, c *compare.Comparator, s store.Store, em *hermes.Emitter, logger *slog.Logger) *QualityHandler {
	return &QualityHandler{engine: e, comparator: c, store: s, emitter: em, logger: logger}
}

type CalculateRequest struct {
	Repository string                `json:"repository"`
	Version    string                `json:"version"`
	Metrics    []model.MetricReading `json:"metrics"`
}

type CalculateResponse struct {
	ReleaseID string `json:"release_id,omitempty"`
	*scoring.Result
}

func (h *QualityHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if len(req.Metrics) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "metrics required"})
		return
	}

	in := scoring.Input{Repository: req.Repository, Version: req.Version, Readings: req.Metrics}
	res, err := h.engine.Calculate(in)
	if err != nil {
		calculationsTotal.WithLabelValues("failed").Inc()
		h.emitter.CalculationFailed(in, err)
		writeEngineError(w, err)
		return
	}
	calculationsTotal.WithLabelValues("ok").Inc()
	if res.Repository != "" {
		releaseSQC.WithLabelValues(res.Repository).Set(res.SQC.Value)
	}

	resp := CalculateResponse{Result: res}
	if h.store != nil {
		rel := store.NewRelease(res)
		if err := h.store.SaveRelease(r.Context(), rel); err != nil {
			h.logger.Error("failed to save release", "repository", res.Repository, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save release"})
			return
		}
		resp.ReleaseID = rel.ID.String()
	}
	h.emitter.CalculationCompleted(resp.ReleaseID, res)

	writeJSON(w, http.StatusOK, resp)
}

type CompareRequest struct {
	Planned   model.QualityVector `json:"planned"`
	Developed model.QualityVector `json:"developed"`
}

func (h *QualityHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if req.Planned.Len() == 0 || req.Developed.Len() == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "planned and developed vectors required"})
		return
	}

	cmp, err := h.comparator.Compare(req.Planned, req.Developed)
	if err != nil {
		comparisonsTotal.WithLabelValues("failed").Inc()
		writeEngineError(w, err)
		return
	}
	comparisonsTotal.WithLabelValues("ok").Inc()
	comparisonNorm.Observe(cmp.Norm)
	h.emitter.ComparisonCompleted(cmp)

	writeJSON(w, http.StatusOK, cmp)
}

func (h *QualityHandler) Model(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Model().Document())
}
