package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/msgram/internal/store"
)

type ReleasesHandler struct {
	store store.Store
}

func NewReleasesHandler(s store.Store) *ReleasesHandler {
	return &ReleasesHandler{store: s}
}

func (h *ReleasesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no database configured"})
		return
	}
	filter := store.ReleaseFilter{Repository: r.URL.Query().Get("repository")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		filter.Limit = n
	}

	releases, err := h.store.ListReleases(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if releases == nil {
		releases = []*store.Release{}
	}
	writeJSON(w, http.StatusOK, releases)
}

func (h *ReleasesHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no database configured"})
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid release id"})
		return
	}

	rel, err := h.store.GetRelease(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if rel == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "release not found"})
		return
	}
	writeJSON(w, http.StatusOK, rel)
}
