package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/msgram/internal/model"
)

type errorResponse struct {
	Error string   `json:"error"`
	Kind  string   `json:"kind,omitempty"`
	Keys  []string `json:"keys,omitempty"`
}

// writeEngineError answers 422 for engine errors and 500 for anything else.
func writeEngineError(w http.ResponseWriter, err error) {
	var qerr *model.Error
	if errors.As(err, &qerr) {
		domainErrorsTotal.WithLabelValues(string(qerr.Kind)).Inc()
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: err.Error(),
			Kind:  string(qerr.Kind),
			Keys:  qerr.Keys,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

// writeDecodeError answers 422 when the body was well-formed but violated an
// engine rule (a duplicated vector key) and 400 otherwise.
func writeDecodeError(w http.ResponseWriter, err error) {
	var qerr *model.Error
	if errors.As(err, &qerr) {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
