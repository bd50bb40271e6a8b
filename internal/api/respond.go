package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/checktree/internal/checktree"
	"github.com/dgallion1/checktree/internal/session"
	"github.com/dgallion1/checktree/internal/widget"
)

// maxJSONBody caps JSON request bodies that are not file uploads.
const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// decodeJSON reads the request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeOpError maps tree and session errors to HTTP status codes.
func writeOpError(w http.ResponseWriter, err error) {
	var verr *checktree.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":  err.Error(),
			"item":   verr.Path,
			"reason": verr.Reason,
		})
	case errors.Is(err, widget.ErrUnknownNode):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, widget.ErrCollapseDisabled), errors.Is(err, widget.ErrNotBranch):
		jsonError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, session.ErrStoreFull):
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

type errUnknownOp string

func (e errUnknownOp) Error() string { return "unknown op " + strconv.Quote(string(e)) }
