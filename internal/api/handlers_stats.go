package api

import (
	"net/http"
)

func (s *Server) handleToggleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": s.store.Len(),
		"toggles":  s.toggles.Snapshot(),
	})
}
