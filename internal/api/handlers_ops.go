package api

import (
	"net/http"
	"time"

	"github.com/dgallion1/checktree/internal/render"
	"github.com/dgallion1/checktree/internal/widget"
)

type toggleRequest struct {
	Path    string `json:"path"`
	Checked bool   `json:"checked"`
}

type pathRequest struct {
	Path string `json:"path"`
}

type filterRequest struct {
	Query string `json:"query"`
}

type selectRequest struct {
	Values []string `json:"values"`
}

// nodeResponse reports a node after an operation plus the collected values.
type nodeResponse struct {
	Node    render.NodeView `json:"node"`
	Checked []string        `json:"checked"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.tree(w, r)
	if !ok {
		return
	}
	var req toggleRequest
	if !decodeJSON(w, r, maxJSONBody, &req) {
		return
	}

	var resp nodeResponse
	err := sess.Do(func(wd *widget.Widget) error {
		start := time.Now()
		if err := wd.Toggle(req.Path, req.Checked); err != nil {
			return err
		}
		s.toggles.Record(time.Since(start))
		n, _ := wd.Node(req.Path)
		resp.Node = render.View(n)
		resp.Checked = wd.Collect()
		return nil
	})
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.tree(w, r)
	if !ok {
		return
	}
	var values []string
	sess.Do(func(wd *widget.Widget) error {
		values = wd.Collect()
		return nil
	})
	writeJSON(w, http.StatusOK, map[string]any{"checked": values})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.tree(w, r)
	if !ok {
		return
	}
	var req selectRequest
	if !decodeJSON(w, r, maxJSONBody, &req) {
		return
	}
	var matched int
	var values []string
	sess.Do(func(wd *widget.Widget) error {
		matched = wd.Select(req.Values)
		values = wd.Collect()
		return nil
	})
	writeJSON(w, http.StatusOK, map[string]any{"matched": matched, "checked": values})
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.tree(w, r)
	if !ok {
		return
	}
	var req filterRequest
	if !decodeJSON(w, r, maxJSONBody, &req) {
		return
	}
	var visible int
	sess.Do(func(wd *widget.Widget) error {
		visible = wd.Filter(req.Query)
		return nil
	})
	writeJSON(w, http.StatusOK, map[string]any{"query": req.Query, "visible": visible})
}

func (s *Server) handleCollapse(w http.ResponseWriter, r *http.Request) {
	s.setCollapsed(w, r, true)
}

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	s.setCollapsed(w, r, false)
}

func (s *Server) setCollapsed(w http.ResponseWriter, r *http.Request, collapsed bool) {
	sess, ok := s.tree(w, r)
	if !ok {
		return
	}
	var req pathRequest
	if !decodeJSON(w, r, maxJSONBody, &req) {
		return
	}

	var resp nodeResponse
	err := sess.Do(func(wd *widget.Widget) error {
		var err error
		if collapsed {
			err = wd.Collapse(req.Path)
		} else {
			err = wd.Expand(req.Path)
		}
		if err != nil {
			return err
		}
		n, _ := wd.Node(req.Path)
		resp.Node = render.View(n)
		resp.Checked = wd.Collect()
		return nil
	})
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
