package api

import (
	"net/http"

	"github.com/dgallion1/checktree/internal/checktree"
	"github.com/dgallion1/checktree/internal/render"
	"github.com/dgallion1/checktree/internal/session"
	"github.com/dgallion1/checktree/internal/widget"
	"github.com/go-chi/chi/v5"
)

// treeRequest is the body of create and replace requests.
type treeRequest struct {
	Title           string           `json:"title"`
	UseLabelAsValue *bool            `json:"use_label_as_value"`
	Items           []checktree.Item `json:"items"`
	Checked         []string         `json:"checked"`
}

func (s *Server) handleCreateTree(w http.ResponseWriter, r *http.Request) {
	var req treeRequest
	if !decodeJSON(w, r, s.cfg.MaxUploadBytes, &req) {
		return
	}

	opts := s.cfg.WidgetOptions()
	if req.UseLabelAsValue != nil {
		opts.UseLabelAsValue = *req.UseLabelAsValue
	}
	sess, err := s.createTree(opts, session.Source{
		Title:   req.Title,
		Items:   req.Items,
		Checked: req.Checked,
	})
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

// createTree builds a session from src and registers it.
func (s *Server) createTree(opts widget.Options, src session.Source) (*session.Session, error) {
	sess := session.New(session.NewID(), src.Title, opts)
	if err := sess.Load(src); err != nil {
		return nil, err
	}
	if err := s.store.Put(sess); err != nil {
		return nil, err
	}
	s.log.Info("tree created", "tree_id", sess.ID, "title", src.Title)
	return sess, nil
}

// tree resolves the {treeID} URL parameter, answering 404 when unknown.
func (s *Server) tree(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess := s.store.Get(chi.URLParam(r, "treeID"))
	if sess == nil {
		jsonError(w, "tree not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.tree(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleReplaceItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.tree(w, r)
	if !ok {
		return
	}
	var req treeRequest
	if !decodeJSON(w, r, s.cfg.MaxUploadBytes, &req) {
		return
	}

	err := sess.Do(func(wd *widget.Widget) error {
		useLabel := wd.Options().UseLabelAsValue
		if req.UseLabelAsValue != nil {
			useLabel = *req.UseLabelAsValue
		}
		if err := wd.Build(req.Items, useLabel); err != nil {
			return err
		}
		if len(req.Checked) > 0 {
			wd.Select(req.Checked)
		}
		if req.Title != "" {
			sess.Title = req.Title
		}
		return nil
	})
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDeleteTree(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "treeID")
	if !s.store.Delete(id) {
		jsonError(w, "tree not found", http.StatusNotFound)
		return
	}
	s.log.Info("tree deleted", "tree_id", id)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (s *Server) handleHTML(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.tree(w, r)
	if !ok {
		return
	}
	page := r.URL.Query().Get("page") == "true"

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := sess.Do(func(wd *widget.Widget) error {
		opts := wd.Options()
		h := render.HTMLOptions{
			ID:            "tree-" + sess.ID,
			Collapse:      opts.Collapse.Enabled,
			CollapseSpeed: opts.Collapse.Speed,
			Filterable:    opts.Filterable,
			Query:         wd.Query(),
		}
		if page {
			return render.Page(w, sess.Title, wd.Roots(), h)
		}
		return render.HTML(w, wd.Roots(), h)
	})
	if err != nil {
		s.log.Error("render html failed", "tree_id", sess.ID, "error", err)
	}
}
