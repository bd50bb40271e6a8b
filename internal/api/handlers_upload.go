package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/checktree/internal/parser"
	"github.com/dgallion1/checktree/internal/session"
	"github.com/dgallion1/checktree/internal/widget"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	src, err := parseUpload(filename, data)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if title := r.FormValue("title"); title != "" {
		src.Title = title
	}

	sess, err := s.createTree(s.formOptions(r), src)
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) handleBatchUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}
	opts := s.formOptions(r)

	var results []map[string]any
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}

		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "file too large or read error",
			})
			continue
		}

		src, err := parseUpload(filename, data)
		if err == nil {
			var sess *session.Session
			sess, err = s.createTree(opts, src)
			if err == nil {
				results = append(results, map[string]any{
					"filename": filename,
					"tree_id":  sess.ID,
					"title":    src.Title,
					"url":      fmt.Sprintf("/api/trees/%s", sess.ID),
				})
				continue
			}
		}
		results = append(results, map[string]any{
			"filename": filename,
			"error":    err.Error(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"trees": results})
}

// parseUpload runs the parser for filename over data.
func parseUpload(filename string, data []byte) (session.Source, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return session.Source{}, err
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return session.Source{}, fmt.Errorf("parse %s: %w", filename, err)
	}
	return session.Source{
		Title:   doc.Title,
		Items:   doc.Items,
		Checked: doc.Checked,
		Hash:    session.ContentHashHex(data),
	}, nil
}

// formOptions applies the optional use_label_as_value form field to the
// configured widget options.
func (s *Server) formOptions(r *http.Request) widget.Options {
	opts := s.cfg.WidgetOptions()
	if v := r.FormValue("use_label_as_value"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.UseLabelAsValue = b
		}
	}
	return opts
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
