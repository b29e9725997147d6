// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package serve exposes a written dataset over HTTP for the ranking frontend.
package serve

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pdiddy/venue-harvester/internal/dataset"
)

// Handler serves the dataset file at JSONPath. The file is re-read on every
// request so a finished harvest is picked up without a restart.
type Handler struct {
	JSONPath string
}

// Summary is the body of GET /stats.
type Summary struct {
	Venues       int `json:"venues"`
	Institutions int `json:"institutions"`
	Authors      int `json:"authors"`
	Publications int `json:"publications"`
}

// NewRouter builds the dataset router.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/data.json", h.DataJSON)
	r.Get("/data.js", h.DataJS)
	r.Get("/stats", h.Stats)
	return r
}

// DataJSON serves the dataset file verbatim.
func (h *Handler) DataJSON(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.JSONPath)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// DataJS serves the dataset wrapped as a JavaScript assignment.
func (h *Handler) DataJS(w http.ResponseWriter, r *http.Request) {
	ds, err := dataset.ReadJSON(h.JSONPath)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/javascript")
	if err := dataset.EncodeJS(w, ds); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Stats reports dataset sizes.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ds, err := dataset.ReadJSON(h.JSONPath)
	if err != nil {
		writeError(w, err)
		return
	}
	s := Summary{
		Venues:       len(ds.Venues),
		Institutions: len(ds.Institutions),
		Authors:      len(ds.Authors),
	}
	for _, a := range ds.Authors {
		s.Publications += len(a.Publications)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "dataset not generated yet", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
