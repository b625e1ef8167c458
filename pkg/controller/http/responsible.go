package http

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/caseflow-lab/doctrack/pkg/utils/errutil"
)

type responsibleBody struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) listResponsibles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := s.uc.Responsible.List(ctx, ownerFrom(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}

	body := make([]responsibleBody, len(entries))
	for i, entry := range entries {
		body[i] = responsibleBody{Name: entry.Name, CreatedAt: entry.CreatedAt}
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"responsibles": body})
}

func (s *Server) addResponsible(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	created, err := s.uc.Responsible.Add(ctx, ownerFrom(ctx), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, responsibleBody{Name: created.Name, CreatedAt: created.CreatedAt})
}

func (s *Server) removeResponsible(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid responsible name"), http.StatusBadRequest)
		return
	}

	if err := s.uc.Responsible.Remove(ctx, ownerFrom(ctx), name); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
