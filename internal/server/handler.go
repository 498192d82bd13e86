package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightward-health/pedsim/internal/catalog"
)

type Handler struct {
	manager *SessionManager
	cat     *catalog.Catalog
}

func NewHandler(manager *SessionManager, cat *catalog.Catalog) *Handler {
	return &Handler{manager: manager, cat: cat}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/cases", h.ListCases)
	r.Post("/sessions", h.StartSession)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/snapshot", h.GetSnapshot)
		r.Post("/pause", h.Pause)
		r.Post("/resume", h.Resume)
		r.Post("/interventions", h.ApplyIntervention)
		r.Delete("/", h.EndSession)
	})
	return r
}

type caseSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	EstimatedTime int    `json:"estimated_time"`
	Stages        int    `json:"stages"`
}

func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	cases := h.cat.Cases()
	out := make([]caseSummary, 0, len(cases))
	for _, c := range cases {
		out = append(out, caseSummary{
			ID:            c.ID,
			Name:          c.Name,
			Category:      c.Category,
			Difficulty:    c.Difficulty,
			EstimatedTime: int(c.EstimatedTime.Seconds()),
			Stages:        len(c.Stages),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type startSessionRequest struct {
	CaseID string `json:"case_id"`
}

func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snap, err := h.manager.Start(req.CaseID)
	if err != nil {
		if errors.Is(err, catalog.ErrCaseNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.Snapshot(chi.URLParam(r, "sessionID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Pause(chi.URLParam(r, "sessionID")); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Resume(chi.URLParam(r, "sessionID")); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type applyRequest struct {
	InterventionID string `json:"intervention_id"`
}

func (h *Handler) ApplyIntervention(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.manager.Apply(chi.URLParam(r, "sessionID"), req.InterventionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.End(chi.URLParam(r, "sessionID")); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
