package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/injaz-app/injaz/internal/api/notify"
	"github.com/injaz-app/injaz/internal/i18n"
	"github.com/injaz-app/injaz/pkg/core"
)

// Handlers provides the HTTP handlers for the API.
type Handlers struct {
	store        core.Store
	bundle       *i18n.Bundle
	sessionStore sessions.Store
	hub          *notify.Hub
	logger       *slog.Logger
}

// NewHandlers creates a Handlers instance.
func NewHandlers(store core.Store, bundle *i18n.Bundle, sessionStore sessions.Store, hub *notify.Hub, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		store:        store,
		bundle:       bundle,
		sessionStore: sessionStore,
		hub:          hub,
		logger:       logger,
	}
}

// Health answers the health probe.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateProject creates a new project record.
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	var p core.Project
	if err := decodeJSON(r, &p); err != nil {
		writeJSONError(w, "invalid project payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.CreateProject(r.Context(), &p); err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ListProjects returns all projects.
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []*core.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// GetProject returns one project by id.
func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if p == nil {
		writeJSONError(w, "project not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProject removes a project and its dependent records.
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProject(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PatchClassification updates a project's classification fields and
// notifies wizard listeners, since the step graph depends on them.
func (h *Handlers) PatchClassification(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var class core.Classification
	if err := decodeJSON(r, &class); err != nil {
		writeJSONError(w, "invalid classification payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if class.ProjectType != "" && !class.ProjectType.Valid() {
		writeJSONError(w, "unknown project_type", http.StatusBadRequest)
		return
	}
	if class.VillaCategory != "" && !class.VillaCategory.Valid() {
		writeJSONError(w, "unknown villa_category", http.StatusBadRequest)
		return
	}
	if class.ContractType != "" && !class.ContractType.Valid() {
		writeJSONError(w, "unknown contract_type", http.StatusBadRequest)
		return
	}

	if err := h.store.PatchClassification(r.Context(), projectID, class); err != nil {
		writeJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	h.hub.Publish(notify.Event{ProjectID: projectID, Kind: "project", StepID: core.StepSetup})

	p, err := h.store.GetProject(r.Context(), projectID)
	if err != nil || p == nil {
		writeJSONError(w, "project not found after patch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
