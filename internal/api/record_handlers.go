package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/injaz-app/injaz/internal/api/notify"
	"github.com/injaz-app/injaz/pkg/core"
)

// ListSitePlans returns the project's site-plan records.
func (h *Handlers) ListSitePlans(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.ListSitePlans(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []*core.SitePlanRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// SaveSitePlan creates or patches the site-plan record.
func (h *Handlers) SaveSitePlan(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var rec core.SitePlanRecord
	if err := decodeJSON(r, &rec); err != nil {
		writeJSONError(w, "invalid siteplan payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	rec.ProjectID = projectID

	created := rec.ID == ""
	if err := h.store.SaveSitePlan(r.Context(), &rec); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.hub.Publish(notify.Event{ProjectID: projectID, Kind: "siteplan", StepID: core.StepSitePlan})
	writeJSON(w, statusForSave(created), rec)
}

// ListLicenses returns the project's license records.
func (h *Handlers) ListLicenses(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.ListLicenses(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []*core.LicenseRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// SaveLicense creates or patches the license record.
func (h *Handlers) SaveLicense(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var rec core.LicenseRecord
	if err := decodeJSON(r, &rec); err != nil {
		writeJSONError(w, "invalid license payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	rec.ProjectID = projectID

	created := rec.ID == ""
	if err := h.store.SaveLicense(r.Context(), &rec); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.hub.Publish(notify.Event{ProjectID: projectID, Kind: "license", StepID: core.StepLicense})
	writeJSON(w, statusForSave(created), rec)
}

// ListContracts returns the project's contract records.
func (h *Handlers) ListContracts(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.ListContracts(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []*core.ContractRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// SaveContract creates the contract record or patches the existing one.
// Saving as privately funded reshapes the step graph, so listeners are
// notified either way.
func (h *Handlers) SaveContract(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var rec core.ContractRecord
	if err := decodeJSON(r, &rec); err != nil {
		writeJSONError(w, "invalid contract payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	rec.ProjectID = projectID

	// Edits without an explicit id patch the project's existing record.
	if rec.ID == "" {
		existing, err := h.store.ListContracts(r.Context(), projectID)
		if err != nil {
			writeJSONError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if len(existing) > 0 {
			rec.ID = existing[0].ID
		}
	}

	created := rec.ID == ""
	if err := h.store.SaveContract(r.Context(), &rec); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.hub.Publish(notify.Event{ProjectID: projectID, Kind: "contract", StepID: core.StepContract})
	writeJSON(w, statusForSave(created), rec)
}

// ListAwardings returns the project's awarding records.
func (h *Handlers) ListAwardings(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.ListAwardings(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []*core.AwardingRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// SaveAwarding creates or patches the awarding record.
func (h *Handlers) SaveAwarding(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var rec core.AwardingRecord
	if err := decodeJSON(r, &rec); err != nil {
		writeJSONError(w, "invalid awarding payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	rec.ProjectID = projectID

	created := rec.ID == ""
	if err := h.store.SaveAwarding(r.Context(), &rec); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.hub.Publish(notify.Event{ProjectID: projectID, Kind: "awarding", StepID: core.StepAward})
	writeJSON(w, statusForSave(created), rec)
}

func statusForSave(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
