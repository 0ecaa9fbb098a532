package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/injaz-app/injaz/internal/aggregate"
	"github.com/injaz-app/injaz/internal/finance"
	"github.com/injaz-app/injaz/internal/wizard"
	"github.com/injaz-app/injaz/pkg/core"
)

const sessionName = "injaz_wizard"

// StepView is one resolved step with its localized title and runtime
// state.
type StepView struct {
	wizard.StepState
	Title string `json:"title"`
}

// StepsResponse is the resolved wizard graph for one project.
type StepsResponse struct {
	ProjectID string     `json:"project_id"`
	Locale    string     `json:"locale"`
	Active    int        `json:"active"`
	Steps     []StepView `json:"steps"`
}

// GetSnapshot aggregates the project and its dependent records into one
// consistent read.
func (h *Handlers) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	snap, err := aggregate.Fetch(r.Context(), h.store, projectID, h.logger)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GetSteps resolves the step graph for the project. The active index is
// kept in the wizard cookie session; a ?step= query parameter requests
// entry into a step and is gated and clamped server-side.
func (h *Handlers) GetSteps(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	snap, err := aggregate.Fetch(r.Context(), h.store, projectID, h.logger)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusNotFound)
		return
	}

	ws := wizard.NewSession(projectID)
	ws.Apply(snap)

	httpSess, _ := h.sessionStore.Get(r, sessionName)
	if saved, ok := httpSess.Values[activeKey(projectID)].(int); ok {
		ws.Enter(saved)
	}
	if q := r.URL.Query().Get("step"); q != "" {
		if idx, err := strconv.Atoi(q); err == nil {
			ws.Enter(idx)
		}
	}

	httpSess.Values[activeKey(projectID)] = ws.ActiveIndex()
	if err := httpSess.Save(r, w); err != nil {
		h.logger.Debug("failed to save wizard session", "error", err)
	}

	writeJSON(w, http.StatusOK, h.stepsResponse(r, projectID, ws))
}

// SetActiveStep requests activation of a step index. Locked steps are a
// no-op; out-of-range indices are clamped.
func (h *Handlers) SetActiveStep(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var body struct {
		Index int `json:"index"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := aggregate.Fetch(r.Context(), h.store, projectID, h.logger)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusNotFound)
		return
	}

	ws := wizard.NewSession(projectID)
	ws.Apply(snap)

	httpSess, _ := h.sessionStore.Get(r, sessionName)
	if saved, ok := httpSess.Values[activeKey(projectID)].(int); ok {
		ws.Enter(saved)
	}
	ws.Enter(body.Index)

	httpSess.Values[activeKey(projectID)] = ws.ActiveIndex()
	if err := httpSess.Save(r, w); err != nil {
		h.logger.Debug("failed to save wizard session", "error", err)
	}

	writeJSON(w, http.StatusOK, h.stepsResponse(r, projectID, ws))
}

// GetBreakdown decomposes the saved contract into the total, bank-share
// and owner-share financial views.
func (h *Handlers) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	recs, err := h.store.ListContracts(r.Context(), projectID)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(recs) == 0 {
		writeJSONError(w, "no contract saved for project", http.StatusNotFound)
		return
	}

	b, err := finance.Compute(recs[0])
	if err != nil {
		var ce *finance.ComputeError
		if errors.As(err, &ce) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  ce.Error(),
				"record": ce.Payload,
			})
			return
		}
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Events streams record-change pings for one project as server-sent
// events, so wizard clients re-aggregate when the graph inputs change.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := h.hub.Subscribe(projectID)
	defer h.hub.Unsubscribe(projectID, ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func (h *Handlers) stepsResponse(r *http.Request, projectID string, ws *wizard.Session) StepsResponse {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = h.bundle.Match(r.Header.Get("Accept-Language"))
	}

	states := ws.Steps()
	views := make([]StepView, len(states))
	for i, st := range states {
		views[i] = StepView{
			StepState: st,
			Title:     h.bundle.StepTitle(locale, st.ID),
		}
	}
	return StepsResponse{
		ProjectID: projectID,
		Locale:    locale,
		Active:    ws.ActiveIndex(),
		Steps:     views,
	}
}

func activeKey(projectID string) string {
	return "active:" + projectID
}

// compile-time check: the store must satisfy the aggregator's source.
var _ aggregate.Source = (core.Store)(nil)
