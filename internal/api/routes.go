package api

import "github.com/go-chi/chi/v5"

// SetupRoutes wires the API endpoints.
func SetupRoutes(r chi.Router, h *Handlers) {
	r.Get("/healthz", h.Health)

	r.Route("/api/v1/projects", func(r chi.Router) {
		r.Get("/", h.ListProjects)
		r.Post("/", h.CreateProject)

		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", h.GetProject)
			r.Delete("/", h.DeleteProject)
			r.Patch("/classification", h.PatchClassification)

			r.Get("/siteplans", h.ListSitePlans)
			r.Post("/siteplans", h.SaveSitePlan)
			r.Get("/licenses", h.ListLicenses)
			r.Post("/licenses", h.SaveLicense)
			r.Get("/contracts", h.ListContracts)
			r.Post("/contracts", h.SaveContract)
			r.Get("/awardings", h.ListAwardings)
			r.Post("/awardings", h.SaveAwarding)

			r.Get("/snapshot", h.GetSnapshot)
			r.Get("/steps", h.GetSteps)
			r.Put("/steps/active", h.SetActiveStep)
			r.Get("/contract/breakdown", h.GetBreakdown)
			r.Get("/events", h.Events)
		})
	})
}
