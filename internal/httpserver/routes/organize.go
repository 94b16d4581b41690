package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/httpserver/deps"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/httpserver/handlers"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/httpserver/mw"
)

func init() { Register(registerOrganize) }

func registerOrganize(r chi.Router, d deps.Deps) {
	r.Route("/organize/jobs", func(r chi.Router) {
		// Job creation fans out to a paid external endpoint; keep it throttled.
		r.With(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.JobRateBurst,
			RefillPerIPPerMin: d.JobRatePerMin,
			MaxEntries:        4096,
			TrustProxy:        d.TrustProxy,
		})).Post("/", handlers.CreateJob(d))

		r.Get("/", handlers.ListJobs(d))
		r.Get("/{id}", handlers.GetJob(d))
		r.Post("/{id}/cancel", handlers.CancelJob(d))
		r.Post("/{id}/apply", handlers.ApplyJob(d))
	})
}
