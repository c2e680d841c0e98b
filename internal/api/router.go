package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/softdesk/api/internal/api/handlers"
	mw "github.com/softdesk/api/internal/api/middleware"
	"github.com/softdesk/api/internal/repository"
	"github.com/softdesk/api/internal/scope"
)

type Dependencies struct {
	HMACSecret     []byte
	RateLimitRPS   float64
	RateLimitBurst int

	ProjectRepo repository.ProjectRepository
	IssueRepo   repository.IssueRepository

	AuthHandler         *handlers.AuthHandler
	UsersHandler        *handlers.UsersHandler
	ProjectsHandler     *handlers.ProjectsHandler
	ContributorsHandler *handlers.ContributorsHandler
	IssuesHandler       *handlers.IssuesHandler
	CommentsHandler     *handlers.CommentsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		// Open endpoints: registration and token issuance
		api.Post("/signup", dep.AuthHandler.Signup)
		api.Post("/login", dep.AuthHandler.Login)
		api.Post("/token/refresh", dep.AuthHandler.Refresh)

		// Protected routes
		api.Group(func(protected chi.Router) {
			protected.Use(mw.Auth(dep.HMACSecret))

			protected.Route("/users", func(ur chi.Router) {
				ur.Get("/", dep.UsersHandler.List)
				ur.Get("/{userID}", dep.UsersHandler.Get)
				ur.Put("/{userID}", dep.UsersHandler.Update)
				ur.Patch("/{userID}", dep.UsersHandler.Update)
			})

			protected.Route("/projects", func(pr chi.Router) {
				pr.Get("/", dep.ProjectsHandler.List)
				pr.Post("/", dep.ProjectsHandler.Create)

				pr.Route("/{projectID}", func(p chi.Router) {
					// One parent resolution per request; everything below
					// reads the same record from context.
					p.Use(scope.ResolveProject(dep.ProjectRepo))

					p.Get("/", dep.ProjectsHandler.Get)
					p.Put("/", dep.ProjectsHandler.Update)
					p.Patch("/", dep.ProjectsHandler.Update)
					p.Delete("/", dep.ProjectsHandler.Delete)

					p.Route("/contributors", func(cr chi.Router) {
						cr.Get("/", dep.ContributorsHandler.List)
						cr.Post("/", dep.ContributorsHandler.Add)
						cr.Get("/{userID}", dep.ContributorsHandler.Get)
						cr.Delete("/{userID}", dep.ContributorsHandler.Remove)
					})

					p.Route("/issues", func(ir chi.Router) {
						ir.Get("/", dep.IssuesHandler.List)
						ir.Post("/", dep.IssuesHandler.Create)

						ir.Route("/{issueID}", func(i chi.Router) {
							i.Use(scope.ResolveIssue(dep.IssueRepo))

							i.Get("/", dep.IssuesHandler.Get)
							i.Put("/", dep.IssuesHandler.Update)
							i.Patch("/", dep.IssuesHandler.Update)
							i.Delete("/", dep.IssuesHandler.Delete)

							i.Route("/comments", func(cr chi.Router) {
								cr.Get("/", dep.CommentsHandler.List)
								cr.Post("/", dep.CommentsHandler.Create)
								cr.Get("/{commentID}", dep.CommentsHandler.Get)
								cr.Put("/{commentID}", dep.CommentsHandler.Update)
								cr.Patch("/{commentID}", dep.CommentsHandler.Update)
								cr.Delete("/{commentID}", dep.CommentsHandler.Delete)
							})
						})
					})
				})
			})
		})
	})

	return r
}
