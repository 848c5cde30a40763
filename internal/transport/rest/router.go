package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/frahmantamala/internship-management/api"
	"github.com/frahmantamala/internship-management/internal/auth"
	"github.com/frahmantamala/internship-management/internal/company"
	"github.com/frahmantamala/internship-management/internal/dashboard"
	"github.com/frahmantamala/internship-management/internal/internship"
	"github.com/frahmantamala/internship-management/internal/observability"
	"github.com/frahmantamala/internship-management/internal/student"
	"github.com/frahmantamala/internship-management/internal/transport"
	"github.com/frahmantamala/internship-management/internal/transport/middleware"
	"github.com/frahmantamala/internship-management/internal/transport/swagger"
	"github.com/frahmantamala/internship-management/internal/user"
)

type Handlers struct {
	Health     *HealthHandler
	Auth       *auth.Handler
	User       *user.Handler
	Student    *student.Handler
	Company    *company.Handler
	Internship *internship.Handler
	Dashboard  *dashboard.Handler
}

type Options struct {
	Production     bool
	AllowedOrigins []string
	LoginPerMinute int

	// Metrics and Registry are both nil when metrics are disabled.
	Metrics     *observability.Metrics
	Registry    *prometheus.Registry
	MetricsPath string
}

// RegisterAllRoutes mounts the global middleware, the ops endpoints and the
// /api/v1 tree. Every protected route sits behind the authorization gate.
func RegisterAllRoutes(router *chi.Mux, gate *auth.Gate, h Handlers, opts Options, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.SecureHeaders(opts.Production, logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Metrics != nil {
		router.Use(observability.HTTPMetricsMiddleware(opts.Metrics))
	}

	router.Get(api.DocumentPath, api.Handler().ServeHTTP)
	router.Handle("/swagger/*", swagger.Handler(api.DocumentPath))
	if opts.Registry != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, observability.Handler(opts.Registry))
	}

	router.Route(api.BasePath, func(r chi.Router) {
		r.Get("/health", h.Health.Check)
		r.Get("/ping", h.Health.Ping)

		r.Route("/auth", func(ar chi.Router) {
			ar.Use(chiMiddleware.NoCache)
			ar.With(middleware.LoginRateLimit(opts.LoginPerMinute, logger)).Post("/login", h.Auth.Login)
			ar.With(gate.Middleware).Post("/logout", h.Auth.Logout)
			ar.With(gate.Middleware).Get("/me", h.Auth.Me)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(gate.Middleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.With(gate.Require(auth.CanManageUsers)).Get("/", h.User.ListUsers)
				ur.With(gate.Require(auth.CanManageUsers)).Post("/", h.User.CreateUser)
				ur.With(gate.Require(auth.CanViewOwnProfile)).Get("/me", h.User.GetCurrentUser)
				ur.With(gate.Require(auth.CanEditOwnProfile)).Patch("/me", h.User.UpdateCurrentUser)
				ur.With(gate.Require(auth.CanEditOwnProfile)).Put("/me/password", h.User.ChangePassword)
				ur.With(gate.Require(auth.CanManageRoles)).Patch("/{id}/role", h.User.UpdateUserRole)
				ur.With(gate.Require(auth.CanManageUsers)).Patch("/{id}/status", h.User.UpdateUserStatus)
			})

			pr.Route("/students", func(sr chi.Router) {
				sr.With(gate.Require(auth.CanViewStudents)).Get("/", h.Student.ListStudents)
				sr.With(gate.Require(auth.CanCreateStudents)).Post("/", h.Student.CreateStudent)
				sr.With(gate.Require(auth.CanViewStudents)).Get("/{id}", h.Student.GetStudent)
				sr.With(gate.Require(auth.CanEditStudents)).Patch("/{id}", h.Student.UpdateStudent)
				sr.With(gate.Require(auth.CanDeleteStudents)).Delete("/{id}", h.Student.DeleteStudent)
			})

			pr.Route("/companies", func(cr chi.Router) {
				cr.With(gate.Require(auth.CanViewCompanies)).Get("/", h.Company.ListCompanies)
				cr.With(gate.Require(auth.CanCreateCompanies)).Post("/", h.Company.CreateCompany)
				cr.With(gate.Require(auth.CanViewCompanies)).Get("/{id}", h.Company.GetCompany)
				cr.With(gate.Require(auth.CanEditCompanies)).Patch("/{id}", h.Company.UpdateCompany)
				cr.With(gate.Require(auth.CanDeleteCompanies)).Delete("/{id}", h.Company.DeleteCompany)
			})

			pr.Route("/internships", func(ir chi.Router) {
				ir.With(gate.Require(auth.CanViewInternships)).Get("/", h.Internship.ListInternships)
				ir.With(gate.Require(auth.CanCreateInternships)).Post("/", h.Internship.CreateInternship)
				ir.With(gate.Require(auth.CanViewInternships)).Get("/{id}", h.Internship.GetInternship)
				// The target status decides which of the two permissions applies.
				ir.With(gate.RequireAny(auth.CanApproveInternships, auth.CanEditInternships)).
					Patch("/{id}/status", h.Internship.UpdateInternshipStatus)
				ir.With(gate.Require(auth.CanDeleteInternships)).Delete("/{id}", h.Internship.DeleteInternship)
			})

			pr.With(gate.Require(auth.CanViewStatistics)).Get("/dashboard/stats", h.Dashboard.GetStats)
		})
	})

	base := transport.NewBaseHandler(logger)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		base.WriteError(w, http.StatusNotFound, "route not found")
	})
}
