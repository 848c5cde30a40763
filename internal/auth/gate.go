package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/internal/transport"
	"github.com/frahmantamala/internship-management/pkg/logger"
)

// Outcome is the result of passing a request through the gate.
type Outcome int

const (
	Granted Outcome = iota
	Unauthenticated
	Unauthorized
	ServerError
)

func (o Outcome) String() string {
	switch o {
	case Granted:
		return "granted"
	case Unauthenticated:
		return "unauthenticated"
	case Unauthorized:
		return "unauthorized"
	case ServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Decision carries exactly one outcome. Principal and Scope are set only
// when Outcome is Granted; Err is set for every other outcome.
type Decision struct {
	Outcome   Outcome
	Principal *Principal
	Scope     Scope
	Err       error
}

// AppError maps the decision onto the outward error, nil when granted.
// Rejections share one generic message each; server errors never expose
// their cause.
func (d Decision) AppError() *internal.AppError {
	switch d.Outcome {
	case Granted:
		return nil
	case Unauthenticated:
		return internal.ErrUnauthenticated
	case Unauthorized:
		return internal.ErrForbidden
	default:
		return internal.ErrInternal
	}
}

type PrincipalResolver interface {
	Resolve(ctx context.Context, raw string) (*Principal, error)
}

type DecisionRecorder interface {
	ObserveGateDecision(stage, outcome string)
}

const (
	stageAuthenticate = "authenticate"
	stageAuthorize    = "authorize"
)

// Gate composes the resolver and the permission table in front of every
// protected operation.
type Gate struct {
	*transport.BaseHandler
	resolver PrincipalResolver
	recorder DecisionRecorder
}

func NewGate(resolver PrincipalResolver, recorder DecisionRecorder) *Gate {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Gate{
		BaseHandler: transport.NewBaseHandler(lg),
		resolver:    resolver,
		recorder:    recorder,
	}
}

// Authenticate resolves the caller from an Authorization header value. A
// missing or malformed header is rejected without consulting the resolver.
func (g *Gate) Authenticate(ctx context.Context, header string) Decision {
	raw, ok := transport.BearerToken(header)
	if !ok {
		return g.record(stageAuthenticate, Decision{Outcome: Unauthenticated, Err: internal.ErrUnauthenticated})
	}

	principal, err := g.resolver.Resolve(ctx, raw)
	switch {
	case err == nil && principal != nil:
		return g.record(stageAuthenticate, Decision{Outcome: Granted, Principal: principal, Scope: principal.Scope()})
	case err == nil, errors.Is(err, internal.ErrUnauthenticated):
		return g.record(stageAuthenticate, Decision{Outcome: Unauthenticated, Err: internal.ErrUnauthenticated})
	default:
		return g.record(stageAuthenticate, Decision{Outcome: ServerError, Err: err})
	}
}

// Check decides whether an already resolved principal may perform any of
// perms.
func (g *Gate) Check(principal *Principal, perms ...Permission) Decision {
	if principal == nil {
		return g.record(stageAuthorize, Decision{Outcome: Unauthenticated, Err: internal.ErrUnauthenticated})
	}
	if !AnyOf(principal.Role, perms...) {
		return g.record(stageAuthorize, Decision{Outcome: Unauthorized, Err: internal.ErrForbidden})
	}
	return g.record(stageAuthorize, Decision{Outcome: Granted, Principal: principal, Scope: principal.Scope()})
}

// Authorize runs both gate steps for a single required permission.
func (g *Gate) Authorize(ctx context.Context, header string, perm Permission) Decision {
	d := g.Authenticate(ctx, header)
	if d.Outcome != Granted {
		return d
	}
	return g.Check(d.Principal, perm)
}

// Middleware authenticates every request and stores the principal and its
// scope in the request context.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := g.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if d.Outcome != Granted {
			g.reject(w, r, d)
			return
		}
		next.ServeHTTP(w, r.WithContext(g.attach(r.Context(), d)))
	})
}

// Require allows the request through only if the caller holds perm.
func (g *Gate) Require(perm Permission) func(http.Handler) http.Handler {
	return g.RequireAny(perm)
}

// RequireAny allows the request through if the caller holds at least one of
// perms. It authenticates on its own when Middleware has not run.
func (g *Gate) RequireAny(perms ...Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				d := g.Authenticate(r.Context(), r.Header.Get("Authorization"))
				if d.Outcome != Granted {
					g.reject(w, r, d)
					return
				}
				principal = d.Principal
			}

			d := g.Check(principal, perms...)
			if d.Outcome != Granted {
				g.reject(w, r, d)
				return
			}
			next.ServeHTTP(w, r.WithContext(g.attach(r.Context(), d)))
		})
	}
}

func (g *Gate) attach(ctx context.Context, d Decision) context.Context {
	ctx = ContextWithPrincipal(ctx, d.Principal)
	ctx = ContextWithScope(ctx, d.Scope)
	return logger.With(ctx, "user_id", d.Principal.ID, "role", d.Principal.Role)
}

func (g *Gate) reject(w http.ResponseWriter, r *http.Request, d Decision) {
	switch d.Outcome {
	case ServerError:
		logger.From(r.Context(), g.Logger).ErrorContext(r.Context(), "gate: server error", "path", r.URL.Path, "error", d.Err)
	default:
		logger.From(r.Context(), g.Logger).WarnContext(r.Context(), "gate: request rejected", "path", r.URL.Path, "outcome", d.Outcome.String())
	}
	g.WriteAppError(w, d.AppError())
}

func (g *Gate) record(stage string, d Decision) Decision {
	if g.recorder != nil {
		g.recorder.ObserveGateDecision(stage, d.Outcome.String())
	}
	return d
}
