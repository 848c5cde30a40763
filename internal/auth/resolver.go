package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/pkg/logger"
)

// Resolver turns a raw bearer credential into a Principal. Every rejection
// is reported as internal.ErrUnauthenticated whatever its cause; only
// infrastructure failures come back as an internal error.
type Resolver struct {
	accounts      AccountStore
	tokens        TokenVerifier
	revocations   RevocationList
	lookupTimeout time.Duration
	logger        *slog.Logger
}

func NewResolver(accounts AccountStore, tokens TokenVerifier, revocations RevocationList, lookupTimeout time.Duration, lg *slog.Logger) *Resolver {
	if revocations == nil {
		revocations = NoopRevocationList{}
	}
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &Resolver{
		accounts:      accounts,
		tokens:        tokens,
		revocations:   revocations,
		lookupTimeout: lookupTimeout,
		logger:        lg,
	}
}

func (r *Resolver) Resolve(ctx context.Context, raw string) (*Principal, error) {
	if raw == "" {
		return nil, internal.ErrUnauthenticated
	}

	claims, err := r.verify(raw)
	if err != nil {
		r.logger.DebugContext(ctx, "resolve: credential rejected", "reason", err.Error())
		return nil, internal.ErrUnauthenticated
	}

	lookupCtx, cancel := internal.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	revoked, err := r.revocations.IsRevoked(lookupCtx, claims.ID)
	if err != nil {
		return nil, r.lookupFailure(ctx, "revocation check", claims.UserID, err)
	}
	if revoked {
		r.logger.DebugContext(ctx, "resolve: credential revoked", "user_id", claims.UserID)
		return nil, internal.ErrUnauthenticated
	}

	account, err := r.accounts.FindByID(lookupCtx, claims.UserID)
	if err != nil {
		return nil, r.lookupFailure(ctx, "account lookup", claims.UserID, err)
	}

	principal, ok := account.ToPrincipal()
	if !ok {
		r.logger.DebugContext(ctx, "resolve: account not usable", "user_id", claims.UserID)
		return nil, internal.ErrUnauthenticated
	}

	return principal, nil
}

// verify runs the token verifier and converts a panic into an error.
func (r *Resolver) verify(raw string) (claims *Claims, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			claims = nil
			err = fmt.Errorf("verifier panic: %v", rec)
		}
	}()
	claims, err = r.tokens.Verify(raw)
	if err == nil && claims == nil {
		err = ErrInvalidToken
	}
	return claims, err
}

// lookupFailure decides between rejection and server error. A missing
// account and an expired or cancelled lookup are rejections; anything else is
// an infrastructure failure.
func (r *Resolver) lookupFailure(ctx context.Context, step string, userID int64, err error) error {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		r.logger.DebugContext(ctx, "resolve: account not found", "user_id", userID)
		return internal.ErrUnauthenticated
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		r.logger.WarnContext(ctx, "resolve: "+step+" timed out", "user_id", userID, "error", err)
		return internal.ErrUnauthenticated
	default:
		r.logger.ErrorContext(ctx, "resolve: "+step+" failed", "user_id", userID, "error", err)
		return internal.NewInternalError(step+" failed", err)
	}
}
