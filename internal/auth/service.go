package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/internal/core/common/validation"
	"github.com/frahmantamala/internship-management/internal/core/events"
	"github.com/frahmantamala/internship-management/pkg/logger"
)

// MinBCryptCost is the lowest accepted bcrypt work factor.
const MinBCryptCost = internal.MinBCryptCost

var ErrWeakBCryptCost = fmt.Errorf("bcrypt cost must be at least %d", MinBCryptCost)

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (*LoginResponse, error)
	Logout(ctx context.Context, rawToken string) error
}

// TokenManager issues and verifies credentials.
type TokenManager interface {
	TokenIssuer
	TokenVerifier
}

type LoginRecorder interface {
	ObserveLogin(result string)
}

// Service is the main auth service with dependencies
type Service struct {
	accounts      AccountStore
	tokens        TokenManager
	revocations   RevocationList
	events        events.Publisher
	recorder      LoginRecorder
	lookupTimeout time.Duration
	logger        *slog.Logger
}

// NewService creates a new auth service. revocations, publisher and recorder
// may be nil.
func NewService(accounts AccountStore, tokens TokenManager, revocations RevocationList, publisher events.Publisher, recorder LoginRecorder, lookupTimeout time.Duration, lg *slog.Logger) *Service {
	if revocations == nil {
		revocations = NoopRevocationList{}
	}
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &Service{
		accounts:      accounts,
		tokens:        tokens,
		revocations:   revocations,
		events:        publisher,
		recorder:      recorder,
		lookupTimeout: lookupTimeout,
		logger:        lg,
	}
}

// Authenticate checks the login credentials and mints a credential. Unknown
// email, wrong password, inactive account and role mismatch all yield the
// same internal.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	dto.Email = NormalizeEmail(dto.Email)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	lookupCtx, cancel := internal.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	account, err := s.accounts.FindByEmail(lookupCtx, dto.Email)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		s.logger.ErrorContext(ctx, "Authenticate: account lookup failed", "error", err)
		s.observe("error")
		return nil, internal.NewInternalError("account lookup failed", err)
	}

	if account == nil {
		compareDummy(dto.Password)
		return nil, s.reject(ctx, dto.Email, "unknown_account")
	}

	if err := VerifyPassword(account.PasswordHash, dto.Password); err != nil {
		return nil, s.reject(ctx, dto.Email, "bad_password")
	}
	if !account.IsActive {
		return nil, s.reject(ctx, dto.Email, "inactive")
	}
	if !account.Role.Valid() || (dto.Role != "" && Role(dto.Role) != account.Role) {
		return nil, s.reject(ctx, dto.Email, "role_mismatch")
	}

	cred, err := s.tokens.Issue(account)
	if err != nil {
		s.logger.ErrorContext(ctx, "Authenticate: token issue failed", "user_id", account.ID, "error", err)
		s.observe("error")
		return nil, internal.NewInternalError("token issue failed", err)
	}

	s.observe("success")
	s.publish(ctx, events.NewAuditEvent(events.LoginSucceeded, map[string]interface{}{
		"user_id": account.ID,
		"role":    string(account.Role),
	}))

	return &LoginResponse{
		Token:     cred.Token,
		TokenType: "Bearer",
		ExpiresAt: cred.ExpiresAt,
		User: AccountView{
			ID:    account.ID,
			Email: account.Email,
			Name:  account.Name,
			Role:  account.Role,
		},
	}, nil
}

// Logout revokes the presented credential until it would have expired.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return internal.ErrUnauthenticated
	}
	if claims.ExpiresAt == nil {
		return internal.ErrUnauthenticated
	}

	revokeCtx, cancel := internal.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	if err := s.revocations.Revoke(revokeCtx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.logger.ErrorContext(ctx, "Logout: revoke failed", "user_id", claims.UserID, "error", err)
		return internal.NewInternalError("logout failed", err)
	}

	s.publish(ctx, events.NewAuditEvent(events.LoggedOut, map[string]interface{}{
		"user_id": claims.UserID,
	}))
	return nil
}

func (s *Service) reject(ctx context.Context, email, reason string) error {
	s.logger.InfoContext(ctx, "Authenticate: login rejected", "reason", reason)
	s.observe("rejected")
	s.publish(ctx, events.NewAuditEvent(events.LoginFailed, map[string]interface{}{
		"email":  email,
		"reason": reason,
	}))
	return internal.ErrInvalidCredentials
}

func (s *Service) observe(result string) {
	if s.recorder != nil {
		s.recorder.ObserveLogin(result)
	}
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

// NormalizeEmail lower-cases and trims an email address for lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string, cost int) (string, error) {
	if cost < MinBCryptCost {
		return "", ErrWeakBCryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareDummy spends the same bcrypt work as a real comparison so unknown
// emails cannot be told apart by response time.
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("internship-management"), MinBCryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
