package auth_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/internal/auth"
)

type panickingVerifier struct{}

func (panickingVerifier) Verify(string) (*auth.Claims, error) {
	panic("malformed payload")
}

type failingRevocations struct{}

func (failingRevocations) Revoke(context.Context, string, time.Time) error { return nil }

func (failingRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

var _ = Describe("Resolver", func() {
	var (
		store    *fakeAccountStore
		issuer   *auth.JWTTokenIssuer
		resolver *auth.Resolver
		account  *auth.Account
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		account = activeAccount(7, "teacher@campus.test", auth.RoleTeacher)
		account.Department = "Informatics"
		store = newFakeAccountStore(account)
		issuer = newIssuer()
		resolver = auth.NewResolver(store, issuer, nil, time.Second, discardLogger())
	})

	mint := func() string {
		cred, err := issuer.Issue(account)
		Expect(err).NotTo(HaveOccurred())
		return cred.Token
	}

	It("round-trips a freshly minted credential", func() {
		principal, err := resolver.Resolve(ctx, mint())
		Expect(err).NotTo(HaveOccurred())
		Expect(principal.ID).To(Equal(account.ID))
		Expect(principal.Email).To(Equal(account.Email))
		Expect(principal.Role).To(Equal(account.Role))
		Expect(principal.Department).To(Equal("Informatics"))
		Expect(principal.Active).To(BeTrue())
	})

	It("rejects an empty credential without a lookup", func() {
		_, err := resolver.Resolve(ctx, "")
		Expect(err).To(MatchError(internal.ErrUnauthenticated))
		Expect(store.calls()).To(Equal(0))
	})

	It("rejects an expired credential", func() {
		past := time.Now().Add(-8 * 24 * time.Hour)
		cred, err := issuer.WithClock(func() time.Time { return past }).Issue(account)
		Expect(err).NotTo(HaveOccurred())

		_, err = resolver.Resolve(ctx, cred.Token)
		Expect(err).To(MatchError(internal.ErrUnauthenticated))
		Expect(store.calls()).To(Equal(0))
	})

	It("rejects a credential whose account was deleted", func() {
		token := mint()
		store.remove(account.ID)

		_, err := resolver.Resolve(ctx, token)
		Expect(err).To(MatchError(internal.ErrUnauthenticated))
	})

	It("rejects a credential whose account was deactivated", func() {
		token := mint()
		store.update(account.ID, func(a *auth.Account) { a.IsActive = false })

		_, err := resolver.Resolve(ctx, token)
		Expect(err).To(MatchError(internal.ErrUnauthenticated))
	})

	It("rejects an account whose stored role is outside the closed set", func() {
		token := mint()
		store.update(account.ID, func(a *auth.Account) { a.Role = auth.Role("superuser") })

		_, err := resolver.Resolve(ctx, token)
		Expect(err).To(MatchError(internal.ErrUnauthenticated))
	})

	It("reflects a role change made after issuance", func() {
		token := mint()
		store.update(account.ID, func(a *auth.Account) {
			a.Role = auth.RoleStudent
			a.Email = "renamed@campus.test"
		})

		principal, err := resolver.Resolve(ctx, token)
		Expect(err).NotTo(HaveOccurred())
		Expect(principal.Role).To(Equal(auth.RoleStudent))
		Expect(principal.Email).To(Equal("renamed@campus.test"))
		Expect(principal.Can(auth.CanCreateStudents)).To(BeFalse())
	})

	It("converts a verifier panic into a rejection", func() {
		resolver = auth.NewResolver(store, panickingVerifier{}, nil, time.Second, discardLogger())

		var err error
		Expect(func() { _, err = resolver.Resolve(ctx, "anything") }).NotTo(Panic())
		Expect(err).To(MatchError(internal.ErrUnauthenticated))
	})

	It("treats a lookup timeout as a rejection", func() {
		store.delay = 200 * time.Millisecond
		resolver = auth.NewResolver(store, issuer, nil, 20*time.Millisecond, discardLogger())

		_, err := resolver.Resolve(ctx, mint())
		Expect(err).To(MatchError(internal.ErrUnauthenticated))
	})

	It("treats a cancelled request as a rejection", func() {
		store.delay = 200 * time.Millisecond
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := resolver.Resolve(cancelled, mint())
		Expect(err).To(MatchError(internal.ErrUnauthenticated))
	})

	It("reports a store failure as a server error, not a rejection", func() {
		store.shouldFail = true
		store.failError = errors.New("pq: connection reset")

		_, err := resolver.Resolve(ctx, mint())
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, internal.ErrUnauthenticated)).To(BeFalse())

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(500))
		Expect(store.calls()).To(Equal(1))
	})

	It("reports a revocation store failure as a server error", func() {
		resolver = auth.NewResolver(store, issuer, failingRevocations{}, time.Second, discardLogger())

		_, err := resolver.Resolve(ctx, mint())
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
	})
})
