package auth_test

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/internship-management/internal/auth"
)

var _ = Describe("JWTTokenIssuer", func() {
	var (
		issuer  *auth.JWTTokenIssuer
		account *auth.Account
	)

	BeforeEach(func() {
		issuer = newIssuer()
		account = &auth.Account{ID: 42, Email: "tutor@acme.test", Role: auth.RoleIndustrialTutor, IsActive: true}
	})

	It("rejects a short secret", func() {
		_, err := auth.NewJWTTokenIssuer([]byte("too-short"), testIssuer)
		Expect(err).To(MatchError(auth.ErrWeakSecret))
	})

	It("embeds id, email and role with a seven day expiry", func() {
		cred, err := issuer.Issue(account)
		Expect(err).NotTo(HaveOccurred())
		Expect(cred.Token).NotTo(BeEmpty())
		Expect(cred.ID).NotTo(BeEmpty())
		Expect(cred.ExpiresAt.Sub(cred.IssuedAt)).To(Equal(7 * 24 * time.Hour))

		claims, err := issuer.Verify(cred.Token)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.UserID).To(Equal(int64(42)))
		Expect(claims.Email).To(Equal("tutor@acme.test"))
		Expect(claims.Role).To(Equal(auth.RoleIndustrialTutor))
		Expect(claims.ID).To(Equal(cred.ID))
		Expect(claims.Subject).To(Equal("42"))
	})

	It("issues a distinct id per credential", func() {
		first, err := issuer.Issue(account)
		Expect(err).NotTo(HaveOccurred())
		second, err := issuer.Issue(account)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.ID).NotTo(Equal(second.ID))
	})

	It("rejects an expired credential even though the signature is valid", func() {
		past := time.Now().Add(-8 * 24 * time.Hour)
		cred, err := issuer.WithClock(func() time.Time { return past }).Issue(account)
		Expect(err).NotTo(HaveOccurred())

		_, err = issuer.Verify(cred.Token)
		Expect(err).To(MatchError(auth.ErrTokenExpired))
	})

	It("rejects a credential signed with another secret", func() {
		other, err := auth.NewJWTTokenIssuer([]byte("another-secret-that-is-long-enough!!"), testIssuer)
		Expect(err).NotTo(HaveOccurred())
		cred, err := other.Issue(account)
		Expect(err).NotTo(HaveOccurred())

		_, err = issuer.Verify(cred.Token)
		Expect(err).To(MatchError(auth.ErrInvalidToken))
	})

	It("rejects a credential from another issuer", func() {
		other, err := auth.NewJWTTokenIssuer([]byte(testSecret), "someone-else")
		Expect(err).NotTo(HaveOccurred())
		cred, err := other.Issue(account)
		Expect(err).NotTo(HaveOccurred())

		_, err = issuer.Verify(cred.Token)
		Expect(err).To(MatchError(auth.ErrInvalidToken))
	})

	It("rejects algorithms other than HS256", func() {
		claims := &auth.Claims{
			UserID: 42,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    testIssuer,
				Subject:   strconv.Itoa(42),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}

		hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		Expect(err).NotTo(HaveOccurred())
		_, err = issuer.Verify(hs512)
		Expect(err).To(MatchError(auth.ErrInvalidToken))

		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		Expect(err).NotTo(HaveOccurred())
		_, err = issuer.Verify(none)
		Expect(err).To(MatchError(auth.ErrInvalidToken))
	})

	It("rejects a credential without expiry", func() {
		claims := &auth.Claims{
			UserID: 42,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:  testIssuer,
				Subject: "42",
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		Expect(err).NotTo(HaveOccurred())

		_, err = issuer.Verify(token)
		Expect(err).To(MatchError(auth.ErrInvalidToken))
	})

	It("rejects garbage", func() {
		_, err := issuer.Verify("not-a-token")
		Expect(err).To(MatchError(auth.ErrInvalidToken))
	})
})
