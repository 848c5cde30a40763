package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/internship-management/internal/auth"
)

var _ = Describe("Gate", func() {
	var (
		store    *fakeAccountStore
		issuer   *auth.JWTTokenIssuer
		recorder *countingRecorder
		gate     *auth.Gate
		student  *auth.Account
		admin    *auth.Account
	)

	BeforeEach(func() {
		student = activeAccount(1, "student@campus.test", auth.RoleStudent)
		admin = activeAccount(2, "admin@campus.test", auth.RoleAdmin)
		store = newFakeAccountStore(student, admin)
		issuer = newIssuer()
		recorder = newCountingRecorder()
		gate = auth.NewGate(auth.NewResolver(store, issuer, nil, time.Second, discardLogger()), recorder)
		gate.Logger = discardLogger()
	})

	bearer := func(a *auth.Account) string {
		cred, err := issuer.Issue(a)
		Expect(err).NotTo(HaveOccurred())
		return "Bearer " + cred.Token
	}

	Describe("Authorize", func() {
		It("yields Unauthenticated for a missing header without touching the store", func() {
			d := gate.Authorize(context.Background(), "", auth.CanViewCompanies)
			Expect(d.Outcome).To(Equal(auth.Unauthenticated))
			Expect(d.Principal).To(BeNil())
			Expect(store.calls()).To(Equal(0))
		})

		DescribeTable("malformed headers never reach the store",
			func(header string) {
				d := gate.Authorize(context.Background(), header, auth.CanViewCompanies)
				Expect(d.Outcome).To(Equal(auth.Unauthenticated))
				Expect(store.calls()).To(Equal(0))
			},
			Entry("basic scheme", "Basic dXNlcjpwYXNz"),
			Entry("scheme only", "Bearer"),
			Entry("two tokens", "Bearer a b"),
			Entry("token only", "eyJhbGciOi"),
		)

		It("accepts the scheme case-insensitively", func() {
			cred, err := issuer.Issue(admin)
			Expect(err).NotTo(HaveOccurred())

			d := gate.Authorize(context.Background(), "bearer "+cred.Token, auth.CanViewCompanies)
			Expect(d.Outcome).To(Equal(auth.Granted))
		})

		It("yields Unauthorized when the role lacks the permission", func() {
			d := gate.Authorize(context.Background(), bearer(student), auth.CanDeleteStudents)
			Expect(d.Outcome).To(Equal(auth.Unauthorized))
			Expect(d.Principal).To(BeNil())
			Expect(d.AppError().StatusCode).To(Equal(http.StatusForbidden))
		})

		It("grants with the principal and its scope", func() {
			d := gate.Authorize(context.Background(), bearer(student), auth.CanViewCompanies)
			Expect(d.Outcome).To(Equal(auth.Granted))
			Expect(d.Principal.ID).To(Equal(student.ID))
			Expect(d.Scope).To(Equal(auth.Scope{Kind: auth.ScopeSelf, UserID: student.ID}))
			Expect(d.AppError()).To(BeNil())
			Expect(recorder.decision("authorize", "granted")).To(Equal(1))
		})

		It("yields ServerError when the store fails", func() {
			header := bearer(admin)
			store.shouldFail = true
			store.failError = errors.New("database is down")

			d := gate.Authorize(context.Background(), header, auth.CanViewCompanies)
			Expect(d.Outcome).To(Equal(auth.ServerError))
			Expect(d.AppError().StatusCode).To(Equal(http.StatusInternalServerError))
			Expect(d.AppError().Message).NotTo(ContainSubstring("database"))
		})
	})

	Describe("HTTP middleware", func() {
		var (
			reached int
			router  http.Handler
		)

		BeforeEach(func() {
			reached = 0
			final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached++
				p, ok := auth.PrincipalFromContext(r.Context())
				Expect(ok).To(BeTrue())
				w.Header().Set("X-Principal-Role", string(p.Role))
				w.Header().Set("X-Scope", string(auth.ScopeFromContext(r.Context()).Kind))
				w.WriteHeader(http.StatusOK)
			})
			router = gate.Middleware(gate.Require(auth.CanDeleteStudents)(final))
		})

		serve := func(header string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/students/1", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			return rec
		}

		errorCode := func(rec *httptest.ResponseRecorder) string {
			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			return body.Error.Code
		}

		It("returns 401 without a header", func() {
			rec := serve("")
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(errorCode(rec)).To(Equal("UNAUTHENTICATED"))
			Expect(reached).To(Equal(0))
			Expect(store.calls()).To(Equal(0))
		})

		It("returns 401 for a deactivated account with the same body as a bad token", func() {
			header := bearer(student)
			store.update(student.ID, func(a *auth.Account) { a.IsActive = false })
			inactive := serve(header)

			garbage := serve("Bearer garbage")

			Expect(inactive.Code).To(Equal(http.StatusUnauthorized))
			Expect(inactive.Body.String()).To(Equal(garbage.Body.String()))
		})

		It("returns 403 when the permission is missing", func() {
			rec := serve(bearer(student))
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(errorCode(rec)).To(Equal("FORBIDDEN"))
			Expect(reached).To(Equal(0))
		})

		It("runs the handler when allowed", func() {
			rec := serve(bearer(admin))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(reached).To(Equal(1))
			Expect(rec.Header().Get("X-Principal-Role")).To(Equal("admin"))
			Expect(rec.Header().Get("X-Scope")).To(Equal("all"))
			Expect(store.calls()).To(Equal(1))
		})

		It("authenticates on its own when used without Middleware", func() {
			standalone := gate.RequireAny(auth.CanCreateCompanies, auth.CanViewCompanies)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }),
			)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
			req.Header.Set("Authorization", bearer(student))
			rec := httptest.NewRecorder()
			standalone.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusNoContent))
		})
	})
})
