package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/internal/transport/middleware"
)

var _ = Describe("Middleware", func() {
	var (
		logBuf *bytes.Buffer
		lg     *slog.Logger
		ok     http.Handler
	)

	BeforeEach(func() {
		logBuf = &bytes.Buffer{}
		lg = slog.New(slog.NewTextHandler(logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	Describe("RequestID", func() {
		It("mints a trace id and exposes it on the context and response", func() {
			var seen string
			h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = internal.TraceIDFromContext(r.Context())
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(seen).NotTo(BeEmpty())
			Expect(rec.Header().Get(middleware.TraceHeader)).To(Equal(seen))
		})

		It("keeps the caller's trace id", func() {
			var seen string
			h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = internal.TraceIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.TraceHeader, "trace-abc")
			h.ServeHTTP(httptest.NewRecorder(), req)

			Expect(seen).To(Equal("trace-abc"))
		})
	})

	Describe("RecoveryMiddleware", func() {
		It("answers a panic with the generic internal error", func() {
			h := middleware.RecoveryMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("db password is hunter2")
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(rec.Body.String()).To(ContainSubstring("INTERNAL_ERROR"))
			Expect(rec.Body.String()).NotTo(ContainSubstring("hunter2"))
			Expect(logBuf.String()).To(ContainSubstring("panic recovered"))
		})
	})

	Describe("LoggingMiddleware", func() {
		It("masks credentials in logged request bodies and headers", func() {
			h := middleware.RequestID(middleware.LoggingMiddleware(lg)(ok))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
				strings.NewReader(`{"email":"a@b.test","password":"hunter2"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer secret-token")
			h.ServeHTTP(httptest.NewRecorder(), req)

			out := logBuf.String()
			Expect(out).To(ContainSubstring("incoming request"))
			Expect(out).To(ContainSubstring("trace_id="))
			Expect(out).To(ContainSubstring("a@b.test"))
			Expect(out).NotTo(ContainSubstring("hunter2"))
			Expect(out).NotTo(ContainSubstring("secret-token"))
		})

		It("leaves the body readable for the handler", func() {
			var got string
			h := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				buf := new(bytes.Buffer)
				_, _ = buf.ReadFrom(r.Body)
				got = buf.String()
			}))

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			h.ServeHTTP(httptest.NewRecorder(), req)

			Expect(got).To(Equal(`{"name":"x"}`))
		})
	})

	Describe("SecureHeaders", func() {
		It("sets hardening headers without redirecting outside production", func() {
			h := middleware.SecureHeaders(false, lg)(ok)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://example.test/", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("X-Frame-Options")).To(Equal("DENY"))
			Expect(rec.Header().Get("X-Content-Type-Options")).To(Equal("nosniff"))
		})

		It("redirects plain HTTP in production", func() {
			h := middleware.SecureHeaders(true, lg)(ok)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://example.test/", nil))

			Expect(rec.Code).To(Equal(http.StatusMovedPermanently))
			Expect(rec.Header().Get("Location")).To(HavePrefix("https://"))
		})
	})

	Describe("CORS", func() {
		It("answers a preflight from an allowed origin", func() {
			h := middleware.CORS([]string{"http://localhost:3000"})(ok)

			req := httptest.NewRequest(http.MethodOptions, "/api/v1/students", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
		})

		It("ignores other origins", func() {
			h := middleware.CORS([]string{"http://localhost:3000"})(ok)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/students", nil)
			req.Header.Set("Origin", "http://evil.test")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
		})
	})

	Describe("LoginRateLimit", func() {
		It("rejects requests over the per-minute budget with 429", func() {
			h := middleware.LoginRateLimit(2, lg)(ok)

			codes := make([]int, 0, 3)
			for i := 0; i < 3; i++ {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
				req.RemoteAddr = "192.0.2.10:4000"
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)
				codes = append(codes, rec.Code)
				if rec.Code == http.StatusTooManyRequests {
					Expect(rec.Body.String()).To(ContainSubstring("TOO_MANY_REQUESTS"))
				}
			}

			Expect(codes).To(Equal([]int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}))
		})

		It("is disabled by a zero limit", func() {
			h := middleware.LoginRateLimit(0, lg)(ok)
			for i := 0; i < 5; i++ {
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
				Expect(rec.Code).To(Equal(http.StatusOK))
			}
		})
	})
})
