package rest_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/frahmantamala/internship-management/internal/transport/rest"
)

var _ = Describe("HealthHandler", func() {
	var (
		mock sqlmock.Sqlmock
		db   *sqlx.DB
		mr   *miniredis.Miniredis
		rdb  *redis.Client
	)

	BeforeEach(func() {
		rawDB, m, err := sqlmock.New()
		Expect(err).NotTo(HaveOccurred())
		mock = m
		db = sqlx.NewDb(rawDB, "pgx")

		mr = miniredis.RunT(GinkgoT())
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	})

	AfterEach(func() {
		_ = rdb.Close()
		_ = db.Close()
	})

	check := func(h *rest.HealthHandler) (int, rest.HealthResponse) {
		rec := httptest.NewRecorder()
		h.Check(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		var resp rest.HealthResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		return rec.Code, resp
	}

	It("is healthy when postgres and redis answer", func() {
		mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

		code, resp := check(rest.NewHealthHandler(db, rdb))
		Expect(code).To(Equal(http.StatusOK))
		Expect(resp.Status).To(Equal(rest.HealthHealthy))
		Expect(resp.Components["postgres"].Status).To(Equal(rest.HealthHealthy))
		Expect(resp.Components["redis"].Status).To(Equal(rest.HealthHealthy))
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	It("is unavailable when postgres fails, without leaking the cause", func() {
		mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("password authentication failed for user app"))

		code, resp := check(rest.NewHealthHandler(db, rdb))
		Expect(code).To(Equal(http.StatusServiceUnavailable))
		Expect(resp.Status).To(Equal(rest.HealthUnhealthy))
		Expect(resp.Components["postgres"].Message).To(Equal("unreachable"))
		Expect(resp.Components["redis"].Status).To(Equal(rest.HealthHealthy))
	})

	It("is unavailable when redis is down", func() {
		mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
		mr.Close()

		code, resp := check(rest.NewHealthHandler(db, rdb))
		Expect(code).To(Equal(http.StatusServiceUnavailable))
		Expect(resp.Components["redis"].Status).To(Equal(rest.HealthUnhealthy))
	})

	It("reports redis as disabled when no client is configured", func() {
		mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

		code, resp := check(rest.NewHealthHandler(db, nil))
		Expect(code).To(Equal(http.StatusOK))
		Expect(resp.Components["redis"].Status).To(Equal(rest.HealthDisabled))
	})
})
