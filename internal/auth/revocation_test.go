package auth_test

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/frahmantamala/internship-management/internal/auth"
)

var _ = Describe("RedisRevocationList", func() {
	var (
		mr   *miniredis.Miniredis
		list *auth.RedisRevocationList
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		mr, err = miniredis.Run()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(mr.Close)

		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		DeferCleanup(client.Close)
		list = auth.NewRedisRevocationList(client)
	})

	It("remembers a revoked id until the credential expires", func() {
		Expect(list.Revoke(ctx, "jti-1", time.Now().Add(time.Hour))).To(Succeed())

		revoked, err := list.IsRevoked(ctx, "jti-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(revoked).To(BeTrue())

		Expect(mr.TTL("auth:revoked:jti-1")).To(BeNumerically("~", time.Hour, time.Minute))

		mr.FastForward(2 * time.Hour)
		revoked, err = list.IsRevoked(ctx, "jti-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(revoked).To(BeFalse())
	})

	It("skips credentials that already expired", func() {
		Expect(list.Revoke(ctx, "jti-2", time.Now().Add(-time.Minute))).To(Succeed())
		Expect(mr.Exists("auth:revoked:jti-2")).To(BeFalse())
	})

	It("does not report unknown ids", func() {
		revoked, err := list.IsRevoked(ctx, "never-seen")
		Expect(err).NotTo(HaveOccurred())
		Expect(revoked).To(BeFalse())
	})

	It("surfaces connection failures", func() {
		mr.Close()
		_, err := list.IsRevoked(ctx, "jti-3")
		Expect(err).To(HaveOccurred())
	})
})
