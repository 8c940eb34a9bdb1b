package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testLimiter(t *testing.T, cfg Config) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, cfg), mr
}

func TestLoginBudget(t *testing.T) {
	limiter, _ := testLimiter(t, Config{
		MaxLoginAttempts: 3,
		LoginCooldown:    15 * time.Minute,
	})
	ctx := context.Background()

	// Under budget: checks pass while failures accumulate.
	for i := 0; i < 3; i++ {
		if err := limiter.CheckLogin(ctx, "a@example.com", ""); err != nil {
			t.Fatalf("CheckLogin #%d: %v", i, err)
		}
		if err := limiter.IncrementLogin(ctx, "a@example.com", ""); err != nil {
			t.Fatalf("IncrementLogin #%d: %v", i, err)
		}
	}

	// The attempt that exceeds the budget trips on increment, the next
	// check rejects up front.
	if err := limiter.IncrementLogin(ctx, "a@example.com", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("IncrementLogin over budget = %v, want ErrRateLimited", err)
	}
	if err := limiter.CheckLogin(ctx, "a@example.com", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("CheckLogin over budget = %v, want ErrRateLimited", err)
	}

	// Other identities are unaffected.
	if err := limiter.CheckLogin(ctx, "b@example.com", ""); err != nil {
		t.Errorf("CheckLogin other email: %v", err)
	}
}

func TestWindowExpires(t *testing.T) {
	limiter, mr := testLimiter(t, Config{
		MaxLoginAttempts: 1,
		LoginCooldown:    time.Minute,
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_ = limiter.IncrementLogin(ctx, "a@example.com", "")
	}
	if err := limiter.CheckLogin(ctx, "a@example.com", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("CheckLogin = %v, want ErrRateLimited", err)
	}

	mr.FastForward(2 * time.Minute)

	if err := limiter.CheckLogin(ctx, "a@example.com", ""); err != nil {
		t.Errorf("CheckLogin after window: %v", err)
	}
}

func TestResetLoginClearsCounters(t *testing.T) {
	limiter, _ := testLimiter(t, Config{
		EnableIPThrottle: true,
		MaxLoginAttempts: 1,
		LoginCooldown:    time.Minute,
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_ = limiter.IncrementLogin(ctx, "a@example.com", "10.0.0.9")
	}
	if err := limiter.CheckLogin(ctx, "a@example.com", "10.0.0.9"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("CheckLogin = %v, want ErrRateLimited", err)
	}

	if err := limiter.ResetLogin(ctx, "a@example.com", "10.0.0.9"); err != nil {
		t.Fatalf("ResetLogin: %v", err)
	}
	if err := limiter.CheckLogin(ctx, "a@example.com", "10.0.0.9"); err != nil {
		t.Errorf("CheckLogin after reset: %v", err)
	}
}

func TestIPThrottleCrossesEmails(t *testing.T) {
	limiter, _ := testLimiter(t, Config{
		EnableIPThrottle: true,
		MaxLoginAttempts: 2,
		LoginCooldown:    time.Minute,
	})
	ctx := context.Background()

	// Same IP hammering different emails still exhausts the IP budget.
	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, email := range emails {
		_ = limiter.IncrementLogin(ctx, email, "10.0.0.9")
	}

	if err := limiter.CheckLogin(ctx, "d@example.com", "10.0.0.9"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("CheckLogin fresh email, hot IP = %v, want ErrRateLimited", err)
	}
	if err := limiter.CheckLogin(ctx, "d@example.com", "10.0.0.10"); err != nil {
		t.Errorf("CheckLogin fresh email, fresh IP: %v", err)
	}
}

func TestRedisDownIsUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	limiter := New(client, Config{MaxLoginAttempts: 3, LoginCooldown: time.Minute})
	mr.Close()

	ctx := context.Background()
	if err := limiter.CheckLogin(ctx, "a@example.com", ""); !errors.Is(err, ErrRedisUnavailable) {
		t.Errorf("CheckLogin = %v, want ErrRedisUnavailable", err)
	}
	if err := limiter.IncrementLogin(ctx, "a@example.com", ""); !errors.Is(err, ErrRedisUnavailable) {
		t.Errorf("IncrementLogin = %v, want ErrRedisUnavailable", err)
	}
}
