package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func testCodec(t *testing.T, now *time.Time) *Codec {
	t.Helper()
	c, err := NewCodec(Config{
		Secret: testSecret,
		Issuer: "authcore-test",
		Now:    func() time.Time { return *now },
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func TestMintVerifyRoundtrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	signed, err := c.Mint("user-7", KindAccess, 15*time.Minute)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	claims, err := c.Verify(signed, KindAccess)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-7" {
		t.Errorf("UserID = %q, want user-7", claims.UserID)
	}
	if claims.Kind != KindAccess {
		t.Errorf("Kind = %q, want access", claims.Kind)
	}
	if claims.TokenID == "" {
		t.Error("TokenID empty, want unique jti")
	}
	if !claims.ExpiresAt.Equal(now.Add(15 * time.Minute)) {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt, now.Add(15*time.Minute))
	}
}

func TestMintDistinctValuesSameInstant(t *testing.T) {
	// Two tokens minted in the same second must differ on the wire. The
	// rotation exact-match check depends on it.
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	a, err := c.Mint("user-7", KindRefresh, time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	b, err := c.Mint("user-7", KindRefresh, time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if a == b {
		t.Error("two mints produced identical token values")
	}
}

func TestVerifyExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	signed, err := c.Mint("user-7", KindAccess, time.Minute)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.Verify(signed, KindAccess); !errors.Is(err, ErrExpired) {
		t.Errorf("Verify after expiry = %v, want ErrExpired", err)
	}
}

func TestVerifyLeeway(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c, err := NewCodec(Config{
		Secret: testSecret,
		Leeway: 30 * time.Second,
		Now:    func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	signed, err := c.Mint("user-7", KindAccess, time.Minute)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	// 20s past expiry is inside the 30s leeway.
	now = now.Add(time.Minute + 20*time.Second)
	if _, err := c.Verify(signed, KindAccess); err != nil {
		t.Errorf("Verify inside leeway: %v", err)
	}

	now = now.Add(30 * time.Second)
	if _, err := c.Verify(signed, KindAccess); !errors.Is(err, ErrExpired) {
		t.Errorf("Verify past leeway = %v, want ErrExpired", err)
	}
}

func TestVerifyWrongKind(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	refresh, err := c.Mint("user-7", KindRefresh, time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if _, err := c.Verify(refresh, KindAccess); !errors.Is(err, ErrWrongKind) {
		t.Errorf("refresh token as access = %v, want ErrWrongKind", err)
	}

	access, err := c.Mint("user-7", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if _, err := c.Verify(access, KindRefresh); !errors.Is(err, ErrWrongKind) {
		t.Errorf("access token as refresh = %v, want ErrWrongKind", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	signed, err := c.Mint("user-7", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := c.Verify(tampered, KindAccess); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("tampered token = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyOtherKeySignature(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	other, err := NewCodec(Config{
		Secret: []byte("ffffffffffffffffffffffffffffffff"),
		Issuer: "authcore-test",
		Now:    func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	signed, err := other.Mint("user-7", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	if _, err := c.Verify(signed, KindAccess); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("foreign-key token = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	for _, input := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		if _, err := c.Verify(input, KindAccess); !errors.Is(err, ErrMalformed) {
			t.Errorf("Verify(%q) = %v, want ErrMalformed", input, err)
		}
	}
}

func TestNewCodecRejectsEmptySecret(t *testing.T) {
	if _, err := NewCodec(Config{}); err == nil {
		t.Error("NewCodec accepted empty secret")
	}
}

func TestMintRejectsBadInput(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	if _, err := c.Mint("", KindAccess, time.Hour); err == nil {
		t.Error("Mint accepted empty subject")
	}
	if _, err := c.Mint("user-7", Kind("session"), time.Hour); err == nil {
		t.Error("Mint accepted unknown kind")
	}
	if _, err := c.Mint("user-7", KindAccess, 0); err == nil {
		t.Error("Mint accepted zero ttl")
	}
}
