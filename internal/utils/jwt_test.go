package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestAccessToken_RoundTrip(t *testing.T) {
	access, err := NewAccessToken(testSecret, 42, 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if access.Token == "" {
		t.Fatal("token is empty")
	}
	if until := time.Until(access.Exp); until < 59*time.Minute || until > 61*time.Minute {
		t.Errorf("expiry %v from now, want ~60m", until)
	}

	id, err := VerifyAccessToken(testSecret, access.Token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if id != 42 {
		t.Errorf("subject = %d, want 42", id)
	}
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	access, err := NewAccessToken(testSecret, 1, 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := VerifyAccessToken("other-secret", access.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	// TTL of -1 minute puts exp in the past immediately.
	access, err := NewAccessToken(testSecret, 1, -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := VerifyAccessToken(testSecret, access.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyAccessToken_Malformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		if _, err := VerifyAccessToken(testSecret, raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("VerifyAccessToken(%q) err = %v, want ErrInvalidToken", raw, err)
		}
	}
}

func TestVerifyAccessToken_TamperedPayload(t *testing.T) {
	access, err := NewAccessToken(testSecret, 7, 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	parts := strings.Split(access.Token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts, want 3", len(parts))
	}
	// Swap the payload for another token's payload; the signature no longer matches.
	other, err := NewAccessToken(testSecret, 8, 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	forged := parts[0] + "." + strings.Split(other.Token, ".")[1] + "." + parts[2]
	if _, err := VerifyAccessToken(testSecret, forged); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyAccessToken_ErrorOmitsSecret(t *testing.T) {
	_, err := VerifyAccessToken(testSecret, "garbage")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), testSecret) {
		t.Errorf("error message leaks the signing secret: %q", err)
	}
}
