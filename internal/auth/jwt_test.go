package auth

import (
	"testing"
	"time"
)

func testTokenService() TokenService {
	return TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "sahityahub-test",
		Duration: time.Hour,
	}
}

func TestSignAndParse(t *testing.T) {
	ts := testTokenService()
	u := &User{
		ID:           "user-1",
		Username:     "reader",
		Email:        "reader@example.com",
		TokenVersion: 3,
	}

	token, exp, err := ts.Sign(u)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry %v is not in the future", exp)
	}

	claims, err := ts.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != u.ID || claims.Username != u.Username || claims.Email != u.Email {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.TokenVersion != 3 {
		t.Fatalf("token_version = %d, want 3 so logout can invalidate", claims.TokenVersion)
	}
	if claims.Issuer != "sahityahub-test" {
		t.Fatalf("issuer = %q", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	ts := testTokenService()
	token, _, err := ts.Sign(&User{ID: "user-1", Username: "reader"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	other := ts
	other.Secret = []byte("different-secret")
	if _, err := other.Parse(token); err == nil {
		t.Fatalf("token signed with another secret parsed cleanly")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	ts := testTokenService()
	ts.Duration = -time.Minute

	token, _, err := ts.Sign(&User{ID: "user-1", Username: "reader"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ts.Parse(token); err == nil {
		t.Fatalf("expired token parsed cleanly")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	ts := testTokenService()
	if _, err := ts.Parse("not.a.token"); err == nil {
		t.Fatalf("garbage token parsed cleanly")
	}
}
