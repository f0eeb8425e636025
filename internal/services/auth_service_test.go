package services

import (
	"testing"
	"time"

	"backoffice/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return AuthService{
		Secret:       []byte("test-secret"),
		Username:     "ops",
		PasswordHash: string(hash),
	}
}

func TestAuthLoginAndParse(t *testing.T) {
	svc := newAuthService(t)

	token, exp, err := svc.Login("ops", "s3cret")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if time.Until(exp) < 23*time.Hour {
		t.Fatalf("token should last a day, expires %v", exp)
	}
	actor, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if actor.UserID != "ops" || actor.Username != "ops" {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	for _, tc := range [][2]string{{"ops", "wrong"}, {"root", "s3cret"}} {
		if _, _, err := svc.Login(tc[0], tc[1]); !domain.IsUnauthorized(err) {
			t.Fatalf("Login(%q) expected unauthorized, got %v", tc[0], err)
		}
	}
	if _, _, err := svc.Login("", ""); !domain.IsValidation(err) {
		t.Fatalf("empty credentials should be a validation error, got %v", err)
	}
}

func TestAuthParseRejectsBadTokens(t *testing.T) {
	svc := newAuthService(t)
	token, _, err := svc.Login("ops", "s3cret")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}

	other := svc
	other.Secret = []byte("another-secret")
	if _, err := other.ParseToken(token); !domain.IsUnauthorized(err) {
		t.Fatalf("foreign signature accepted: %v", err)
	}

	late := svc
	late.Now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	if _, err := late.ParseToken(token); err == nil || err.Error() != "token expired" {
		t.Fatalf("expected expiry, got %v", err)
	}

	if _, err := svc.ParseToken(""); !domain.IsUnauthorized(err) {
		t.Fatalf("empty token accepted")
	}
}
