package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	svc, err := NewAuthService([]Credential{
		{Username: "user1", Password: "dummy", Authorities: []string{"read"}, Roles: []string{"USER"}},
		{Username: "admin", Password: "s3cr3t", Authorities: []string{"read", "write"}, Roles: []string{"ADMIN"}},
	})
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc
}

func TestNewAuthService_RejectsBadSeeds(t *testing.T) {
	if _, err := NewAuthService(nil); err == nil {
		t.Fatalf("expected error for empty credential list")
	}
	if _, err := NewAuthService([]Credential{{Username: "  ", Password: "x"}}); err == nil {
		t.Fatalf("expected error for blank username")
	}
	_, err := NewAuthService([]Credential{
		{Username: "dup", Password: "a"},
		{Username: "dup", Password: "b"},
	})
	if err == nil {
		t.Fatalf("expected error for duplicate username")
	}
}

func TestAuthService_ValidateCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	p, err := svc.ValidateCredentials("user1", "dummy")
	if err != nil {
		t.Fatalf("ValidateCredentials: %v", err)
	}
	if p.Username != "user1" || len(p.Authorities) != 1 || p.Authorities[0] != "read" {
		t.Fatalf("unexpected principal: %+v", p)
	}
	// the stored hash is bcrypt, never the plaintext from config
	if p.PasswordHash == "dummy" || p.PasswordHash == "" {
		t.Fatalf("password not hashed during seeding")
	}

	if _, err := svc.ValidateCredentials("user1", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := svc.ValidateCredentials("ghost", "dummy"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)

	before := time.Now()
	token, err := svc.Authenticate("user1", "dummy")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a non-empty token")
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != "user1" {
		t.Fatalf("subject=%q, want user1", claims.Subject)
	}
	if claims.Scope != "read" {
		t.Fatalf("scope=%q, want read", claims.Scope)
	}
	if claims.Issuer != tokenIssuer {
		t.Fatalf("issuer=%q, want %q", claims.Issuer, tokenIssuer)
	}

	// expiry sits 90 minutes after issuance
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatalf("missing iat/exp claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != tokenTTL {
		t.Fatalf("token lifetime=%v, want %v", got, tokenTTL)
	}
	if claims.IssuedAt.Before(before.Add(-time.Minute)) {
		t.Fatalf("iat too far in the past: %v", claims.IssuedAt)
	}
}

func TestAuthService_MultipleAuthoritiesJoinScope(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.Authenticate("admin", "s3cr3t")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Scope != "read write" {
		t.Fatalf("scope=%q, want %q", claims.Scope, "read write")
	}
}

func TestAuthService_RejectsExpiredToken(t *testing.T) {
	svc := newTestAuthService(t)

	past := time.Now().Add(-2 * time.Hour)
	expired := jwt.NewWithClaims(jwt.SigningMethodRS256, &TokenClaims{
		Scope: "read",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "user1",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(tokenTTL)),
		},
	})
	signed, err := expired.SignedString(svc.privateKey)
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	if _, err := svc.ParseToken(signed); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestAuthService_RejectsForeignSignatures(t *testing.T) {
	svc := newTestAuthService(t)

	// a different process (fresh key pair) issued this token
	other := newTestAuthService(t)
	foreign, err := other.Authenticate("user1", "dummy")
	if err != nil {
		t.Fatalf("Authenticate on other service: %v", err)
	}
	if _, err := svc.ParseToken(foreign); err == nil {
		t.Fatalf("expected token from another key pair to be rejected")
	}

	// HMAC-signed tokens are refused regardless of key material
	hmac := jwt.NewWithClaims(jwt.SigningMethodHS256, &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := hmac.SignedString([]byte("some-shared-secret"))
	if err != nil {
		t.Fatalf("sign hmac token: %v", err)
	}
	if _, err := svc.ParseToken(signed); err == nil {
		t.Fatalf("expected non-RSA token to be rejected")
	}
}

func TestAuthService_AuthenticateFailsClosed(t *testing.T) {
	svc := newTestAuthService(t)

	if _, err := svc.Authenticate("user1", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := svc.Authenticate("ghost", "dummy"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
