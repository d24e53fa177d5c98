package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	token, err := SignJWT(Claims{
		Email: "jane@example.com",
		Name:  "Jane Doe",
		Role:  "user",
		Tier:  "plus",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user-1",
		},
	})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected sub user-1, got %q", claims.Subject)
	}
	if claims.Email != "jane@example.com" {
		t.Fatalf("expected email, got %q", claims.Email)
	}
	if claims.Role != "user" || claims.Tier != "plus" {
		t.Fatalf("expected role/tier carried, got %q/%q", claims.Role, claims.Tier)
	}
}

func TestSignRequiresSubject(t *testing.T) {
	if _, err := SignJWT(Claims{Email: "x@example.com"}); err == nil {
		t.Fatalf("expected error for missing sub")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	past := time.Now().UTC().Add(-2 * time.Hour)
	token, err := SignJWT(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	if _, err := VerifyJWT(token); err == nil {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	token, err := SignJWT(Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := VerifyJWT(tampered); err == nil {
		t.Fatalf("expected tampered token to fail verification")
	}
}
