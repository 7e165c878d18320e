package auth

import (
	"testing"
	"time"

	"github.com/srijeyam/tyrestore-backend/pkg/config"
)

func TestMintAndParseToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:         "secret",
		Issuer:         "tyrestore",
		ExpirationDays: 7,
	}
	now := time.Now().UTC()

	payload := TokenPayload{
		UserID:  "64f1c0ffeec0ffeec0ffee01",
		Email:   "a@b.com",
		IsAdmin: false,
	}

	token, err := MintToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	if claims.UserID() != payload.UserID {
		t.Fatalf("expected user id %s, got %s", payload.UserID, claims.UserID())
	}
	if claims.Email != payload.Email {
		t.Fatalf("unexpected email %s", claims.Email)
	}
	if claims.IsAdmin {
		t.Fatalf("expected non-admin claims")
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(7 * 24 * time.Hour)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:         "secret",
		Issuer:         "tyrestore",
		ExpirationDays: 7,
	}

	token, err := MintToken(cfg, time.Now(), TokenPayload{UserID: "abc", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	other := config.JWTConfig{Secret: "different", Issuer: "tyrestore", ExpirationDays: 7}
	if _, err := ParseToken(other, token); err == nil {
		t.Fatal("expected signature validation to fail")
	}
}

func TestParseTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:         "secret",
		Issuer:         "tyrestore",
		ExpirationDays: 7,
	}

	issued := time.Now().Add(-8 * 24 * time.Hour)
	token, err := MintToken(cfg, issued, TokenPayload{UserID: "abc", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	if _, err := ParseToken(cfg, token); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func TestMintTokenRequiresSecretAndSubject(t *testing.T) {
	if _, err := MintToken(config.JWTConfig{Issuer: "tyrestore", ExpirationDays: 7}, time.Now(), TokenPayload{UserID: "abc"}); err == nil {
		t.Fatal("expected missing secret to be rejected")
	}
	cfg := config.JWTConfig{Secret: "secret", Issuer: "tyrestore", ExpirationDays: 7}
	if _, err := MintToken(cfg, time.Now(), TokenPayload{}); err == nil {
		t.Fatal("expected missing user id to be rejected")
	}
}
