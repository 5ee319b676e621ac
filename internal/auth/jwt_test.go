package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if err := InitJWTSecret(); err != nil {
		t.Fatalf("InitJWTSecret error: %v", err)
	}

	token, err := GenerateJWT(42, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	parsed, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT error: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims have unexpected type %T", parsed.Claims)
	}
	if uint(claims["user_id"].(float64)) != 42 {
		t.Fatalf("user_id claim = %v, want 42", claims["user_id"])
	}
	if claims["email"].(string) != "user@example.com" {
		t.Fatalf("email claim = %v, want user@example.com", claims["email"])
	}
}

func TestVerifyJWTRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if err := InitJWTSecret(); err != nil {
		t.Fatalf("InitJWTSecret error: %v", err)
	}

	token, err := GenerateJWT(1, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	if _, err := VerifyJWT(token + "x"); err == nil {
		t.Fatal("VerifyJWT accepted a tampered token")
	}
}

func TestInitJWTSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		ttl     string
		wantErr bool
	}{
		{name: "missing secret", secret: "", wantErr: true},
		{name: "secret only", secret: "test-secret"},
		{name: "explicit ttl", secret: "test-secret", ttl: "2"},
		{name: "non-numeric ttl", secret: "test-secret", ttl: "soon", wantErr: true},
		{name: "non-positive ttl", secret: "test-secret", ttl: "0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("JWT_TTL_HOURS", tt.ttl)

			err := InitJWTSecret()

			if tt.wantErr {
				if err == nil {
					t.Fatal("InitJWTSecret succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("InitJWTSecret error: %v", err)
			}
		})
	}
}

func TestTokenLifetimeFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL_HOURS", "2")

	if err := InitJWTSecret(); err != nil {
		t.Fatalf("InitJWTSecret error: %v", err)
	}

	token, err := GenerateJWT(1, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	parsed, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT error: %v", err)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	want := time.Now().Add(2 * time.Hour)

	if diff := exp.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("exp = %v, want within a minute of %v", exp, want)
	}
}
