package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIsPasswordValid(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"hunter2abc", true},
		{"abcdefgh", true},
		{"pass word", true},
		{"short1", false},
		{"1234567", false},
		{"12345678", false},
		{"999999999999", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsPasswordValid(tc.password); got != tc.valid {
			t.Errorf("IsPasswordValid(%q) = %v, want %v", tc.password, got, tc.valid)
		}
	}
}

func TestVerifyToken(t *testing.T) {
	const secret = "secret"

	sign := func(method jwt.SigningMethod, claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("failed to sign: %v", err)
		}
		return token
	}

	request := func(header string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		return req
	}

	t.Run("valid token", func(t *testing.T) {
		token := sign(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "5", "exp": time.Now().Add(time.Hour).Unix()})
		claims, err := VerifyToken(request("Bearer "+token), secret)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims["sub"] != "5" {
			t.Fatalf("unexpected claims: %v", claims)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		if _, err := VerifyToken(request(""), secret); !errors.Is(err, ErrMissingAuthHeader) {
			t.Fatalf("expected ErrMissingAuthHeader, got %v", err)
		}
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		if _, err := VerifyToken(request("Basic abc"), secret); !errors.Is(err, ErrMissingAuthHeader) {
			t.Fatalf("expected ErrMissingAuthHeader, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token := sign(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "5", "exp": time.Now().Add(-time.Hour).Unix()})
		if _, err := VerifyToken(request("Bearer "+token), secret); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestGetUserIDFromClaims(t *testing.T) {
	t.Run("string sub", func(t *testing.T) {
		id, err := GetUserIDFromClaims(jwt.MapClaims{"sub": "12"})
		if err != nil || id != 12 {
			t.Fatalf("expected 12, got %d (%v)", id, err)
		}
	})

	t.Run("numeric sub", func(t *testing.T) {
		id, err := GetUserIDFromClaims(jwt.MapClaims{"sub": float64(7)})
		if err != nil || id != 7 {
			t.Fatalf("expected 7, got %d (%v)", id, err)
		}
	})

	t.Run("missing sub", func(t *testing.T) {
		if _, err := GetUserIDFromClaims(jwt.MapClaims{}); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("unparseable sub", func(t *testing.T) {
		if _, err := GetUserIDFromClaims(jwt.MapClaims{"sub": "alice"}); err == nil {
			t.Fatal("expected an error")
		}
	})
}
