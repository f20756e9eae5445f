package auth

import (
	"testing"
)

const testSecret = "test-secret-key"

func TestTokenPairRoundTrip(t *testing.T) {
	accessToken, refreshToken, err := GenerateTokenPair(42, testSecret, 15, 7)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	claims, err := ValidateAccessToken(accessToken, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user 42, got %d", claims.UserID)
	}

	claims, err = ValidateRefreshToken(refreshToken, testSecret)
	if err != nil {
		t.Fatalf("ValidateRefreshToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user 42, got %d", claims.UserID)
	}
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	accessToken, refreshToken, err := GenerateTokenPair(1, testSecret, 15, 7)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if _, err := ValidateRefreshToken(accessToken, testSecret); err == nil {
		t.Errorf("access token must not validate as refresh token")
	}
	if _, err := ValidateAccessToken(refreshToken, testSecret); err == nil {
		t.Errorf("refresh token must not validate as access token")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	accessToken, err := GenerateAccessToken(1, testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := ValidateAccessToken(accessToken, "other-secret"); err == nil {
		t.Errorf("token signed with a different secret must be rejected")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	accessToken, err := GenerateAccessToken(1, testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := ValidateAccessToken(accessToken, testSecret); err == nil {
		t.Errorf("expired token must be rejected")
	}
}
