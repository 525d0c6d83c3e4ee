package config

import "testing"

func TestValidateRejectsEmptyJWTSecret(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error for an empty JWT secret")
	}
}

func TestValidateAcceptsSigningSecret(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{JWTSecret: "a-real-signing-key"}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
