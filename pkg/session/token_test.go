package session

import (
	"testing"

	"github.com/novamart/storefront-backend/pkg/config"
)

func testConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-secret-test-secret-test-secret",
		Issuer:     "storefront",
		TTLMinutes: 60,
	}
}

func TestIssueParseRoundTrip(t *testing.T) {
	t.Parallel()

	manager, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("building manager: %v", err)
	}

	token, sessionID, err := manager.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if token == "" || sessionID == "" {
		t.Fatal("expected a token and session id")
	}

	parsed, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed != sessionID {
		t.Fatalf("expected session %q, got %q", sessionID, parsed)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	manager, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("building manager: %v", err)
	}
	if _, err := manager.Parse("not-a-token"); err == nil {
		t.Fatal("expected an error for garbage input")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	issuerCfg := testConfig()
	manager, err := NewManager(issuerCfg)
	if err != nil {
		t.Fatalf("building manager: %v", err)
	}
	token, _, err := manager.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	otherCfg := issuerCfg
	otherCfg.Secret = "another-secret-another-secret-abc"
	other, err := NewManager(otherCfg)
	if err != nil {
		t.Fatalf("building manager: %v", err)
	}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected a signature mismatch")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	manager, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("building manager: %v", err)
	}

	otherCfg := cfg
	otherCfg.Issuer = "someone-else"
	other, err := NewManager(otherCfg)
	if err != nil {
		t.Fatalf("building manager: %v", err)
	}
	token, _, err := other.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := manager.Parse(token); err == nil {
		t.Fatal("expected an issuer mismatch")
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Secret = ""
	if _, err := NewManager(cfg); err == nil {
		t.Fatal("expected an error for a missing secret")
	}
}
