package config

import (
	"os"
	"path/filepath"
	"testing"
)

// pointConfigHome redirects the user config directory into a temp dir.
func pointConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	// os.UserConfigDir uses HOME on darwin; cover both.
	t.Setenv("HOME", dir)
	return dir
}

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	t.Setenv("TIMECARD_ORG", "")
	t.Setenv("SLACK_USER_ID", "")
	t.Setenv("SLACK_HUDDLES_PATH", "")
}

func TestLoadDefaults(t *testing.T) {
	pointConfigHome(t)
	clearEnvOverrides(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Org != DefaultOrg {
		t.Errorf("expected default org %q, got %q", DefaultOrg, cfg.Org)
	}
	if cfg.SlackHuddlesPath != DefaultHuddlesPath {
		t.Errorf("expected default huddles path, got %q", cfg.SlackHuddlesPath)
	}
	if cfg.SlackUserID != "" {
		t.Errorf("user ID has no default, got %q", cfg.SlackUserID)
	}
}

func TestLoadFromFile(t *testing.T) {
	pointConfigHome(t)
	clearEnvOverrides(t)

	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "org: acme\nslack_user_id: U03H3A69E2D\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Org != "acme" {
		t.Errorf("expected org from file, got %q", cfg.Org)
	}
	if cfg.SlackUserID != "U03H3A69E2D" {
		t.Errorf("expected user ID from file, got %q", cfg.SlackUserID)
	}
	// Unset keys keep their defaults.
	if cfg.SlackHuddlesPath != DefaultHuddlesPath {
		t.Errorf("expected default huddles path, got %q", cfg.SlackHuddlesPath)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	pointConfigHome(t)
	clearEnvOverrides(t)

	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("org: acme\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TIMECARD_ORG", "umbrella")
	t.Setenv("SLACK_USER_ID", "U999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Org != "umbrella" {
		t.Errorf("env should override the file, got %q", cfg.Org)
	}
	if cfg.SlackUserID != "U999" {
		t.Errorf("env should set the user ID, got %q", cfg.SlackUserID)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	pointConfigHome(t)
	clearEnvOverrides(t)

	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("org: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	pointConfigHome(t)
	clearEnvOverrides(t)

	want := &Config{Org: "acme", SlackUserID: "U123", SlackHuddlesPath: "/exports"}
	if err := Save(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}
