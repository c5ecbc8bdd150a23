package internal

import (
	"strings"
	"testing"
	"time"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestDailyNotesConfig_NormalisesFolder(t *testing.T) {
	cfg := DailyNotesConfig{Folder: "/journal/daily/"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Folder != "journal/daily" {
		t.Errorf("folder = %q", cfg.Folder)
	}
}

func TestDailyNotesConfig_RejectsEscape(t *testing.T) {
	cfg := DailyNotesConfig{Folder: "../elsewhere"}
	if err := cfg.Validate(); err == nil {
		t.Error("folder outside the vault should fail")
	}
	cfg = DailyNotesConfig{Template: "templates/../../daily"}
	if err := cfg.Validate(); err == nil {
		t.Error("template outside the vault should fail")
	}
}

func TestDailyNotesConfig_TemplatePath(t *testing.T) {
	cases := map[string]string{
		"":                   "",
		"templates/daily":    "templates/daily.md",
		"templates/daily.md": "templates/daily.md",
	}
	for in, want := range cases {
		cfg := DailyNotesConfig{Template: in}
		if got := cfg.TemplatePath(); got != want {
			t.Errorf("TemplatePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRolloverConfig_FreshWithinRequired(t *testing.T) {
	cfg := RolloverConfig{}
	if err := cfg.Validate(); err == nil {
		t.Error("zero fresh_within should fail")
	}
	cfg = RolloverConfig{FreshWithin: 5 * time.Second, SettleDelay: 2 * time.Minute}
	if err := cfg.Validate(); err == nil {
		t.Error("settle_delay above a minute should fail")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}
