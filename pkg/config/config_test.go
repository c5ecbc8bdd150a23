package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type sample struct {
	Name    string        `yaml:"name"`
	Folder  string        `yaml:"folder"`
	Timeout time.Duration `yaml:"timeout"`
}

func (s *sample) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_ExpandsEnvAndKeepsDefaults(t *testing.T) {
	t.Setenv("ROLLOVER_TEST_FOLDER", "journal")
	p := writeFile(t, "name: vault\nfolder: ${ROLLOVER_TEST_FOLDER}\n")

	cfg := sample{Timeout: 5 * time.Second}
	if err := Load(p, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Folder != "journal" {
		t.Errorf("folder = %q, want journal", cfg.Folder)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want default kept", cfg.Timeout)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	p := writeFile(t, "folder: daily\n")
	var cfg sample
	err := Load(p, &cfg)
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Errorf("err = %v, want validation failure", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg sample
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOptional_MissingFileValidatesDefaults(t *testing.T) {
	cfg := sample{Name: "default"}
	if err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Name != "default" {
		t.Errorf("name = %q", cfg.Name)
	}
}

func TestSave_RoundTripsAndRefusesOverwrite(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := sample{Name: "vault", Folder: "daily", Timeout: 250 * time.Millisecond}
	if err := Save(p, &in, false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var out sample
	if err := Load(p, &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out != in {
		t.Errorf("loaded %+v, want %+v", out, in)
	}

	if err := Save(p, &in, false); err == nil {
		t.Error("expected error when file exists")
	}
	if err := Save(p, &in, true); err != nil {
		t.Errorf("overwrite: %v", err)
	}
}
