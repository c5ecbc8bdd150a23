package internal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Vault      VaultConfig       `yaml:"vault"`
	DailyNotes DailyNotesConfig  `yaml:"daily_notes"`
	Rollover   RolloverConfig    `yaml:"rollover"`
	SQLite     SQLiteConfig      `yaml:"sqlite"`
	Auth       AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.DailyNotes.Validate(); err != nil {
		return err
	}
	if err := c.Rollover.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the path to the Markdown vault directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// DailyNotesConfig describes where daily notes live inside the vault.
//
// Folder and Template are vault-relative. Template may omit the ".md"
// extension; an empty Template means no heading candidates are offered.
type DailyNotesConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Folder   string `yaml:"folder"`
	Template string `yaml:"template"`
}

// Validate validates the daily notes configuration.
func (c *DailyNotesConfig) Validate() error {
	c.Folder = strings.Trim(strings.ReplaceAll(c.Folder, "\\", "/"), "/")
	return validation.ValidateStruct(c,
		validation.Field(&c.Folder, validation.By(noParentRefs)),
		validation.Field(&c.Template, validation.By(noParentRefs)),
	)
}

// TemplatePath returns the vault-relative path of the template note.
func (c *DailyNotesConfig) TemplatePath() string {
	if c.Template == "" {
		return ""
	}
	if strings.HasSuffix(c.Template, ".md") {
		return c.Template
	}
	return c.Template + ".md"
}

func noParentRefs(value any) error {
	s, _ := value.(string)
	for _, part := range strings.Split(strings.ReplaceAll(s, "\\", "/"), "/") {
		if part == ".." {
			return fmt.Errorf("must stay inside the vault")
		}
	}
	return nil
}

// RolloverConfig tunes when a created note counts as freshly created.
//
// FreshWithin bounds the age of a created note that still triggers a
// rollover. SettleDelay is how long the watcher waits after a create event
// before running, so the host can finish writing the template.
type RolloverConfig struct {
	FreshWithin time.Duration `yaml:"fresh_within"`
	SettleDelay time.Duration `yaml:"settle_delay"`
}

// Validate validates the rollover configuration.
func (c *RolloverConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.FreshWithin, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.SettleDelay, validation.Min(time.Duration(0)), validation.Max(time.Minute)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path: "./vault",
		},
		DailyNotes: DailyNotesConfig{
			Enabled: true,
			Folder:  "daily",
		},
		Rollover: RolloverConfig{
			FreshWithin: 10 * time.Second,
			SettleDelay: 250 * time.Millisecond,
		},
		SQLite: SQLiteConfig{
			Path: "./rollover.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
