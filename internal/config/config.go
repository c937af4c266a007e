// Package config decodes the JSON configuration file (§6) and turns it
// into a runnable internal/jobs pass list and internal/lint rule set.
// Grounded on original_source's crates/oxvg_optimiser/src/jobs/mod.rs
// "Jobs<E>" struct (a per-pass Option<Box<Job>> field set, camelCase
// names, a fixed notion of which passes run "by default"), re-expressed
// here as a name-keyed map decoded with encoding/json the way the teacher
// decodes its own wire formats.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/oxvg/oxvg-go/internal/diagnostic"
	"github.com/oxvg/oxvg-go/internal/lint"
)

// JobSetting is either a bool (enable/disable with default config) or a
// pass-specific config object, matching §6's `<passName>: <passConfig|bool>`.
type JobSetting struct {
	Enabled bool
	Raw     json.RawMessage
	IsBool  bool
}

func (s *JobSetting) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		s.IsBool = true
		s.Enabled = b
		return nil
	}
	s.IsBool = false
	s.Enabled = true
	s.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// OptimiseConfig is §6's "optimise" config object.
type OptimiseConfig struct {
	Extends *string               `json:"extends"`
	Jobs    map[string]JobSetting `json:"jobs"`
	Omit    []string              `json:"omit"`
}

// LintConfig is §6's "lint" config object: one off|warn|error string per
// rule name.
type LintConfig struct {
	NoUnknownElements   string `json:"noUnknownElements"`
	NoUnknownAttributes string `json:"noUnknownAttributes"`
	NoDeprecated        string `json:"noDeprecated"`
	NoDefaultAttributes string `json:"noDefaultAttributes"`
	NoXLink             string `json:"noXLink"`
	NoInvalidAttrValue  string `json:"noInvalidAttrValue"`
}

// Config is the top-level JSON document (§6 "Config file (JSON)").
type Config struct {
	Optimise OptimiseConfig `json:"optimise"`
	Lint     LintConfig     `json:"lint"`
}

// Load reads and decodes path. An empty path returns DefaultConfig().
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Lint == (LintConfig{}) {
		cfg.Lint = DefaultConfig().Lint
	}
	return cfg, nil
}

// DefaultConfig is the "default" preset (no extends, every default pass
// on, lint rules at warn).
func DefaultConfig() Config {
	return Presets["default"]
}

// Severities converts the JSON off|warn|error strings to lint.Config,
// falling back to lint.DefaultConfig's warn level for an empty or invalid
// entry rather than silently disabling the rule.
func (c LintConfig) Severities() lint.Config {
	def := lint.DefaultConfig()
	return lint.Config{
		NoUnknownElements:   severityOr(c.NoUnknownElements, def.NoUnknownElements),
		NoUnknownAttributes: severityOr(c.NoUnknownAttributes, def.NoUnknownAttributes),
		NoDeprecated:        severityOr(c.NoDeprecated, def.NoDeprecated),
		NoDefaultAttributes: severityOr(c.NoDefaultAttributes, def.NoDefaultAttributes),
		NoXLink:             severityOr(c.NoXLink, def.NoXLink),
		NoInvalidAttrValue:  severityOr(c.NoInvalidAttrValue, def.NoInvalidAttrValue),
	}
}

func severityOr(s string, fallback diagnostic.Severity) diagnostic.Severity {
	if s == "" {
		return fallback
	}
	if sev, ok := diagnostic.ParseSeverity(s); ok {
		return sev
	}
	return fallback
}
