package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultConcurrency = 1
	defaultTimeout     = "5m"
)

// ScopeSettings maps a workspace directory to the npm scope of its packages.
type ScopeSettings struct {
	Directory string `yaml:"directory" toml:"directory"`
	Scope     string `yaml:"scope"     toml:"scope"`
}

// Settings is the optional project configuration for monotools.
type Settings struct {
	PackageManager  string          `yaml:"package_manager"  toml:"package_manager"`  // "yarn", "npm", "pnpm" or empty to detect
	Concurrency     int             `yaml:"concurrency"      toml:"concurrency"`      // parallel package manager runs
	Timeout         string          `yaml:"timeout"          toml:"timeout"`          // per action, Go duration
	Ignore          []string        `yaml:"ignore"           toml:"ignore"`           // dependency name globs
	Scopes          []ScopeSettings `yaml:"scopes"           toml:"scopes"`           // directory -> scope
	DependencyScope string          `yaml:"dependency_scope" toml:"dependency_scope"` // scope for bare dependency names
	LocalMarkers    []string        `yaml:"local_markers"    toml:"local_markers"`

	timeout time.Duration
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no configuration file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Concurrency:  defaultConcurrency,
		Timeout:      defaultTimeout,
		LocalMarkers: DefaultLocalMarkers(),
		timeout:      5 * time.Minute, //nolint:mnd // mirrors defaultTimeout
	}
}

// NewSettings reads a YAML or TOML configuration file (chosen by extension)
// on top of the defaults and validates it.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, settings)
	} else {
		err = yaml.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	settings.expandEnv()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// LoadSettings loads configPath when set, otherwise the first configuration
// file found in dir. Without any file the defaults are returned.
func LoadSettings(configPath, dir string) (*Settings, error) {
	if configPath != "" {
		return NewSettings(configPath)
	}

	found, err := FindConfigFile(dir)
	if err != nil {
		logger.Debugf("No config file in %s, using defaults", dir)
		return DefaultSettings(), nil
	}

	logger.Infof("Using config file: %s", found)
	return NewSettings(found)
}

// FindConfigFile searches dir for a configuration file.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile(dir string) (string, error) {
	patterns := []string{
		".monotools.yaml",
		".monotools.yml",
		"monotools.yaml",
		"monotools.yml",
		".monotools.toml",
		"monotools.toml",
	}

	for _, pat := range patterns {
		p := filepath.Join(dir, pat)
		if _, statErr := os.Stat(p); statErr == nil {
			return p, nil
		}
	}

	return "", errors.New("config file not found in " + dir)
}

// ActionTimeout returns the parsed per-action timeout.
func (s *Settings) ActionTimeout() time.Duration { return s.timeout }

// SetTimeout overrides the per-action timeout.
func (s *Settings) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
	s.Timeout = timeout.String()
}

func (s *Settings) expandEnv() {
	s.PackageManager = expandEnvVars(s.PackageManager)
	s.DependencyScope = expandEnvVars(s.DependencyScope)
	for i := range s.Scopes {
		s.Scopes[i].Scope = expandEnvVars(s.Scopes[i].Scope)
	}
}

// validate checks the configured values and parses the timeout.
func (s *Settings) validate() error {
	if s.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", s.Concurrency)
	}

	timeout, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	s.timeout = timeout

	for i, scope := range s.Scopes {
		if scope.Directory == "" {
			return fmt.Errorf("scopes[%d].directory is required", i)
		}
		if scope.Scope == "" {
			return fmt.Errorf("scopes[%d].scope is required", i)
		}
	}

	return nil
}

// expandEnvVars replaces ${VAR} references with the environment value.
func expandEnvVars(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
