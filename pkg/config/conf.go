package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mchmarny/cadrisk/pkg/net"
	"github.com/mchmarny/cadrisk/pkg/risk"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600
)

// Config represents the app config file.
type Config struct {
	// Profile is the name of the active weight profile.
	Profile  string             `yaml:"profile"`
	LogLevel string             `yaml:"log_level,omitempty"`
	Profiles []risk.ProfileSpec `yaml:"profiles,omitempty"`
}

func getDefaultConfig() *Config {
	return &Config{
		Profile:  risk.DefaultProfileName,
		LogLevel: "info",
	}
}

// Validate builds every configured profile and checks that the active
// profile resolves.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Profiles))
	for _, s := range c.Profiles {
		if seen[s.Name] {
			return fmt.Errorf("duplicate profile: %s", s.Name)
		}
		seen[s.Name] = true
		if _, err := s.Build(); err != nil {
			return err
		}
	}
	if _, err := c.Resolve(c.Profile); err != nil {
		return err
	}
	return nil
}

// Resolve returns the named profile. Config profiles shadow built-ins and
// an empty name selects the default.
func (c *Config) Resolve(name string) (*risk.WeightProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = risk.DefaultProfileName
	}
	for _, s := range c.Profiles {
		if s.Name == name {
			return s.Build()
		}
	}
	return risk.LookupProfile(name)
}

// AllProfiles returns built-in profiles followed by config-defined ones,
// skipping built-ins shadowed by config.
func (c *Config) AllProfiles() ([]*risk.WeightProfile, error) {
	shadowed := make(map[string]bool, len(c.Profiles))
	custom := make([]*risk.WeightProfile, 0, len(c.Profiles))
	for _, s := range c.Profiles {
		p, err := s.Build()
		if err != nil {
			return nil, err
		}
		shadowed[p.Name()] = true
		custom = append(custom, p)
	}

	list := make([]*risk.WeightProfile, 0, len(custom)+4)
	for _, p := range risk.Profiles() {
		if !shadowed[p.Name()] {
			list = append(list, p)
		}
	}
	return append(list, custom...), nil
}

func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configFileName, err)
	}
	return nil
}

// ReadOrCreate reads app config from directory or creates a new one.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating config dir", "path", dirPath)
		if err := os.MkdirAll(dirPath, dirMode); err != nil {
			return nil, fmt.Errorf("failed to create dir %s: %w", dirPath, err)
		}
	}

	path := filepath.Join(dirPath, configFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating default config", "path", path)
		if err := Save(dirPath, getDefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("error unmarshalling config file %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &c, nil
}

// LoadProfile reads a single profile document from a local path or URL.
func LoadProfile(ctx context.Context, src string) (*risk.WeightProfile, error) {
	var spec risk.ProfileSpec
	if err := net.GetDocument(ctx, src, &spec); err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	p, err := spec.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to load profile from %s: %w", src, err)
	}
	return p, nil
}

// IsProfileSource reports whether name refers to a profile document rather
// than a profile name.
func IsProfileSource(name string) bool {
	if net.IsURL(name) {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml" || ext == ".json"
}

// GetOrCreateHomeDir returns the app directory under the user home.
// The created flag is set to true if the directory was created.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to get user home dir: %w", err)
	}
	slog.Debug("home dir", "path", home)

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, fmt.Errorf("failed to create dir %s: %w", dir, err)
		}
		created = true
	}
	return dir, created, nil
}
