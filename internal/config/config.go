// Package config loads the kssg.json workspace configuration.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the configuration file name looked up in the workspace root.
const FileName = "kssg.json"

var (
	ErrConfigMissing = errors.New("configuration file not found")
	ErrConfigExists  = errors.New("configuration file already exists")
	ErrMissingKey    = errors.New("missing required configuration key")
	ErrInvalidValue  = errors.New("invalid configuration value")
)

// requiredKeys must be present in every configuration file.
var requiredKeys = []string{"src", "output", "title", "base_url"}

// Config is the immutable input of a build. SrcPath and OutputPath are
// absolute once Load returns.
type Config struct {
	SrcPath     string `json:"src"`
	OutputPath  string `json:"output"`
	SiteTitle   string `json:"title"`
	SiteBaseURL string `json:"base_url"`

	ServerHost           string `json:"serverHost,omitempty"`
	ServerPort           int    `json:"serverPort,omitempty"`
	ServerOpenBrowserTab bool   `json:"serverOpenBrowserTab"`
	LiveReload           bool   `json:"liveReload"`

	TemplateExtensions       []string `json:"templateExtensions,omitempty"`
	PostExtensions           []string `json:"postExtensions,omitempty"`
	StructuredPageExtensions []string `json:"structuredPageExtensions,omitempty"`
	PostDir                  string   `json:"postDir,omitempty"`
	PostTemplate             string   `json:"postTemplate,omitempty"`
	IndexFilename            string   `json:"indexFilename,omitempty"`
	PrivatePrefix            string   `json:"privatePrefix,omitempty"`

	// MetricsFile receives a Prometheus textfile after each build when set.
	MetricsFile string `json:"metricsFile,omitempty"`

	// Root is the workspace root, the directory holding the config file.
	Root string `json:"-"`
}

// Load loads configuration from the specified file. A .env file next to it
// is loaded first and ${VAR} references are expanded from the environment.
func Load(configPath string) (*Config, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	root := filepath.Dir(abs)

	if err := loadEnvFile(root); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissing, abs)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data, root)
}

// Parse decodes a configuration document, expands ${VAR} references in its
// string values and resolves its paths against root.
func Parse(data []byte, root string) (*Config, error) {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(data, &present); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	for _, key := range requiredKeys {
		if _, ok := present[key]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
		}
	}

	cfg := Defaults()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.expandEnv()
	cfg.Root = root
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve returns p made absolute against the workspace root.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Root, p)
}

// Addr returns the preview server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}
