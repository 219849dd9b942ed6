package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/kssg/internal/config"
	"git.home.luguber.info/inful/kssg/internal/logfields"
)

// Default values written by Init.
const (
	DefaultTitle   = "Your Title"
	DefaultBaseURL = "https://example.com"
)

// Manager handles workspace operations for one configuration file.
type Manager struct {
	root       string
	configPath string
}

// NewManager creates a manager for the workspace whose configuration lives at
// configPath. An empty path means kssg.json in the working directory.
func NewManager(configPath string) (*Manager, error) {
	if configPath == "" {
		configPath = config.FileName
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace: %w", err)
	}
	return &Manager{root: filepath.Dir(abs), configPath: abs}, nil
}

// Root returns the workspace directory.
func (m *Manager) Root() string {
	return m.root
}

// ConfigPath returns the absolute path of the configuration file.
func (m *Manager) ConfigPath() string {
	return m.configPath
}

// Load reads the workspace configuration.
func (m *Manager) Load() (*config.Config, error) {
	return config.Load(m.configPath)
}

// InitOptions controls Init.
type InitOptions struct {
	Title   string
	BaseURL string
	// Scaffold writes a starter index page and post template.
	Scaffold bool
}

// Init writes a fresh configuration and creates the source and output
// directories. It fails with config.ErrConfigExists when the workspace is
// already initialized and then leaves the directory untouched.
func (m *Manager) Init(opts InitOptions) (*config.Config, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	// #nosec G301 -- workspace directories are user content.
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}
	if _, err := config.Init(m.configPath, opts.Title, opts.BaseURL); err != nil {
		return nil, err
	}
	slog.Info("Wrote configuration", logfields.Path(m.configPath))

	cfg, err := config.Load(m.configPath)
	if err != nil {
		return nil, err
	}
	for _, dir := range []string{cfg.SrcPath, cfg.OutputPath} {
		// #nosec G301 -- workspace directories are user content.
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
		slog.Debug("Created directory", logfields.Path(dir))
	}

	if opts.Scaffold {
		if err := scaffold(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
