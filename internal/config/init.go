package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Init writes a configuration file with default values to configPath.
// It never overwrites an existing file, and writes nothing when the values
// would not load back.
func Init(configPath, title, baseURL string) (*Config, error) {
	cfg := Defaults()
	cfg.SrcPath = "src"
	cfg.OutputPath = "output"
	cfg.SiteTitle = title
	cfg.SiteBaseURL = baseURL

	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	check := *cfg
	check.Root = filepath.Dir(abs)
	check.expandEnv()
	if err := check.normalize(); err != nil {
		return nil, err
	}
	if err := check.Validate(); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	// #nosec G304 -- configPath is chosen by the operator.
	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigExists, abs)
		}
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfg, nil
}
