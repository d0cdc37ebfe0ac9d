package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "gems.yaml"

// LoadGems loads the gems configuration. Keys missing from the file keep
// their default values.
// Search order: customPath -> ~/.gems/configs/gems.yaml -> ./configs/gems.yaml -> embedded default
func LoadGems(customPath string) (GemsConfig, error) {
	cfg, _, err := LoadGemsFrom(customPath)
	return cfg, err
}

// LoadGemsFrom is LoadGems that also reports where the configuration came
// from: a file path, "embedded" or "builtin".
func LoadGemsFrom(customPath string) (GemsConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultGemsConfig(), "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultGemsConfig(), "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then the local configs directory
	for _, p := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if p == "" {
			continue
		}
		if data, err := os.ReadFile(p); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, p, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultGemsYAML)
	if err != nil {
		return DefaultGemsConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// parse decodes data over the defaults and validates the result.
func parse(data []byte) (GemsConfig, error) {
	cfg := DefaultGemsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.Validate()
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gems", "configs", filename)
}

// Marshal encodes cfg as YAML, for writing a starting config file.
func Marshal(cfg GemsConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
