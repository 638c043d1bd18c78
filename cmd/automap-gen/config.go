package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the configuration for the code generator.
type Config struct {
	Version    string                   `yaml:"version"`
	Generation GenerationConfig         `yaml:"generation"`
	Packages   map[string]PackageConfig `yaml:"packages"`
}

// GenerationConfig holds general generation settings.
type GenerationConfig struct {
	// OutputSuffix is appended to a source file's base name for the generated
	// file, e.g. model.go -> model_automap.go.
	OutputSuffix string `yaml:"output_suffix"`
	// RegistryFile is the name of the per-package registry constructor file.
	RegistryFile string `yaml:"registry_file"`
	// ManifestDir is the directory the build manifest is written to.
	ManifestDir string `yaml:"manifest_dir"`
	// Module qualifies type names in the manifest, e.g. "github.com/acme/app".
	Module string `yaml:"module"`
}

// PackageConfig holds per-package overrides.
type PackageConfig struct {
	Skip bool `yaml:"skip"`
}

// LoadConfig loads configuration from a YAML file, then applies .env and
// AUTOMAP_* environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{
		Packages: make(map[string]PackageConfig),
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvOverrides()

	return config, nil
}

// applyEnvOverrides layers .env (when present) and process environment on top
// of the file configuration.
func (c *Config) applyEnvOverrides() {
	godotenv.Load()

	if v := os.Getenv("AUTOMAP_OUTPUT_SUFFIX"); v != "" {
		c.Generation.OutputSuffix = v
	}
	if v := os.Getenv("AUTOMAP_MANIFEST_DIR"); v != "" {
		c.Generation.ManifestDir = v
	}
	if v := os.Getenv("AUTOMAP_MODULE"); v != "" {
		c.Generation.Module = v
	}
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(config *Config, configPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Generation: GenerationConfig{
			OutputSuffix: "_automap",
			RegistryFile: "automap_registry.go",
			ManifestDir:  ".automap",
		},
		Packages: make(map[string]PackageConfig),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = "1"
	}

	if c.Generation.OutputSuffix == "" {
		return fmt.Errorf("output_suffix cannot be empty")
	}

	if !isValidOutputSuffix(c.Generation.OutputSuffix) {
		return fmt.Errorf("output_suffix must start with underscore or letter")
	}

	if c.Generation.RegistryFile == "" {
		return fmt.Errorf("registry_file cannot be empty")
	}

	if filepath.Ext(c.Generation.RegistryFile) != ".go" {
		return fmt.Errorf("registry_file must be a .go file")
	}

	if c.Generation.ManifestDir == "" {
		return fmt.Errorf("manifest_dir cannot be empty")
	}

	return nil
}

// ManifestPath returns the configured manifest location.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Generation.ManifestDir, "manifest.json")
}

// ImportPathFor derives the import-path qualifier used in the manifest for a
// scanned package directory. Without a configured module, the cleaned relative
// directory stands in.
func (c *Config) ImportPathFor(dir string) string {
	cleaned := path.Clean(filepath.ToSlash(dir))
	if c.Generation.Module == "" {
		return cleaned
	}
	if cleaned == "." {
		return c.Generation.Module
	}
	return path.Join(c.Generation.Module, cleaned)
}

// isValidOutputSuffix checks if output suffix is valid.
func isValidOutputSuffix(s string) bool {
	if s == "" {
		return false
	}

	first := rune(s[0])
	return (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') || first == '_'
}
