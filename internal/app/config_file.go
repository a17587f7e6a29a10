package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/certmeta/internal/builder"
	"github.com/hyperifyio/certmeta/internal/domain"
)

// FileConfig is the on-disk configuration schema. Every key is optional.
type FileConfig struct {
	BaseDir          string            `yaml:"base_dir" json:"base_dir" toml:"base_dir"`
	DataDir          string            `yaml:"data_dir" json:"data_dir" toml:"data_dir"`
	DebugDir         string            `yaml:"debug_dir" json:"debug_dir" toml:"debug_dir"`
	AssetsDir        string            `yaml:"assets_dir" json:"assets_dir" toml:"assets_dir"`
	Repo             string            `yaml:"repo" json:"repo" toml:"repo"`
	ReleaseTag       string            `yaml:"release_tag" json:"release_tag" toml:"release_tag"`
	GithubPageURL    string            `yaml:"github_page_url" json:"github_page_url" toml:"github_page_url"`
	ProvidersYAML    string            `yaml:"providers_yaml" json:"providers_yaml" toml:"providers_yaml"`
	Providers        []ProviderSpec    `yaml:"providers" json:"providers" toml:"providers"`
	OutputFiles      map[string]string `yaml:"output_files" json:"output_files" toml:"output_files"`
	LogFile          string            `yaml:"log_file" json:"log_file" toml:"log_file"`
	CacheDir         string            `yaml:"cache_dir" json:"cache_dir" toml:"cache_dir"`
	CacheStrictPerms *bool             `yaml:"cache_strict_perms" json:"cache_strict_perms" toml:"cache_strict_perms"`
}

// LoadConfigFile reads YAML, JSON or TOML into FileConfig. Unknown extensions
// are tried as YAML and then JSON.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// LoadProvidersFile reads a YAML list of provider specs.
func LoadProvidersFile(path string) ([]ProviderSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var specs []ProviderSpec
	if err := yaml.Unmarshal(b, &specs); err != nil {
		return nil, fmt.Errorf("parse providers %s: %w", path, err)
	}
	return specs, nil
}

// ApplyFileConfig overlays every value the file sets onto cfg. Flags are
// applied afterwards by the CLI so they keep the highest precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&cfg.BaseDir, fc.BaseDir)
	if fc.DataDir != "" && fc.AssetsDir == "" && cfg.AssetsDir == filepath.Join(cfg.DataDir, "assets", "pdfs") {
		cfg.AssetsDir = filepath.Join(fc.DataDir, "assets", "pdfs")
	}
	set(&cfg.DataDir, fc.DataDir)
	set(&cfg.DebugDir, fc.DebugDir)
	set(&cfg.AssetsDir, fc.AssetsDir)
	set(&cfg.Repo, fc.Repo)
	set(&cfg.ReleaseTag, fc.ReleaseTag)
	set(&cfg.PagesURL, fc.GithubPageURL)
	set(&cfg.LogFile, fc.LogFile)
	set(&cfg.CacheDir, fc.CacheDir)
	if fc.CacheStrictPerms != nil {
		cfg.CacheStrictPerms = *fc.CacheStrictPerms
	}
	if len(fc.Providers) > 0 {
		cfg.Providers = append([]ProviderSpec(nil), fc.Providers...)
	}
	if len(fc.OutputFiles) > 0 {
		if cfg.OutputFiles == nil {
			cfg.OutputFiles = map[string]string{}
		}
		for k, v := range fc.OutputFiles {
			cfg.OutputFiles[k] = v
		}
	}
}

// ResolveProviders loads the providers file named by fc, or
// <data_dir>/providers.yml when the file config names none. Inline providers
// win over any file. A missing default file keeps the built-in list.
func ResolveProviders(cfg *Config, fc FileConfig) error {
	if cfg == nil || len(fc.Providers) > 0 {
		return nil
	}
	path := fc.ProvidersYAML
	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.DataDir, "providers.yml")
	}
	specs, err := LoadProvidersFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", path).Msg("no providers file; using built-in providers")
			return nil
		}
		return err
	}
	if len(specs) > 0 {
		cfg.Providers = specs
	}
	return nil
}

var exportFormats = map[string]bool{"": true, "json": true, "yaml": true}

// ValidateConfig checks the settings a run depends on before any document is
// touched.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.BaseDir) == "" {
		return errors.New("config: base_dir is required")
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("config: data_dir is required")
	}
	if len(cfg.Providers) == 0 {
		return errors.New("config: no providers configured")
	}
	for _, p := range cfg.Providers {
		if _, err := domain.ParseProvider(p.Provider); err != nil {
			return fmt.Errorf("config: providers: %w", err)
		}
	}
	if cfg.Provider != "" {
		if _, err := domain.ParseProvider(cfg.Provider); err != nil {
			return fmt.Errorf("config: --provider: %w", err)
		}
	}
	if !exportFormats[cfg.OutputSkills] {
		return fmt.Errorf("config: skills format %q must be json or yaml", cfg.OutputSkills)
	}
	if !exportFormats[cfg.OutputCourses] {
		return fmt.Errorf("config: courses format %q must be json or yaml", cfg.OutputCourses)
	}
	if cfg.Limit < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.CacheMaxAge < 0 {
		return errors.New("config: cache max age must not be negative")
	}
	if _, err := builder.CompileFilters(cfg.FilterSkill, cfg.FilterYear, cfg.FilterTitle); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
