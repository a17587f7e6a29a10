package app

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperifyio/certmeta/internal/domain"
)

// ProviderSpec binds a provider to the subdirectory holding its documents.
// Rename enables extraction-time renaming; nil means the provider default.
type ProviderSpec struct {
	Provider     string `yaml:"provider" json:"provider" toml:"provider"`
	Subdirectory string `yaml:"subdirectory" json:"subdirectory" toml:"subdirectory"`
	Rename       *bool  `yaml:"rename,omitempty" json:"rename,omitempty" toml:"rename,omitempty"`
}

// RenameOnExtract reports whether matched documents are renamed in place.
// Udemy certificates are renamed by default.
func (p ProviderSpec) RenameOnExtract() bool {
	if p.Rename != nil {
		return *p.Rename
	}
	return p.Provider == string(domain.Udemy)
}

// DefaultProviders lists every provider in a subdirectory named after it.
func DefaultProviders() []ProviderSpec {
	out := make([]ProviderSpec, 0, len(domain.Providers))
	for _, p := range domain.Providers {
		out = append(out, ProviderSpec{Provider: string(p), Subdirectory: string(p)})
	}
	return out
}

// Config holds runtime configuration for the application. It is built once
// by the CLI and passed by value.
type Config struct {
	ConfigPath string

	// Layout
	BaseDir   string
	DataDir   string
	DebugDir  string
	AssetsDir string
	Providers []ProviderSpec

	// Hosting
	Repo       string
	ReleaseTag string
	PagesURL   string

	// Output file names keyed by logical name, relative to DataDir.
	OutputFiles map[string]string
	SummaryPath string
	SummaryPDF  string
	LogFile     string

	// Selection
	Provider    string
	Limit       int
	FilterSkill string
	FilterYear  string
	FilterTitle string

	// Exports
	GenerateSkills bool
	GenerateStats  bool
	OutputSkills   string
	OutputCourses  string
	OutputURLs     bool
	FetchURLs      bool

	// Effects
	RenameUdemy   bool
	RenameCybrary bool

	// Extraction cache; empty CacheDir disables it.
	CacheDir         string
	CacheMaxAge      time.Duration
	ClearCache       bool
	CacheStrictPerms bool // 0700 directory, 0600 entries

	// Behavior
	DryRun        bool
	Verbose       bool
	DisplayConfig bool
	DisplayFiles  bool
}

// Default layout values.
const (
	DefaultConfigPath = "config.yaml"
	DefaultBaseDir    = "certs"
	DefaultDataDir    = "_data"
	DefaultDebugDir   = "_debug"
	DefaultReleaseTag = "certs"
)

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		ConfigPath:  DefaultConfigPath,
		BaseDir:     DefaultBaseDir,
		DataDir:     DefaultDataDir,
		DebugDir:    DefaultDebugDir,
		AssetsDir:   filepath.Join(DefaultDataDir, "assets", "pdfs"),
		Providers:   DefaultProviders(),
		ReleaseTag:  DefaultReleaseTag,
		OutputFiles: map[string]string{},
	}
}

// Staging reports whether the run is a capped test run. Staging runs link
// documents from the pages site and copy them into the assets directory.
func (c Config) Staging() bool { return c.Limit > 0 }

// OutputPath resolves a logical output name to a path under DataDir,
// honoring any output_files override.
func (c Config) OutputPath(key, fallback string) string {
	name := fallback
	if v := strings.TrimSpace(c.OutputFiles[key]); v != "" {
		name = v
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// ProviderDir is the directory scanned for a provider's documents.
func (c Config) ProviderDir(p ProviderSpec) string {
	sub := p.Subdirectory
	if sub == "" {
		sub = p.Provider
	}
	return filepath.Join(c.BaseDir, sub)
}
