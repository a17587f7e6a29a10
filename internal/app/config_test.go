package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadConfigFile_Formats(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"config.yaml": "base_dir: /srv/certs\nrelease_tag: v2\noutput_files:\n  skills_yml: all_skills.yml\nproviders:\n  - provider: udemy\n    subdirectory: Udemy\n    rename: false\n",
		"config.json": `{"base_dir": "/srv/certs", "release_tag": "v2", "output_files": {"skills_yml": "all_skills.yml"}, "providers": [{"provider": "udemy", "subdirectory": "Udemy", "rename": false}]}`,
		"config.toml": "base_dir = \"/srv/certs\"\nrelease_tag = \"v2\"\n\n[output_files]\nskills_yml = \"all_skills.yml\"\n\n[[providers]]\nprovider = \"udemy\"\nsubdirectory = \"Udemy\"\nrename = false\n",
		"config.conf": "base_dir: /srv/certs\nrelease_tag: v2\noutput_files:\n  skills_yml: all_skills.yml\nproviders:\n  - {provider: udemy, subdirectory: Udemy, rename: false}\n",
	}
	for name, content := range cases {
		fc, err := LoadConfigFile(writeConfig(t, dir, name, content))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if fc.BaseDir != "/srv/certs" || fc.ReleaseTag != "v2" || fc.OutputFiles["skills_yml"] != "all_skills.yml" {
			t.Fatalf("%s: unexpected %+v", name, fc)
		}
		if len(fc.Providers) != 1 || fc.Providers[0].Subdirectory != "Udemy" || fc.Providers[0].RenameOnExtract() {
			t.Fatalf("%s: providers %+v", name, fc.Providers)
		}
	}
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfigFile(writeConfig(t, dir, "bad.yaml", "base_dir: [unclosed\n")); err == nil {
		t.Fatalf("expected yaml error")
	}
	if _, err := LoadConfigFile(filepath.Join(dir, "missing.yaml")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}

func TestApplyFileConfig_OverlaysSetValues(t *testing.T) {
	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, FileConfig{
		DataDir:       "site/_data",
		GithubPageURL: "https://acme.github.io",
		OutputFiles:   map[string]string{"udemy_certs_json": "udemy.json"},
	})
	if cfg.DataDir != "site/_data" || cfg.PagesURL != "https://acme.github.io" {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
	if cfg.AssetsDir != filepath.Join("site/_data", "assets", "pdfs") {
		t.Fatalf("assets dir should follow data dir, got %q", cfg.AssetsDir)
	}
	if cfg.BaseDir != DefaultBaseDir || cfg.ReleaseTag != DefaultReleaseTag {
		t.Fatalf("unset keys must keep defaults: %+v", cfg)
	}
	if got := cfg.OutputPath("udemy_certs_json", "udemy_certs.json"); got != filepath.Join("site/_data", "udemy.json") {
		t.Fatalf("OutputPath override: %q", got)
	}
	if got := cfg.OutputPath("skills_yml", "skills.yml"); got != filepath.Join("site/_data", "skills.yml") {
		t.Fatalf("OutputPath fallback: %q", got)
	}
}

func TestResolveProviders(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = dir

	// No providers file: built-in list stays.
	if err := ResolveProviders(&cfg, FileConfig{}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(cfg.Providers) != 4 {
		t.Fatalf("expected built-in providers, got %+v", cfg.Providers)
	}

	writeConfig(t, dir, "providers.yml", "- provider: linkedinlearning\n  subdirectory: LinkedIn\n")
	if err := ResolveProviders(&cfg, FileConfig{}); err != nil {
		t.Fatalf("resolve default file: %v", err)
	}
	if len(cfg.Providers) != 1 || cfg.ProviderDir(cfg.Providers[0]) != filepath.Join(DefaultBaseDir, "LinkedIn") {
		t.Fatalf("unexpected providers %+v", cfg.Providers)
	}

	if err := ResolveProviders(&cfg, FileConfig{ProvidersYAML: filepath.Join(dir, "nope.yml")}); err == nil {
		t.Fatalf("explicit missing providers file must fail")
	}
}

func TestValidateConfig(t *testing.T) {
	ok := DefaultConfig()
	if err := ValidateConfig(ok); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	cases := map[string]func(*Config){
		"base dir":         func(c *Config) { c.BaseDir = " " },
		"unknown provider": func(c *Config) { c.Providers = []ProviderSpec{{Provider: "coursera"}} },
		"provider flag":    func(c *Config) { c.Provider = "coursera" },
		"skills format":    func(c *Config) { c.OutputSkills = "csv" },
		"courses format":   func(c *Config) { c.OutputCourses = "text" },
		"negative limit":   func(c *Config) { c.Limit = -1 },
		"skill pattern":    func(c *Config) { c.FilterSkill = "[" },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		err := ValidateConfig(cfg)
		if err == nil || !strings.HasPrefix(err.Error(), "config:") {
			t.Fatalf("%s: expected config error, got %v", name, err)
		}
	}
}

func TestProviderSpec_RenameOnExtract(t *testing.T) {
	yes, no := true, false
	if !(ProviderSpec{Provider: "udemy"}).RenameOnExtract() {
		t.Fatalf("udemy renames by default")
	}
	if (ProviderSpec{Provider: "cybrary"}).RenameOnExtract() {
		t.Fatalf("cybrary does not rename by default")
	}
	if !(ProviderSpec{Provider: "cybrary", Rename: &yes}).RenameOnExtract() || (ProviderSpec{Provider: "udemy", Rename: &no}).RenameOnExtract() {
		t.Fatalf("explicit rename setting must win")
	}
}
