package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperifyio/certmeta/internal/cache"
	"github.com/hyperifyio/certmeta/internal/extract"
)

func TestNew_AttachesExtractionCache(t *testing.T) {
	tmp := t.TempDir()
	cfg := testConfig(tmp)
	cfg.CacheDir = filepath.Join(tmp, "cache")
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	r, ok := a.reader.(*extract.Reader)
	if !ok || r.Cache == nil || r.Cache.Dir != cfg.CacheDir {
		t.Fatalf("expected reader with cache at %s", cfg.CacheDir)
	}

	cfg.DryRun = true
	a, err = New(cfg)
	if err != nil {
		t.Fatalf("new dry run: %v", err)
	}
	if r := a.reader.(*extract.Reader); r.Cache != nil {
		t.Fatal("dry run should not use the cache")
	}
}

func TestNew_CacheStrictPermsFromConfigFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(path, []byte("cache_dir: "+filepath.Join(tmp, "cache")+"\ncache_strict_perms: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := testConfig(tmp)
	ApplyFileConfig(&cfg, fc)
	if !cfg.CacheStrictPerms {
		t.Fatal("expected cache_strict_perms applied")
	}

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	r := a.reader.(*extract.Reader)
	if r.Cache == nil || !r.Cache.StrictPerms {
		t.Fatal("expected strict cache permissions on the reader cache")
	}
	if err := r.Cache.Save("k", cache.Entry{Text: "x", Pages: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(cfg.CacheDir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if got := info.Mode() & 0o777; got != 0o700 {
		t.Fatalf("cache dir mode = %o, want 0700", got)
	}

	// An absent key keeps the earlier value.
	ApplyFileConfig(&cfg, FileConfig{})
	if !cfg.CacheStrictPerms {
		t.Fatal("absent key must not reset cache_strict_perms")
	}
}

func TestApplyEnvOverrides_CacheStrictPerms(t *testing.T) {
	t.Setenv("CERTMETA_CACHE_STRICT_PERMS", "yes")
	cfg := DefaultConfig()
	ApplyEnvOverrides(&cfg)
	if !cfg.CacheStrictPerms {
		t.Fatal("expected env to enable strict cache perms")
	}
}

func TestMaintainCache_ClearAndPurge(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "cache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	old := filepath.Join(dir, "old.json")
	fresh := filepath.Join(dir, "fresh.json")
	for _, p := range []string{old, fresh} {
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-72 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(tmp)
	cfg.CacheDir = dir
	cfg.CacheMaxAge = 24 * time.Hour
	a := newTestApp(t, cfg)
	a.maintainCache()
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatal("expected expired entry purged")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatal("expected fresh entry kept")
	}

	a.cfg.ClearCache = true
	a.maintainCache()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty cache dir, got %d entries", len(entries))
	}
}

func TestValidateConfig_RejectsNegativeCacheAge(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.CacheMaxAge = -time.Second
	if err := ValidateConfig(cfg); err == nil {
		t.Fatal("expected error")
	}
}
