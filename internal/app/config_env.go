package app

import (
	"os"
	"strings"
)

// ApplyEnvOverrides overrides cfg fields with environment variables that are
// set. It runs after the config file and before explicit flags.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	setString := func(dst *string, envKey string) {
		if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
			*dst = v
		}
	}
	setString(&cfg.BaseDir, "CERTMETA_BASE_DIR")
	setString(&cfg.DataDir, "CERTMETA_DATA_DIR")
	setString(&cfg.DebugDir, "CERTMETA_DEBUG_DIR")
	setString(&cfg.AssetsDir, "CERTMETA_ASSETS_DIR")
	setString(&cfg.Repo, "CERTMETA_REPO")
	setString(&cfg.ReleaseTag, "CERTMETA_RELEASE_TAG")
	setString(&cfg.PagesURL, "CERTMETA_PAGES_URL")
	setString(&cfg.LogFile, "CERTMETA_LOG_FILE")
	setString(&cfg.CacheDir, "CERTMETA_CACHE_DIR")

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, envKey string) {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			switch s {
			case "1", "true", "yes", "on":
				*dst = true
			case "0", "false", "no", "off":
				*dst = false
			}
		}
	}
	setBool(&cfg.DryRun, "DRY_RUN")
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.CacheStrictPerms, "CERTMETA_CACHE_STRICT_PERMS")
}
