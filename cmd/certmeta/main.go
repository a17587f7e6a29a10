package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/certmeta/internal/app"
)

// options holds raw flag values. Only flags the user set are applied on top
// of the file and environment configuration.
type options struct {
	config   string
	envFiles []string

	limit          int
	provider       string
	generateSkills bool
	generateStats  bool
	filterSkill    string
	filterYear     string
	filterTitle    string
	outputSkills   string
	outputCourses  string
	outputURLs     bool
	fetchURLs      bool
	renameUdemy    bool
	renameCybrary  bool
	verbose        bool
	dryRun         bool
	displayConfig  bool
	displayFiles   bool
	summaryPath    string
	summaryPDF     string
	logFile        string
	cacheDir       string
	cacheMaxAge    time.Duration
	clearCache     bool
	strictCache    bool
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cmd, _ := newRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitCode(err))
	}
}

// exitCode maps run errors to the process exit status: 2 when nothing was
// extracted, 1 for every other failure.
func exitCode(err error) int {
	if errors.Is(err, app.ErrNoRecords) {
		return 2
	}
	return 1
}

// newRootCmd returns the root command and the options its flags bind to.
func newRootCmd() (*cobra.Command, *options) {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "certmeta",
		Short: "Extract metadata from course certificates and export reports",
		Long: `certmeta reads certificate documents from one subdirectory per provider,
extracts title, completion date, skills and certificate id, optionally
renames the files canonically and writes JSON/YAML exports.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildConfig(cmd, o)
			if err != nil {
				return err
			}
			closer, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.config, "config", app.DefaultConfigPath, "Path to config file (yaml, json or toml)")
	f.StringSliceVar(&o.envFiles, "env", []string{".env"}, "Dotenv files to load before reading the environment")
	f.IntVar(&o.limit, "test", 0, "Limit to N documents per provider and use staging links (0 = no limit)")
	f.StringVar(&o.provider, "provider", "", "Process only the given provider (e.g. linkedinlearning)")
	f.BoolVar(&o.generateSkills, "generate-skills", false, "Write skills.yml")
	f.BoolVar(&o.generateStats, "generate-stats", false, "Write <provider>_stats.yml")
	f.StringVar(&o.filterSkill, "filter-skill", "", "Keep records whose skills match this regex")
	f.StringVar(&o.filterYear, "filter-year", "", "Keep records completed in this year (e.g. 2025)")
	f.StringVar(&o.filterTitle, "filter-title", "", "Keep records whose title matches this regex")
	f.StringVar(&o.outputSkills, "output-skills", "", "Export the skill set as json or yaml")
	f.StringVar(&o.outputCourses, "output-courses", "", "Export the course list as json or yaml")
	f.BoolVar(&o.outputURLs, "output-urls", false, "Export course URLs to course_urls.json")
	f.BoolVar(&o.fetchURLs, "fetch-urls", false, "Derive course URLs from titles")
	f.BoolVar(&o.renameUdemy, "rename-udemy", false, "Rename Udemy files from their first page before processing")
	f.BoolVar(&o.renameCybrary, "rename-cybrary", false, "Rename Cybrary files from their first page before processing")
	f.BoolVar(&o.verbose, "verbose", false, "Verbose logging")
	f.BoolVar(&o.dryRun, "dry-run", false, "Log every change without renaming, copying or writing files")
	f.BoolVar(&o.displayConfig, "display-config", false, "Print the config file before running")
	f.BoolVar(&o.displayFiles, "display-files", false, "Print generated YAML files")
	f.StringVar(&o.summaryPath, "output-summary", "", "Write a Markdown summary to this path")
	f.StringVar(&o.summaryPDF, "output-pdf", "", "Write a PDF summary to this path")
	f.StringVar(&o.logFile, "log-file", "", "Also write logs to this file")
	f.StringVar(&o.cacheDir, "cache-dir", "", "Cache extracted text in this directory (empty disables)")
	f.DurationVar(&o.cacheMaxAge, "cache-max-age", 0, "Purge cache entries older than this before running (e.g. 720h)")
	f.BoolVar(&o.clearCache, "clear-cache", false, "Empty the cache directory before running")
	f.BoolVar(&o.strictCache, "cache-strict-perms", false, "Restrict cache permissions to the current user (0700/0600)")

	cmd.AddCommand(newVersionCmd())
	return cmd, o
}

// buildConfig layers defaults, config file, environment and explicitly set
// flags, in that order of precedence.
func buildConfig(cmd *cobra.Command, o *options) (app.Config, error) {
	if err := app.LoadEnvFiles(o.envFiles...); err != nil {
		return app.Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := app.DefaultConfig()
	cfg.ConfigPath = o.config
	if strings.TrimSpace(o.config) != "" {
		fc, err := app.LoadConfigFile(o.config)
		switch {
		case err == nil:
			app.ApplyFileConfig(&cfg, fc)
			if err := app.ResolveProviders(&cfg, fc); err != nil {
				return app.Config{}, fmt.Errorf("load providers: %w", err)
			}
		case errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config"):
			log.Debug().Str("path", o.config).Msg("no config file; using defaults")
		default:
			return app.Config{}, fmt.Errorf("load config: %w", err)
		}
	}
	app.ApplyEnvOverrides(&cfg)
	applyFlags(cmd, o, &cfg)
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, o *options, cfg *app.Config) {
	changed := cmd.Flags().Changed
	if changed("test") {
		cfg.Limit = o.limit
	}
	if changed("provider") {
		cfg.Provider = o.provider
	}
	if changed("generate-skills") {
		cfg.GenerateSkills = o.generateSkills
	}
	if changed("generate-stats") {
		cfg.GenerateStats = o.generateStats
	}
	if changed("filter-skill") {
		cfg.FilterSkill = o.filterSkill
	}
	if changed("filter-year") {
		cfg.FilterYear = o.filterYear
	}
	if changed("filter-title") {
		cfg.FilterTitle = o.filterTitle
	}
	if changed("output-skills") {
		cfg.OutputSkills = strings.ToLower(o.outputSkills)
	}
	if changed("output-courses") {
		cfg.OutputCourses = strings.ToLower(o.outputCourses)
	}
	if changed("output-urls") {
		cfg.OutputURLs = o.outputURLs
	}
	if changed("fetch-urls") {
		cfg.FetchURLs = o.fetchURLs
	}
	if changed("rename-udemy") {
		cfg.RenameUdemy = o.renameUdemy
	}
	if changed("rename-cybrary") {
		cfg.RenameCybrary = o.renameCybrary
	}
	if changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if changed("dry-run") {
		cfg.DryRun = o.dryRun
	}
	if changed("display-config") {
		cfg.DisplayConfig = o.displayConfig
	}
	if changed("display-files") {
		cfg.DisplayFiles = o.displayFiles
	}
	if changed("output-summary") {
		cfg.SummaryPath = o.summaryPath
	}
	if changed("output-pdf") {
		cfg.SummaryPDF = o.summaryPDF
	}
	if changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if changed("cache-dir") {
		cfg.CacheDir = o.cacheDir
	}
	if changed("cache-max-age") {
		cfg.CacheMaxAge = o.cacheMaxAge
	}
	if changed("clear-cache") {
		cfg.ClearCache = o.clearCache
	}
	if changed("cache-strict-perms") {
		cfg.CacheStrictPerms = o.strictCache
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging sets the global level and, when a log file is configured,
// tees every event into it.
func setupLogging(cfg app.Config) (io.Closer, error) {
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if strings.TrimSpace(cfg.LogFile) == "" {
		return nopCloser{}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, f)).With().Timestamp().Logger()
	return f, nil
}

func run(ctx context.Context, cfg app.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
