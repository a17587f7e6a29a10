package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/certmeta/internal/builder"
	"github.com/hyperifyio/certmeta/internal/cache"
	"github.com/hyperifyio/certmeta/internal/domain"
	"github.com/hyperifyio/certmeta/internal/extract"
	"github.com/hyperifyio/certmeta/internal/matcher"
	"github.com/hyperifyio/certmeta/internal/normalize"
	"github.com/hyperifyio/certmeta/internal/rename"
)

// ErrNoRecords is returned when a run extracts no record from any provider.
// The CLI maps it to a distinct exit code.
var ErrNoRecords = errors.New("no certificate records extracted")

// Reader is the document reader capability used by the pipeline.
type Reader interface {
	Supports(name string) bool
	Read(path string) (domain.RawDocument, error)
}

type App struct {
	cfg      Config
	reader   Reader
	registry *matcher.Registry
	builder  *builder.Builder
	links    builder.Links
	renamer  rename.Renamer
	prepass  rename.Renamer
	stdout   io.Writer
	now      func() time.Time
}

// ProviderResult is everything one provider's pass produced.
type ProviderResult struct {
	Spec     ProviderSpec
	Provider domain.Provider
	Records  []domain.Record
	Manifest []manifestEntry

	Attempted int
	NoMatch   int
	Filtered  int
	Failed    int
}

func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	filters, err := builder.CompileFilters(cfg.FilterSkill, cfg.FilterYear, cfg.FilterTitle)
	if err != nil {
		return nil, err
	}
	links := builder.Links{
		Staging:    cfg.Staging(),
		PagesURL:   cfg.PagesURL,
		Repo:       cfg.Repo,
		ReleaseTag: cfg.ReleaseTag,
	}
	reader := extract.NewReader()
	if cfg.CacheDir != "" && !cfg.DryRun {
		reader.Cache = &cache.TextCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}
	return &App{
		cfg:      cfg,
		reader:   reader,
		registry: matcher.Default(),
		builder:  builder.New(builder.Options{Filters: filters, CourseURLs: cfg.FetchURLs, Links: links}),
		links:    links,
		renamer:  rename.Renamer{Deriver: rename.Deriver{Date: rename.StrictDate}, DryRun: cfg.DryRun},
		prepass:  rename.Renamer{Deriver: rename.Deriver{Date: rename.FlexibleDate}, DryRun: cfg.DryRun},
		stdout:   os.Stdout,
		now:      time.Now,
	}, nil
}

// maintainCache applies --clear-cache and --cache-max-age before a run.
// Failures only cost the cache and are logged.
func (a *App) maintainCache() {
	if a.cfg.CacheDir == "" || a.cfg.DryRun {
		return
	}
	if a.cfg.ClearCache {
		if err := cache.ClearDir(a.cfg.CacheDir); err != nil {
			log.Warn().Err(err).Str("path", a.cfg.CacheDir).Msg("clear cache failed")
		} else {
			log.Info().Str("path", a.cfg.CacheDir).Msg("cache cleared")
		}
		return
	}
	if a.cfg.CacheMaxAge > 0 {
		removed, err := cache.PurgeByAge(a.cfg.CacheDir, a.cfg.CacheMaxAge)
		if err != nil {
			log.Warn().Err(err).Str("path", a.cfg.CacheDir).Msg("purge cache failed")
			return
		}
		log.Debug().Int("removed", removed).Dur("max_age", a.cfg.CacheMaxAge).Msg("purged cache")
	}
}

func (a *App) Close() {
	// nothing yet
}

// Run processes every selected provider and writes the exports. Per-document
// failures are logged and skipped; only export failures abort.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.DisplayConfig {
		a.displayFile(a.cfg.ConfigPath)
	}
	if a.cfg.DryRun {
		log.Info().Msg("dry run: no files will be renamed, copied or written")
	}
	a.maintainCache()

	results := make([]ProviderResult, 0, len(a.cfg.Providers))
	for _, spec := range a.cfg.Providers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if a.cfg.Provider != "" && spec.Provider != a.cfg.Provider {
			continue
		}
		res, err := a.runProvider(ctx, spec)
		if err != nil {
			return err
		}
		if err := a.exportProvider(res); err != nil {
			return err
		}
		results = append(results, res)
	}

	var all []domain.Record
	for _, r := range results {
		all = append(all, r.Records...)
	}
	if err := a.exportAggregates(all, results); err != nil {
		return err
	}
	if len(all) == 0 {
		return ErrNoRecords
	}
	return nil
}

func (a *App) runProvider(ctx context.Context, spec ProviderSpec) (ProviderResult, error) {
	p, err := domain.ParseProvider(spec.Provider)
	if err != nil {
		return ProviderResult{}, err
	}
	m, err := a.registry.Lookup(p)
	if err != nil {
		return ProviderResult{}, err
	}
	res := ProviderResult{Spec: spec, Provider: p}

	dir := a.cfg.ProviderDir(spec)
	paths, err := listDocuments(dir, a.reader.Supports)
	if err != nil {
		log.Warn().Err(err).Str("provider", spec.Provider).Str("path", dir).Msg("cannot list provider directory")
		return res, nil
	}
	if a.prepassEnabled(p) {
		paths = a.renameBeforeExtract(m, paths)
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if a.cfg.Limit > 0 && res.Attempted >= a.cfg.Limit {
			break
		}
		res.Attempted++
		rec, entry, err := a.processDocument(spec, m, path)
		switch {
		case err == nil:
			res.Records = append(res.Records, rec)
			entry.Index = len(res.Manifest) + 1
			res.Manifest = append(res.Manifest, entry)
		case errors.Is(err, domain.ErrNoMatch):
			res.NoMatch++
			if a.cfg.Verbose {
				log.Warn().Str("provider", spec.Provider).Str("path", path).Msg("no match")
			}
		case errors.Is(err, domain.ErrFilteredOut):
			res.Filtered++
			log.Debug().Str("provider", spec.Provider).Str("path", path).Msg("filtered out")
		default:
			res.Failed++
			log.Error().Err(err).Str("provider", spec.Provider).Str("path", path).Msg("extraction failed")
		}
	}
	log.Info().Str("provider", spec.Provider).Int("count", len(res.Records)).Int("attempted", res.Attempted).
		Int("no_match", res.NoMatch).Int("filtered", res.Filtered).Int("failed", res.Failed).Msg("provider processed")
	return res, nil
}

// processDocument runs the pure read/normalize/build phase and then applies
// the record's effects.
func (a *App) processDocument(spec ProviderSpec, m matcher.Matcher, path string) (domain.Record, manifestEntry, error) {
	doc, err := a.reader.Read(path)
	if err != nil {
		return domain.Record{}, manifestEntry{}, err
	}
	text := normalize.Text(doc.Text)
	if a.cfg.Verbose {
		log.Debug().Str("file", doc.Name()).Str("text", preview(text, 200)).Msg("extracted text")
	}
	a.dumpDebug(doc.Name(), text)

	rec, err := a.builder.BuildNormalized(doc, text, m)
	if err != nil {
		return domain.Record{}, manifestEntry{}, err
	}
	rec, final := a.applyEffects(spec, doc, rec)
	return rec, newManifestEntry(final, doc, text, rec), nil
}

// applyEffects renames and stages the document of a built record. It
// returns the record with its document URL following the final filename.
func (a *App) applyEffects(spec ProviderSpec, doc domain.RawDocument, rec domain.Record) (domain.Record, string) {
	path := doc.Path
	if spec.RenameOnExtract() {
		target, outcome, err := a.renamer.Rename(path, rec.CompletionDate, rec.Title)
		ev := log.Debug()
		if err != nil {
			ev = log.Error().Err(err)
		} else if outcome == rename.Applied || outcome == rename.Planned {
			ev = log.Info()
		}
		ev.Str("provider", spec.Provider).Str("path", path).Str("target", a.renamer.Deriver.Target(path, rec.CompletionDate, rec.Title)).
			Str("outcome", outcome.String()).Msg("rename")
		if outcome == rename.Applied {
			path = target
			rec.DocumentURL = a.links.DocumentURL(filepath.Base(path))
		}
	}
	if a.cfg.Staging() {
		dst, outcome, err := rename.CopyNoClobber(path, a.cfg.AssetsDir, a.cfg.DryRun)
		if err != nil {
			log.Error().Err(err).Str("path", path).Str("target", dst).Msg("copy to assets failed")
		} else {
			log.Debug().Str("path", path).Str("target", dst).Str("outcome", outcome.String()).Msg("copy to assets")
		}
	}
	return rec, path
}

func (a *App) prepassEnabled(p domain.Provider) bool {
	return (p == domain.Udemy && a.cfg.RenameUdemy) || (p == domain.Cybrary && a.cfg.RenameCybrary)
}

// renameBeforeExtract renames documents from their raw first page and
// returns the paths to extract from.
func (a *App) renameBeforeExtract(m matcher.Matcher, paths []string) []string {
	pp, ok := m.(matcher.Prepass)
	if !ok {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		out = append(out, a.prepassOne(pp, path))
	}
	return out
}

func (a *App) prepassOne(pp matcher.Prepass, path string) string {
	doc, err := a.reader.Read(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("rename: cannot read first page")
		return path
	}
	title, date, ok := pp.TitleDate(doc.FirstPage())
	if !ok {
		log.Debug().Str("path", path).Msg("rename: no title or date on first page")
		return path
	}
	target, outcome, err := a.prepass.Rename(path, date, title)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("rename failed")
		return path
	}
	log.Info().Str("path", path).Str("target", a.prepass.Deriver.Target(path, date, title)).
		Str("outcome", outcome.String()).Msg("rename before extraction")
	return target
}

// dumpDebug writes the normalized text of a document for inspection.
func (a *App) dumpDebug(name, text string) {
	if a.cfg.DebugDir == "" {
		return
	}
	path := debugDumpPath(a.cfg.DebugDir, name)
	if a.cfg.DryRun {
		log.Debug().Str("path", path).Msg("dry run: skip debug text")
		return
	}
	if err := os.MkdirAll(a.cfg.DebugDir, 0o755); err != nil {
		log.Warn().Err(err).Str("path", a.cfg.DebugDir).Msg("cannot create debug dir")
		return
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("cannot write debug text")
	}
}

func (a *App) displayFile(path string) {
	b, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(a.stdout, "File %s not found.\n", path)
		return
	}
	fmt.Fprintf(a.stdout, "\nContents of %s:\n%s\n", path, b)
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
