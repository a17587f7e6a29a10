package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/certmeta/internal/aggregate"
	"github.com/hyperifyio/certmeta/internal/domain"
)

// skillsDoc is the shape of every skills export.
type skillsDoc struct {
	Skills []string `yaml:"skills" json:"skills"`
}

// exportProvider writes the per-provider record list and statistics.
func (a *App) exportProvider(res ProviderResult) error {
	id := res.Spec.Provider
	if len(res.Records) == 0 {
		log.Info().Str("provider", id).Msg("no valid documents processed")
	} else {
		path := a.cfg.OutputPath(id+"_certs_json", id+"_certs.json")
		if err := a.writeJSON(path, res.Records); err != nil {
			return err
		}
		log.Info().Str("provider", id).Int("count", len(res.Records)).Str("path", path).Msg("metadata extracted")
	}

	if a.cfg.GenerateStats {
		path := a.cfg.OutputPath(id+"_stats_yml", id+"_stats.yml")
		if err := a.writeYAML(path, aggregate.Summarize(res.Records)); err != nil {
			return err
		}
		if a.cfg.DisplayFiles {
			a.displayFile(path)
		}
	}
	return nil
}

// exportAggregates writes the cross-provider exports once per run.
func (a *App) exportAggregates(all []domain.Record, results []ProviderResult) error {
	if a.cfg.GenerateSkills {
		path := a.cfg.OutputPath("skills_yml", "skills.yml")
		if err := a.writeYAML(path, skillsDoc{Skills: aggregate.SkillSet(all)}); err != nil {
			return err
		}
		if a.cfg.DisplayFiles {
			a.displayFile(path)
		}
	}
	if f := a.cfg.OutputSkills; f != "" {
		path := a.cfg.OutputPath("skills_"+f, "skills."+f)
		if err := a.writeAs(f, path, skillsDoc{Skills: aggregate.SkillSet(all)}); err != nil {
			return err
		}
	}
	if f := a.cfg.OutputCourses; f != "" {
		path := a.cfg.OutputPath("courses_"+f, "courses."+f)
		if err := a.writeAs(f, path, aggregate.Courses(all)); err != nil {
			return err
		}
	}
	if a.cfg.OutputURLs {
		path := a.cfg.OutputPath("course_urls_json", "course_urls.json")
		if err := a.writeJSON(path, aggregate.CourseURLs(all)); err != nil {
			return err
		}
	}
	if len(all) == 0 {
		return nil
	}

	meta := buildManifestMeta(a.cfg, results, a.now())
	entries := flattenManifest(results)
	data, err := marshalManifestJSON(meta, entries)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	if err := a.writeFile(a.cfg.OutputPath("manifest_json", "manifest.json"), data); err != nil {
		return err
	}
	return a.exportSummary(all, meta, entries)
}

// summaryToCMinHeadings is the heading count at which the summary gets a
// table of contents.
const summaryToCMinHeadings = 4

// exportSummary writes the Markdown summary and its PDF rendering.
func (a *App) exportSummary(all []domain.Record, meta manifestMeta, entries []manifestEntry) error {
	if a.cfg.SummaryPath == "" && a.cfg.SummaryPDF == "" {
		return nil
	}
	md := renderSummary(all, aggregate.Summarize(all), meta.GeneratedAt)
	md = appendAutoToC(md, summaryToCMinHeadings)
	md = appendEmbeddedManifest(md, meta, entries)
	md = appendRunFooter(md, meta)

	if a.cfg.SummaryPath != "" {
		if err := a.writeFile(a.cfg.SummaryPath, []byte(md)); err != nil {
			return err
		}
	}
	pdfPath := a.cfg.SummaryPDF
	if pdfPath == "" {
		return nil
	}
	if a.cfg.DryRun {
		log.Info().Str("path", pdfPath).Msg("dry run: would write summary PDF")
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(pdfPath), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(pdfPath), err)
	}
	if err := writeSimplePDF("Certificate summary", md, pdfPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	log.Info().Str("path", pdfPath).Msg("wrote summary PDF")
	return nil
}

func (a *App) writeAs(format, path string, v any) error {
	switch format {
	case "json":
		return a.writeJSON(path, v)
	case "yaml":
		return a.writeYAML(path, v)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func (a *App) writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return a.writeFile(path, append(b, '\n'))
}

func (a *App) writeYAML(path string, v any) error {
	b, err := marshalYAML(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return a.writeFile(path, b)
}

// writeFile creates parent directories and writes data unless this is a
// dry run.
func (a *App) writeFile(path string, data []byte) error {
	if a.cfg.DryRun {
		log.Info().Str("path", path).Int("bytes", len(data)).Msg("dry run: would write")
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("wrote file")
	return nil
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
