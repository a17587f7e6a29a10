package app

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hyperifyio/certmeta/internal/builder"
	"github.com/hyperifyio/certmeta/internal/domain"
)

// manifestEntry is a compact record of one document that produced a record.
type manifestEntry struct {
	Index         int    `json:"index"`
	File          string `json:"file"`
	Provider      string `json:"provider"`
	CertificateID string `json:"certificate_id"`
	Pages         int    `json:"pages"`
	SHA256        string `json:"sha256"`
	Chars         int    `json:"chars"`
}

// manifestMeta captures run details that aid reproducibility.
type manifestMeta struct {
	Version       string    `json:"version"`
	Commit        string    `json:"commit"`
	Providers     []string  `json:"providers"`
	DocumentCount int       `json:"document_count"`
	Staging       bool      `json:"staging"`
	DryRun        bool      `json:"dry_run"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// newManifestEntry describes doc as stored at finalPath. Chars counts the
// normalized text the matcher saw.
func newManifestEntry(finalPath string, doc domain.RawDocument, text string, rec domain.Record) manifestEntry {
	return manifestEntry{
		File:          filepath.Base(finalPath),
		Provider:      string(rec.Provider),
		CertificateID: rec.CertificateID,
		Pages:         doc.Pages,
		SHA256:        builder.ContentHash(doc.Content),
		Chars:         len(text),
	}
}

// buildManifestMeta summarizes a run.
func buildManifestMeta(cfg Config, results []ProviderResult, now time.Time) manifestMeta {
	meta := manifestMeta{
		Version:     BuildVersion,
		Commit:      BuildCommit,
		Providers:   make([]string, 0, len(results)),
		Staging:     cfg.Staging(),
		DryRun:      cfg.DryRun,
		GeneratedAt: now.UTC(),
	}
	for _, r := range results {
		meta.Providers = append(meta.Providers, string(r.Provider))
		meta.DocumentCount += len(r.Manifest)
	}
	return meta
}

// flattenManifest renumbers every provider's entries into one list.
func flattenManifest(results []ProviderResult) []manifestEntry {
	var out []manifestEntry
	for _, r := range results {
		for _, e := range r.Manifest {
			e.Index = len(out) + 1
			out = append(out, e)
		}
	}
	return out
}

// appendEmbeddedManifest appends a Markdown manifest section listing each
// document and the digest of its bytes.
func appendEmbeddedManifest(markdown string, meta manifestMeta, entries []manifestEntry) string {
	var b strings.Builder
	b.WriteString(markdown)
	b.WriteString("\n\n## Manifest\n\n")
	b.WriteString("- Version: ")
	b.WriteString(strings.TrimSpace(meta.Version))
	b.WriteString("\n- Providers: ")
	b.WriteString(strings.Join(meta.Providers, ", "))
	b.WriteString("\n- Documents: ")
	b.WriteString(strconv.Itoa(meta.DocumentCount))
	b.WriteString("\n- Staging: ")
	b.WriteString(strconv.FormatBool(meta.Staging))
	b.WriteString("\n- Generated: ")
	b.WriteString(meta.GeneratedAt.UTC().Format(time.RFC3339))
	b.WriteString("\n\n")

	for _, e := range entries {
		b.WriteString(strconv.Itoa(e.Index))
		b.WriteString(". ")
		b.WriteString(e.File)
		b.WriteString(" (")
		b.WriteString(e.Provider)
		b.WriteString(") sha256=")
		b.WriteString(e.SHA256)
		b.WriteString("; chars=")
		b.WriteString(strconv.Itoa(e.Chars))
		b.WriteString("\n")
	}
	return b.String()
}

// marshalManifestJSON encodes the machine-readable run manifest.
func marshalManifestJSON(meta manifestMeta, entries []manifestEntry) ([]byte, error) {
	if entries == nil {
		entries = []manifestEntry{}
	}
	payload := struct {
		Meta      manifestMeta    `json:"meta"`
		Documents []manifestEntry `json:"documents"`
	}{Meta: meta, Documents: entries}
	return json.MarshalIndent(payload, "", "  ")
}
