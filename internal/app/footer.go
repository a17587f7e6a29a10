package app

import (
	"strconv"
	"strings"
)

// appendRunFooter appends a minimal, deterministic footer that records the
// build and run mode behind a summary.
func appendRunFooter(markdown string, meta manifestMeta) string {
	var b strings.Builder
	b.WriteString(markdown)
	b.WriteString("\n\n---\n")
	b.WriteString("Reproducibility: ")
	b.WriteString("version=")
	b.WriteString(strings.TrimSpace(meta.Version))
	b.WriteString("; commit=")
	b.WriteString(strings.TrimSpace(meta.Commit))
	b.WriteString("; providers=")
	b.WriteString(strings.Join(meta.Providers, ","))
	b.WriteString("; documents=")
	b.WriteString(strconv.Itoa(meta.DocumentCount))
	b.WriteString("; staging=")
	b.WriteString(strconv.FormatBool(meta.Staging))
	b.WriteString("; dry_run=")
	b.WriteString(strconv.FormatBool(meta.DryRun))
	b.WriteString("\n")
	return b.String()
}
