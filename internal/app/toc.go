package app

import (
	"strings"
)

// appendAutoToC inserts a Markdown table of contents after the title and
// generation date when the summary has at least minHeadings H2-H3 headings.
// Manifest sections are left out. A summary that already has a table of
// contents is returned unchanged.
func appendAutoToC(markdown string, minHeadings int) string {
	if minHeadings <= 0 {
		minHeadings = 4
	}
	if containsHeadingFold(markdown, "table of contents") {
		return markdown
	}
	lines := strings.Split(markdown, "\n")

	type item struct {
		level int
		text  string
	}
	items := make([]item, 0, 16)
	h1Seen := false
	for _, raw := range lines {
		s := strings.TrimSpace(raw)
		if !strings.HasPrefix(s, "#") {
			continue
		}
		level := countPrefix(s, '#')
		t := strings.TrimSpace(strings.TrimLeft(s, "#"))
		if t == "" || level > 6 {
			continue
		}
		if level == 1 && !h1Seen {
			h1Seen = true
			continue
		}
		if level < 2 || level > 3 || strings.Contains(strings.ToLower(t), "manifest") {
			continue
		}
		items = append(items, item{level: level, text: t})
	}
	if len(items) < minHeadings {
		return markdown
	}

	var b strings.Builder
	b.WriteString("## Table of contents\n\n")
	for _, it := range items {
		slug := makeSlug(it.text)
		if slug == "" {
			continue
		}
		if it.level == 3 {
			b.WriteString("  ")
		}
		b.WriteString("- [")
		b.WriteString(it.text)
		b.WriteString("](#")
		b.WriteString(slug)
		b.WriteString(")\n")
	}

	insertAt := indexAfterHeader(lines)
	out := make([]string, 0, len(lines)+3)
	out = append(out, lines[:insertAt]...)
	if insertAt > 0 && strings.TrimSpace(lines[insertAt-1]) != "" {
		out = append(out, "")
	}
	out = append(out, b.String())
	if insertAt < len(lines) && strings.TrimSpace(lines[insertAt]) != "" {
		out = append(out, "")
	}
	out = append(out, lines[insertAt:]...)
	return strings.Join(out, "\n")
}

// indexAfterHeader returns the line index after the first H1 and the
// non-empty line that follows it. Without a leading H1 it returns 0.
func indexAfterHeader(lines []string) int {
	first := -1
	for i, raw := range lines {
		s := strings.TrimSpace(raw)
		if strings.HasPrefix(s, "# ") {
			first = i
			break
		}
		if s != "" {
			break
		}
	}
	if first == -1 {
		return 0
	}
	for i := first + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return i + 1
		}
	}
	return first + 1
}

func countPrefix(s string, r byte) int {
	n := 0
	for i := 0; i < len(s) && s[i] == r; i++ {
		n++
	}
	return n
}

func containsHeadingFold(markdown, title string) bool {
	t := strings.TrimSpace(title)
	for _, line := range strings.Split(markdown, "\n") {
		s := strings.TrimSpace(line)
		if !strings.HasPrefix(s, "#") {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(strings.TrimLeft(s, "#")), t) {
			return true
		}
	}
	return false
}

// makeSlug follows the GitHub heading anchor rules closely enough for the
// ASCII headings the summary emits.
func makeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if r == ' ' || r == '-' || r == '_' {
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
