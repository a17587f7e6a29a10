// Package rename derives canonical certificate filenames
// (<yyyy-mm-dd>-<title>.pdf) and applies renames and copies without ever
// overwriting an existing file.
package rename

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/araddon/dateparse"
)

var (
	isoPrefix     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	isoDate       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthDayYear  = regexp.MustCompile(`^(\w+)\s+(\d{1,2}),\s+(\d{4})`)
	slashDate     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})`)
	titleSpaces   = regexp.MustCompile(`\s+`)
	titleNonWords = regexp.MustCompile(`[^\w-]`)
)

var months = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04", "may": "05", "jun": "06",
	"jul": "07", "aug": "08", "sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// UnknownDate replaces dates the flexible chain cannot read.
const UnknownDate = "unknown-date"

// DateFunc turns extracted date text into the date part of a filename.
type DateFunc func(string) string

// StrictDate keeps YYYY-MM-DD prefixed text as is and converts
// "<Month> <d>, <yyyy>" by its three-letter month prefix, defaulting to 01
// for an unknown prefix. Anything else is returned unchanged.
func StrictDate(s string) string {
	s = strings.TrimSpace(s)
	if isoPrefix.MatchString(s) {
		return s
	}
	if m := monthDayYear.FindStringSubmatch(s); m != nil {
		return m[3] + "-" + monthNumber(m[1]) + "-" + pad2(m[2])
	}
	return s
}

// FlexibleDate tries a general date parser, then m/d/yyyy, and finally
// gives up with UnknownDate.
func FlexibleDate(s string) string {
	s = strings.TrimSpace(s)
	if t, err := dateparse.ParseAny(s); err == nil {
		return t.Format("2006-01-02")
	}
	if m := slashDate.FindStringSubmatch(s); m != nil {
		return m[3] + "-" + pad2(m[1]) + "-" + pad2(m[2])
	}
	return UnknownDate
}

func monthNumber(name string) string {
	key := strings.ToLower(name)
	if len(key) > 3 {
		key = key[:3]
	}
	if n, ok := months[key]; ok {
		return n
	}
	return "01"
}

func pad2(d string) string {
	if len(d) == 1 {
		return "0" + d
	}
	return d
}

// SanitizeTitle lowercases title, joins words with hyphens and drops every
// character that is not a word character or hyphen.
func SanitizeTitle(title string) string {
	s := titleSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	return titleNonWords.ReplaceAllString(s, "")
}

// Deriver computes canonical filenames with one date chain.
type Deriver struct {
	Date DateFunc
}

// Name returns "<date>-<title>.pdf". ok is false unless both date and title
// are present and the date chain yields YYYY-MM-DD or UnknownDate; other
// date text comes from the document and must not reach the path.
func (d Deriver) Name(date, title string) (string, bool) {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(title) == "" {
		return "", false
	}
	df := d.Date
	if df == nil {
		df = StrictDate
	}
	iso := df(date)
	if iso != UnknownDate && !isoDate.MatchString(iso) {
		return "", false
	}
	slug := SanitizeTitle(title)
	if slug == "" {
		return "", false
	}
	return fmt.Sprintf("%s-%s.pdf", iso, slug), true
}

// Target returns the canonical path next to path, or path itself when the
// name cannot be derived. A source that is not a PDF keeps its extension.
func (d Deriver) Target(path, date, title string) string {
	name, ok := d.Name(date, title)
	if !ok {
		return path
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" && ext != ".pdf" {
		name = strings.TrimSuffix(name, ".pdf") + ext
	}
	return filepath.Join(filepath.Dir(path), name)
}
