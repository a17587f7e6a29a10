// Package builder turns a layout match into a validated canonical record.
// It is pure: no filesystem access, no logging.
package builder

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"

	"github.com/hyperifyio/certmeta/internal/domain"
	"github.com/hyperifyio/certmeta/internal/matcher"
	"github.com/hyperifyio/certmeta/internal/normalize"
)

var yearRe = regexp.MustCompile(`\d{4}`)

// Filters drop records that fail any active check. Zero values are inactive.
type Filters struct {
	Skill *regexp.Regexp
	Year  string
	Title *regexp.Regexp
}

// Accept reports whether r passes every active filter.
func (f Filters) Accept(r domain.Record) bool {
	if f.Skill != nil && !f.Skill.MatchString(r.SkillsString()) {
		return false
	}
	if f.Year != "" && r.Year != f.Year {
		return false
	}
	if f.Title != nil && !f.Title.MatchString(r.Title) {
		return false
	}
	return true
}

// CompileFilters builds case-insensitive filters from user patterns.
func CompileFilters(skill, year, title string) (Filters, error) {
	f := Filters{Year: year}
	var err error
	if skill != "" {
		if f.Skill, err = regexp.Compile("(?i)" + skill); err != nil {
			return Filters{}, fmt.Errorf("filter skill: %w", err)
		}
	}
	if title != "" {
		if f.Title, err = regexp.Compile("(?i)" + title); err != nil {
			return Filters{}, fmt.Errorf("filter title: %w", err)
		}
	}
	return f, nil
}

// Options is the builder's slice of the run configuration.
type Options struct {
	Filters    Filters
	CourseURLs bool
	Links      Links
}

// Builder applies a provider's matcher and assembles the record.
type Builder struct {
	opts Options
}

func New(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Build extracts a record from doc. The returned error is domain.ErrNoMatch
// when the matcher misses a required field and domain.ErrFilteredOut when an
// active filter rejects the record; neither leaves a partial record behind.
func (b *Builder) Build(doc domain.RawDocument, m matcher.Matcher) (domain.Record, error) {
	return b.BuildNormalized(doc, normalize.Text(doc.Text), m)
}

// BuildNormalized is Build for callers that already normalized doc.Text.
func (b *Builder) BuildNormalized(doc domain.RawDocument, text string, m matcher.Matcher) (domain.Record, error) {
	res, ok := m.Match(text, doc.Name())
	if !ok {
		return domain.Record{}, domain.ErrNoMatch
	}
	p := m.Provider()
	rec := domain.Record{
		Title:          res.Title,
		CompletionDate: res.CompletionDate,
		Year:           Year(res.CompletionDate),
		Skills:         res.Skills,
		CertificateID:  res.CertificateID,
		Instructors:    res.Instructors,
		Provider:       p,
	}
	if rec.CertificateID == "" {
		rec.CertificateID = ContentID(doc.Content)
	} else {
		rec.CertificateURL = CertificateURL(p, rec.CertificateID)
	}
	if !b.opts.Filters.Accept(rec) {
		return domain.Record{}, domain.ErrFilteredOut
	}
	if b.opts.CourseURLs {
		rec.CourseURL = CourseURL(p, rec.Title)
	}
	rec.DocumentURL = b.opts.Links.DocumentURL(doc.Name())
	return rec, nil
}

// Year returns the first four-digit run in date, or "" when there is none.
func Year(date string) string {
	return yearRe.FindString(date)
}

// ContentID is the fallback certificate id: the first 8 hex characters of
// the SHA-256 of the document bytes.
func ContentID(content []byte) string {
	return ContentHash(content)[:8]
}

// ContentHash is the full lowercase hex SHA-256 of content.
func ContentHash(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}
