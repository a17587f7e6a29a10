// Package matcher holds one layout matcher per certificate provider. Each
// matcher is a self-contained rule set over normalized text and, for some
// providers, the filename; adding a provider means adding one Matcher.
package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hyperifyio/certmeta/internal/domain"
)

// Result is what a layout matcher extracts. An empty CertificateID asks the
// builder for the content-hash fallback.
type Result struct {
	Title          string
	CompletionDate string
	CertificateID  string
	Instructors    []string
	Skills         []string
}

// Matcher extracts a Result from normalized text and the source filename.
// ok is false when a required field is missing.
type Matcher interface {
	Provider() domain.Provider
	Match(text, filename string) (res Result, ok bool)
}

// Prepass is implemented by matchers that can read a title and completion
// date off the raw first page, used to rename files before extraction.
type Prepass interface {
	TitleDate(firstPage string) (title, date string, ok bool)
}

// Registry maps provider ids to their matcher.
type Registry struct {
	matchers map[domain.Provider]Matcher
}

// NewRegistry builds a registry from the given matchers. A later matcher for
// the same provider replaces an earlier one.
func NewRegistry(ms ...Matcher) *Registry {
	r := &Registry{matchers: make(map[domain.Provider]Matcher, len(ms))}
	for _, m := range ms {
		r.matchers[m.Provider()] = m
	}
	return r
}

// Default returns the registry with every built-in provider.
func Default() *Registry {
	return NewRegistry(Udemy{}, Cybrary{}, DeepLearningAI{}, LinkedInLearning{})
}

// Lookup returns the matcher for p.
func (r *Registry) Lookup(p domain.Provider) (Matcher, error) {
	m, ok := r.matchers[p]
	if !ok {
		return nil, fmt.Errorf("%w: no matcher for %q", domain.ErrUnknownProvider, p)
	}
	return m, nil
}

// submatch returns the trimmed first capture group of re in s.
func submatch(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil || len(m) < 2 {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
