package domain

import (
	"path/filepath"
	"strings"
)

// SkillSeparator joins skills at the export boundary and splits them back.
const SkillSeparator = ", "

// RawDocument is one source file as read from disk. It is never mutated
// after the reader returns it.
type RawDocument struct {
	Path    string
	Content []byte
	// Text is the plain text of every page; pages are separated by form feeds
	// when the reader knows page boundaries.
	Text  string
	Pages int
}

// Name returns the base filename of the document.
func (d RawDocument) Name() string { return filepath.Base(d.Path) }

// FirstPage returns the text of the first page only.
func (d RawDocument) FirstPage() string {
	if i := strings.IndexByte(d.Text, '\f'); i >= 0 {
		return d.Text[:i]
	}
	return d.Text
}

// Record is the canonical metadata extracted from one certificate.
type Record struct {
	Title          string   `json:"title" yaml:"title"`
	CompletionDate string   `json:"completionDate" yaml:"completionDate"`
	Year           string   `json:"year,omitempty" yaml:"year,omitempty"`
	Skills         []string `json:"-" yaml:"-"`
	CertificateID  string   `json:"certificateId" yaml:"certificateId"`
	Instructors    []string `json:"instructors" yaml:"instructors"`
	Provider       Provider `json:"provider" yaml:"provider"`
	CourseURL      string   `json:"courseUrl" yaml:"courseUrl"`
	DocumentURL    string   `json:"documentUrl" yaml:"documentUrl"`
	CertificateURL string   `json:"certificateUrl" yaml:"certificateUrl"`
}

// SkillsString joins the skills the way every export writes them.
func (r Record) SkillsString() string {
	return strings.Join(r.Skills, SkillSeparator)
}

// HasSkills reports whether the record carries any skill text.
func (r Record) HasSkills() bool { return r.SkillsString() != "" }

// SplitSkills parses a comma-joined skills string. An empty string yields nil.
func SplitSkills(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, SkillSeparator)
}
