package matcher

import (
	"regexp"
	"strings"

	"github.com/hyperifyio/certmeta/internal/domain"
)

var (
	liFileTitle = regexp.MustCompile(`(?i)CertificateOfCompletion_(.*?)(?:_|\.pdf)`)
	liDate      = regexp.MustCompile(`completed by (\w+\s+\d{1,2},\s+\d{4})`)
	liCertID    = regexp.MustCompile(`Certificate ID:\s*(\S+)`)
	// Normalized text reads "Top skils covered".
	liSkills = regexp.MustCompile(`(?s)Top skil{1,2}s covered\s+(.+?)(?:Certificate ID|\n|$)`)
)

// LinkedInLearning takes the title from the exported filename
// (CertificateOfCompletion_<Title>.pdf) and the rest from the text.
type LinkedInLearning struct{}

func (LinkedInLearning) Provider() domain.Provider { return domain.LinkedInLearning }

func (LinkedInLearning) Match(text, filename string) (Result, bool) {
	title, ok := submatch(liFileTitle, filename)
	if !ok || title == "" {
		return Result{}, false
	}
	date, ok := submatch(liDate, text)
	if !ok {
		return Result{}, false
	}
	res := Result{
		Title:          strings.ReplaceAll(title, "_", " "),
		CompletionDate: date,
	}
	if id, ok := submatch(liCertID, text); ok {
		res.CertificateID = id
	}
	if s, ok := submatch(liSkills, text); ok {
		res.Skills = domain.SplitSkills(s)
	}
	return res, true
}
