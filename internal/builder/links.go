package builder

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/hyperifyio/certmeta/internal/domain"
	"github.com/hyperifyio/certmeta/internal/normalize"
)

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugSpaces = regexp.MustCompile(`\s`)
)

var courseURLTemplates = map[domain.Provider]string{
	domain.LinkedInLearning: "https://www.linkedin.com/learning/%s",
	domain.Udemy:            "https://www.udemy.com/course/%s/",
	domain.Cybrary:          "https://www.cybrary.it/course/%s/",
	domain.DeepLearningAI:   "https://www.deeplearning.ai/short-courses/%s/",
}

// Slug lowercases title, folds accents, drops everything except letters,
// digits, underscores, whitespace and hyphens, turns each whitespace
// character into a hyphen and trims hyphens from both ends.
func Slug(title string) string {
	s := slugStrip.ReplaceAllString(normalize.Fold(title), "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CourseURL guesses the public course page from the title. Unknown
// providers yield "".
func CourseURL(p domain.Provider, title string) string {
	tmpl, ok := courseURLTemplates[p]
	if !ok {
		return ""
	}
	return strings.Replace(tmpl, "%s", Slug(title), 1)
}

// CertificateURL is the verification link for providers that publish one
// under the parsed certificate id.
func CertificateURL(p domain.Provider, id string) string {
	switch p {
	case domain.Udemy:
		return "https://ude.my/" + id
	case domain.LinkedInLearning:
		return "https://www.linkedin.com/learning/certificates/" + id
	}
	return ""
}

// Links formats where a certificate document is hosted. Staging serves the
// file from the pages site assets; otherwise it lives on a release.
type Links struct {
	Staging    bool
	PagesURL   string
	Repo       string
	ReleaseTag string
}

// DocumentURL formats the hosted URL of filename. It does not require the
// release to exist.
func (l Links) DocumentURL(filename string) string {
	name := url.PathEscape(filename)
	if l.Staging {
		return strings.TrimRight(l.PagesURL, "/") + "/assets/pdfs/" + name
	}
	if l.Repo == "" {
		return ""
	}
	return "https://github.com/" + l.Repo + "/releases/download/" + l.ReleaseTag + "/" + name
}
