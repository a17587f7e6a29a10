package matcher

import (
	"regexp"
	"strings"

	"github.com/hyperifyio/certmeta/internal/domain"
)

var (
	udemyTitleDate = regexp.MustCompile(`(?is)completed the (.+?)(?: online course)? on (.+?)(?:Instructor|Certificate|UC-)`)
	udemyCertNo    = regexp.MustCompile(`Certificate no\. (UC-[A-Za-z0-9]+)`)
	udemyCertURL   = regexp.MustCompile(`Certificate url ude\.my/(UC-[A-Za-z0-9]+)`)
	udemyInstr     = regexp.MustCompile(`(?i)Instructor: (.+?)(?:\n|$)`)

	udemyPrepassTitle = regexp.MustCompile(`(?i)completed the (.*?)(?: online course)? on`)
	udemyPrepassDate  = regexp.MustCompile(`on (\w+\s+\d{1,2},\s+\d{4})`)
)

// Udemy matches "This is to certify that X successfully completed the
// <title> online course on <date> ... Certificate no. UC-..." layouts.
// Udemy certificates never list skills.
type Udemy struct{}

func (Udemy) Provider() domain.Provider { return domain.Udemy }

func (Udemy) Match(text, _ string) (Result, bool) {
	m := udemyTitleDate.FindStringSubmatch(text)
	if m == nil {
		return Result{}, false
	}
	res := Result{Title: strings.TrimSpace(m[1]), CompletionDate: strings.TrimSpace(m[2])}
	if res.Title == "" || res.CompletionDate == "" {
		return Result{}, false
	}
	if id, ok := submatch(udemyCertNo, text); ok {
		res.CertificateID = id
	} else if id, ok := submatch(udemyCertURL, text); ok {
		res.CertificateID = id
	}
	if who, ok := submatch(udemyInstr, text); ok && who != "" {
		res.Instructors = []string{who}
	}
	return res, true
}

func (Udemy) TitleDate(firstPage string) (string, string, bool) {
	title, ok := submatch(udemyPrepassTitle, firstPage)
	if !ok || title == "" {
		return "", "", false
	}
	date, ok := submatch(udemyPrepassDate, firstPage)
	if !ok {
		return "", "", false
	}
	return title, date, true
}
