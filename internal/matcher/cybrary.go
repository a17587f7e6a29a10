package matcher

import (
	"regexp"
	"strings"

	"github.com/hyperifyio/certmeta/internal/domain"
)

const monthNames = `(?:January|February|March|April|May|June|July|August|September|October|November|December)`

var (
	cybraryTitle = regexp.MustCompile(`(?is)provided by Cybrary in\s+(.+?)(?:\n|Date)`)
	// Normalization collapses doubled digits, so "11/22/2024" may arrive as
	// "1/2/2024" and "10:00AM" as "10:0AM".
	cybraryDate = regexp.MustCompile(`(` + monthNames + ` \d{1,2}, \d{4} \d{1,2}:\d{1,2}[AP]M UTC|\d{1,2}/\d{1,2}/\d{4})`)
	cybraryID   = regexp.MustCompile(`C-([a-f0-9]{8}-[a-f0-9]{6})`)

	cybraryPrepassTitle = regexp.MustCompile(`(?is)provided by Cybrary in\s+(.+?)(?:\n|$)`)
	cybraryPrepassDate  = regexp.MustCompile(`(?:Date of Completion\s+)?(\w+\s+\d{1,2},?\s+\d{4}|\d{1,2}/\d{1,2}/\d{4})`)
)

// Cybrary matches "... provided by Cybrary in <title> Date ..." layouts. The
// certificate id is required: a document without one yields no record.
type Cybrary struct{}

func (Cybrary) Provider() domain.Provider { return domain.Cybrary }

func (Cybrary) Match(text, _ string) (Result, bool) {
	title, ok := submatch(cybraryTitle, text)
	if !ok || title == "" {
		return Result{}, false
	}
	date, ok := submatch(cybraryDate, text)
	if !ok {
		return Result{}, false
	}
	id, ok := submatch(cybraryID, text)
	if !ok {
		return Result{}, false
	}
	return Result{Title: title, CompletionDate: date, CertificateID: id}, true
}

func (Cybrary) TitleDate(firstPage string) (string, string, bool) {
	title, ok := submatch(cybraryPrepassTitle, firstPage)
	if !ok || title == "" {
		return "", "", false
	}
	date, ok := submatch(cybraryPrepassDate, firstPage)
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(title), date, true
}
