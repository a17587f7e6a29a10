package matcher

import (
	"regexp"
	"strings"

	"github.com/hyperifyio/certmeta/internal/domain"
)

var (
	dlaiTitle     = regexp.MustCompile(`(?i)congratulations on completing ([^.!\n]+)[.!\n]`)
	dlaiFileDate  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	dlaiSkillLine = regexp.MustCompile(`(?m)^([A-Z][a-zA-Z \t]+)$`)
)

// DeepLearningAI matches short-course certificates. The completion date
// comes from the filename because the document never prints one, and the
// provider never exposes a certificate id.
type DeepLearningAI struct{}

func (DeepLearningAI) Provider() domain.Provider { return domain.DeepLearningAI }

func (DeepLearningAI) Match(text, filename string) (Result, bool) {
	title, ok := submatch(dlaiTitle, text)
	if !ok || title == "" {
		return Result{}, false
	}
	date := dlaiFileDate.FindString(filename)
	if date == "" {
		return Result{}, false
	}
	var skills []string
	for _, m := range dlaiSkillLine.FindAllStringSubmatch(text, -1) {
		if s := strings.TrimSpace(m[1]); len(s) > 2 {
			skills = append(skills, s)
		}
	}
	return Result{
		Title:          title,
		CompletionDate: date,
		Instructors:    []string{"DeepLearning.AI"},
		Skills:         skills,
	}, true
}
