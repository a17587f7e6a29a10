package app

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hyperifyio/certmeta/internal/aggregate"
	"github.com/hyperifyio/certmeta/internal/domain"
)

// renderSummary formats records and their statistics as Markdown. Titles
// link to the hosted document when one is known.
func renderSummary(records []domain.Record, st aggregate.Stats, generated time.Time) string {
	var b strings.Builder
	b.WriteString("# Certificate summary\n\n")
	fmt.Fprintf(&b, "Generated %s\n\n", generated.UTC().Format("2006-01-02"))

	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- Total courses: %d\n", st.TotalCourses)
	fmt.Fprintf(&b, "- Unique skills: %d\n", st.UniqueSkills)
	fmt.Fprintf(&b, "- Courses with skills: %.0f%%\n", st.AvgSkillsPerCourse*100)
	fmt.Fprintf(&b, "- Most common skill: %s\n", st.MostCommonSkill)

	writeCounts(&b, "By provider", st.ByProvider)
	writeCounts(&b, "By year", st.ByYear)

	b.WriteString("\n## Certificates\n\n")
	for i, r := range records {
		title := r.Title
		if r.DocumentURL != "" {
			title = "[" + title + "](" + r.DocumentURL + ")"
		}
		fmt.Fprintf(&b, "%d. %s (%s, %s)\n", i+1, title, r.Provider, r.CompletionDate)
		if r.HasSkills() {
			fmt.Fprintf(&b, "   Skills: %s\n", r.SkillsString())
		}
	}
	return b.String()
}

func writeCounts(b *strings.Builder, heading string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(b, "\n### %s\n\n", heading)
	for _, k := range keys {
		fmt.Fprintf(b, "- %s: %d\n", k, counts[k])
	}
}
