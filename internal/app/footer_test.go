package app

import (
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/certmeta/internal/aggregate"
	"github.com/hyperifyio/certmeta/internal/domain"
)

func TestAppendRunFooter_AppendsDeterministicFooter(t *testing.T) {
	base := "# Certificate summary\n"
	meta := manifestMeta{Version: "1.0.0", Commit: "abc123", Providers: []string{"udemy", "cybrary"}, DocumentCount: 3, Staging: true}
	out := appendRunFooter(base, meta)
	if !strings.Contains(out, "Reproducibility:") {
		t.Fatalf("expected footer marker present; got:\n%s", out)
	}
	for _, want := range []string{"version=1.0.0", "commit=abc123", "providers=udemy,cybrary", "documents=3", "staging=true", "dry_run=false"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in footer:\n%s", want, out)
		}
	}
	if appendRunFooter(base, meta) != out {
		t.Fatalf("footer must be deterministic")
	}
}

func TestRenderSummary_ListsStatsAndLinks(t *testing.T) {
	records := []domain.Record{
		{Title: "Linux", CompletionDate: "01/02/2023", Year: "2023", Provider: domain.Cybrary, DocumentURL: "https://example.com/l.pdf"},
		{Title: "Go", CompletionDate: "May 6, 2024", Year: "2024", Provider: domain.LinkedInLearning, Skills: []string{"Go"}},
	}
	out := renderSummary(records, aggregate.Summarize(records), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	for _, want := range []string{
		"Generated 2024-06-01",
		"- Total courses: 2",
		"- Courses with skills: 50%",
		"- Most common skill: Go",
		"### By provider\n\n- cybrary: 1\n- linkedinlearning: 1\n",
		"1. [Linux](https://example.com/l.pdf) (cybrary, 01/02/2023)",
		"2. Go (linkedinlearning, May 6, 2024)\n   Skills: Go\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
