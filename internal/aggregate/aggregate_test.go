package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hyperifyio/certmeta/internal/domain"
)

func rec(p domain.Provider, year string, skills ...string) domain.Record {
	return domain.Record{Title: "T " + year, Provider: p, Year: year, Skills: skills}
}

func TestSummarize_MostCommonSkill(t *testing.T) {
	records := []domain.Record{
		rec(domain.LinkedInLearning, "2024", "A"),
		rec(domain.LinkedInLearning, "2024", "B"),
		rec(domain.LinkedInLearning, "2023", "A"),
	}
	st := Summarize(records)
	assert.Equal(t, "A", st.MostCommonSkill)
	assert.Equal(t, 2, st.UniqueSkills)
	assert.Equal(t, 3, st.TotalCourses)
	assert.Equal(t, map[string]int{"2024": 2, "2023": 1}, st.ByYear)
	assert.Equal(t, st.ByYear, st.CompletionTrend)
}

func TestSummarize_NoSkills(t *testing.T) {
	st := Summarize([]domain.Record{rec(domain.Udemy, "2024"), rec(domain.Cybrary, "")})
	assert.Equal(t, NotAvailable, st.MostCommonSkill)
	assert.Equal(t, 0, st.UniqueSkills)
	assert.Zero(t, st.AvgSkillsPerCourse)
	assert.Equal(t, map[string]int{"udemy": 1, "cybrary": 1}, st.ByProvider)
	assert.Equal(t, 1, st.ByYear[UnknownYear])
}

func TestSummarize_SkillPresenceRatio(t *testing.T) {
	records := []domain.Record{
		rec(domain.DeepLearningAI, "2024", "Prompting", "Agents", "RAG"),
		rec(domain.DeepLearningAI, "2024", "Agents"),
		rec(domain.Udemy, "2024"),
	}
	st := Summarize(records)
	assert.InDelta(t, 2.0/3.0, st.AvgSkillsPerCourse, 1e-9)
	assert.Equal(t, "Agents", st.MostCommonSkill)
	assert.Equal(t, 3, st.UniqueSkills)
}

func TestSummarize_TieKeepsFirstSeen(t *testing.T) {
	st := Summarize([]domain.Record{rec(domain.LinkedInLearning, "2024", "Go", "SQL"), rec(domain.LinkedInLearning, "2024", "SQL", "Go")})
	assert.Equal(t, "Go", st.MostCommonSkill)
}

func TestSummarize_Empty(t *testing.T) {
	st := Summarize(nil)
	assert.Equal(t, 0, st.TotalCourses)
	assert.Equal(t, NotAvailable, st.MostCommonSkill)
	assert.Empty(t, st.ByYear)
}

func TestSkillSetCoursesAndURLs(t *testing.T) {
	records := []domain.Record{
		{Title: "Go", Provider: domain.LinkedInLearning, Year: "2024", Skills: []string{"Go", "Testing"}, CourseURL: "https://www.linkedin.com/learning/go"},
		{Title: "Linux", Provider: domain.Cybrary, Year: "2023"},
		{Title: "More Go", Provider: domain.LinkedInLearning, Year: "2024", Skills: []string{"Testing", "Concurrency"}},
	}
	assert.Equal(t, []string{"Go", "Testing", "Concurrency"}, SkillSet(records))
	assert.Equal(t, []Course{
		{Title: "Go", Provider: "linkedinlearning", Year: "2024"},
		{Title: "Linux", Provider: "cybrary", Year: "2023"},
		{Title: "More Go", Provider: "linkedinlearning", Year: "2024"},
	}, Courses(records))
	assert.Equal(t, []CourseLink{{Title: "Go", CourseURL: "https://www.linkedin.com/learning/go"}}, CourseURLs(records))
}
