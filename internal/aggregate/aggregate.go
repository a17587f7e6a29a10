package aggregate

import (
	"github.com/hyperifyio/certmeta/internal/domain"
)

// NotAvailable is reported as the most common skill when no record has any.
const NotAvailable = "N/A"

// UnknownYear keys records without a year in the per-year counts.
const UnknownYear = "unknown"

// Stats summarizes a list of records.
type Stats struct {
	TotalCourses int            `yaml:"total_courses" json:"totalCourses"`
	ByYear       map[string]int `yaml:"by_year" json:"byYear"`
	ByProvider   map[string]int `yaml:"by_provider" json:"byProvider"`
	// AvgSkillsPerCourse is the share of records that list any skill, not
	// a mean skill count.
	AvgSkillsPerCourse float64        `yaml:"avg_skills_per_course" json:"avgSkillsPerCourse"`
	UniqueSkills       int            `yaml:"unique_skills" json:"uniqueSkills"`
	MostCommonSkill    string         `yaml:"most_common_skill" json:"mostCommonSkill"`
	CompletionTrend    map[string]int `yaml:"completion_trend" json:"completionTrend"`
}

// Summarize folds records into Stats. Skills are tokenized by splitting the
// joined skills string on ", ".
func Summarize(records []domain.Record) Stats {
	st := Stats{
		TotalCourses:    len(records),
		ByYear:          map[string]int{},
		ByProvider:      map[string]int{},
		MostCommonSkill: NotAvailable,
		CompletionTrend: map[string]int{},
	}
	if len(records) == 0 {
		return st
	}

	withSkills := 0
	counts := map[string]int{}
	var order []string
	for _, r := range records {
		year := r.Year
		if year == "" {
			year = UnknownYear
		}
		st.ByYear[year]++
		st.CompletionTrend[year]++
		st.ByProvider[string(r.Provider)]++

		if !r.HasSkills() {
			continue
		}
		withSkills++
		for _, s := range domain.SplitSkills(r.SkillsString()) {
			if _, seen := counts[s]; !seen {
				order = append(order, s)
			}
			counts[s]++
		}
	}

	st.AvgSkillsPerCourse = float64(withSkills) / float64(len(records))
	st.UniqueSkills = len(counts)
	best := 0
	for _, s := range order {
		if counts[s] > best {
			best = counts[s]
			st.MostCommonSkill = s
		}
	}
	return st
}

// SkillSet returns the distinct skills across records in first-seen order.
func SkillSet(records []domain.Record) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, 16)
	for _, r := range records {
		if !r.HasSkills() {
			continue
		}
		for _, s := range domain.SplitSkills(r.SkillsString()) {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// Course is one line of the course list export.
type Course struct {
	Title    string `yaml:"title" json:"title"`
	Provider string `yaml:"provider" json:"provider"`
	Year     string `yaml:"year" json:"year"`
}

// Courses projects records onto the course list.
func Courses(records []domain.Record) []Course {
	out := make([]Course, 0, len(records))
	for _, r := range records {
		out = append(out, Course{Title: r.Title, Provider: string(r.Provider), Year: r.Year})
	}
	return out
}

// CourseLink pairs a title with its guessed course page.
type CourseLink struct {
	Title     string `yaml:"title" json:"title"`
	CourseURL string `yaml:"course_url" json:"courseUrl"`
}

// CourseURLs lists records that have a course URL.
func CourseURLs(records []domain.Record) []CourseLink {
	out := make([]CourseLink, 0, len(records))
	for _, r := range records {
		if r.CourseURL == "" {
			continue
		}
		out = append(out, CourseLink{Title: r.Title, CourseURL: r.CourseURL})
	}
	return out
}
