package renderer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nikogura/jobmatcher/pkg/report"
)

// Section titles in display order.
const (
	TitleCurrentSkills             = "Current Skills"
	TitleMissingSkills             = "Missing Skills"
	TitleRecommendedCertifications = "Recommended Certifications"
	TitleEffortLevel               = "Effort Level"
	TitleSummaryAdvice             = "Summary Advice"
	TitleJobsYouCanApplyFor        = "Jobs You Can Apply For"
	TitleAspirationalRoles         = "Aspirational Roles"
	TitleMatchPercentage           = "Match Percentage"
	TitleStrongCVPoints            = "Strong CV Points"
	TitleWeakCVPoints              = "Weak CV Points"
	TitleCVSuggestions             = "CV Suggestions"
	TitleMarketTrendAdvice         = "Market Trend Advice"
	TitleRecommendedCourses        = "Recommended Courses"
	TitleOverview                  = "Results Overview"
)

// Section is one rendered block of the report.
type Section struct {
	Title string
	// Lines are list items when List is set, otherwise a single paragraph.
	Lines []string
	List  bool
	// Placeholder marks Lines[0] as filler text for missing content.
	Placeholder bool
}

// CourseEntry is one recommended course line: either plain Text or a
// Skill heading with its Courses.
type CourseEntry struct {
	Text    string
	Skill   string
	Courses []string
}

// IsGroup reports whether the entry is a skill with nested courses.
func (c CourseEntry) IsGroup() (group bool) {
	group = c.Skill != ""
	return group
}

type sectionSpec struct {
	title string
	value func(rep report.Report) report.Value
	// cvOnly sections appear only when the service analysed a CV.
	cvOnly bool
}

func sectionSpecs() (specs []sectionSpec) {
	specs = []sectionSpec{
		{title: TitleCurrentSkills, value: func(r report.Report) report.Value { return r.CurrentSkills }},
		{title: TitleMissingSkills, value: func(r report.Report) report.Value { return r.MissingSkills }},
		{title: TitleRecommendedCertifications, value: func(r report.Report) report.Value { return r.RecommendedCertifications }},
		{title: TitleEffortLevel, value: func(r report.Report) report.Value { return r.EffortLevel }},
		{title: TitleSummaryAdvice, value: func(r report.Report) report.Value { return r.SummaryAdvice }},
		{title: TitleJobsYouCanApplyFor, value: func(r report.Report) report.Value { return r.JobRolesYouCanApplyFor }},
		{title: TitleAspirationalRoles, value: func(r report.Report) report.Value { return r.JobRolesYouDesire }},
		{title: TitleMatchPercentage, value: matchPercentage},
		{title: TitleStrongCVPoints, value: func(r report.Report) report.Value { return r.CVStrongPoints }, cvOnly: true},
		{title: TitleWeakCVPoints, value: func(r report.Report) report.Value { return r.CVWeakPoints }, cvOnly: true},
		{title: TitleCVSuggestions, value: func(r report.Report) report.Value { return r.CVImprovementSuggestions }, cvOnly: true},
		{title: TitleMarketTrendAdvice, value: func(r report.Report) report.Value { return r.MarketTrendAdvice }},
	}
	return specs
}

// Sections builds the display sections for a report, in order. A report
// carrying an error indicator yields no sections.
func Sections(rep report.Report) (sections []Section) {
	if rep.HasError() {
		return sections
	}

	lower := cases.Lower(language.English)

	for _, spec := range sectionSpecs() {
		if spec.cvOnly && !rep.ShowsCV() {
			continue
		}

		v := spec.value(rep)
		label := lower.String(spec.title)

		switch v.Kind {
		case report.KindList:
			lines := listLines(v.Items)
			if len(lines) == 0 {
				sections = append(sections, Section{
					Title:       spec.title,
					Lines:       []string{"No " + label + " identified yet."},
					Placeholder: true,
				})
				continue
			}
			sections = append(sections, Section{Title: spec.title, Lines: lines, List: true})

		case report.KindString, report.KindNumber:
			if !v.Truthy() {
				sections = append(sections, Section{
					Title:       spec.title,
					Lines:       []string{"No " + label + " provided."},
					Placeholder: true,
				})
				continue
			}
			sections = append(sections, Section{Title: spec.title, Lines: []string{v.Scalar()}})
		}
	}

	return sections
}

// Courses returns the renderable recommended course entries. Entries that
// are neither text nor a skill with a course list are skipped.
func Courses(rep report.Report) (entries []CourseEntry) {
	if rep.HasError() || rep.RecommendedCourses.Kind != report.KindList {
		return entries
	}

	for _, item := range rep.RecommendedCourses.Items {
		switch {
		case item.Kind == report.KindString:
			entries = append(entries, CourseEntry{Text: item.Text})
		case item.Kind == report.KindObject && item.MissingSkill != "" && item.HasCourses:
			entries = append(entries, CourseEntry{Skill: item.MissingSkill, Courses: item.Courses})
		}
	}

	return entries
}

// listLines renders list items; items with no display form are dropped.
func listLines(items []report.Item) (lines []string) {
	for _, item := range items {
		switch item.Kind {
		case report.KindString, report.KindNumber:
			if item.Text != "" {
				lines = append(lines, item.Text)
			}
		case report.KindObject:
			if item.Name == "" {
				continue
			}
			line := item.Name
			if item.Provider != "" {
				line += " (" + item.Provider + ")"
			}
			lines = append(lines, line)
		}
	}
	return lines
}

// matchPercentage always yields a string section, "0%" when absent.
func matchPercentage(rep report.Report) (v report.Value) {
	pct := rep.PercentageMatch

	var text string
	switch pct.Kind {
	case report.KindString, report.KindNumber, report.KindBool:
		text = pct.Scalar()
	case report.KindList:
		parts := make([]string, 0, len(pct.Items))
		for _, item := range pct.Items {
			parts = append(parts, item.Text)
		}
		text = strings.Join(parts, ",")
	case report.KindObject:
		text = pct.Raw
	default:
		text = "0"
	}

	v = report.Value{Kind: report.KindString, Str: text + "%"}
	return v
}
