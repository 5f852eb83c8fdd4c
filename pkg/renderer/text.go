package renderer

import (
	"strings"

	"github.com/nikogura/jobmatcher/pkg/report"
)

// Text renders a report for a terminal. It returns "" for a report that
// carries an error indicator.
func Text(rep report.Report) (out string) {
	if rep.HasError() {
		return out
	}

	var b strings.Builder
	b.WriteString(TitleOverview + "\n")
	b.WriteString(strings.Repeat("=", len(TitleOverview)) + "\n")

	for _, section := range Sections(rep) {
		b.WriteString("\n" + section.Title + "\n")
		for _, line := range section.Lines {
			if section.List {
				b.WriteString("  - " + line + "\n")
				continue
			}
			b.WriteString("  " + line + "\n")
		}
	}

	courses := Courses(rep)
	if len(courses) > 0 {
		b.WriteString("\n" + TitleRecommendedCourses + "\n")
		for _, entry := range courses {
			if !entry.IsGroup() {
				b.WriteString("  - " + entry.Text + "\n")
				continue
			}
			b.WriteString("  - " + entry.Skill + "\n")
			for _, course := range entry.Courses {
				b.WriteString("      - " + course + "\n")
			}
		}
	}

	out = b.String()
	return out
}

// Markdown renders a report as a Markdown document. It returns "" for a
// report that carries an error indicator.
func Markdown(rep report.Report) (out string) {
	if rep.HasError() {
		return out
	}

	var b strings.Builder
	b.WriteString("# " + TitleOverview + "\n")

	for _, section := range Sections(rep) {
		b.WriteString("\n## " + section.Title + "\n\n")
		switch {
		case section.Placeholder:
			b.WriteString("_" + section.Lines[0] + "_\n")
		case section.List:
			for _, line := range section.Lines {
				b.WriteString("- " + line + "\n")
			}
		default:
			b.WriteString(section.Lines[0] + "\n")
		}
	}

	courses := Courses(rep)
	if len(courses) > 0 {
		b.WriteString("\n## " + TitleRecommendedCourses + "\n\n")
		for _, entry := range courses {
			if !entry.IsGroup() {
				b.WriteString("- " + entry.Text + "\n")
				continue
			}
			b.WriteString("- **" + entry.Skill + "**\n")
			for _, course := range entry.Courses {
				b.WriteString("  - " + course + "\n")
			}
		}
	}

	out = b.String()
	return out
}
