// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-guide/internal/layout"
	"github.com/jonathan/career-guide/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList appends up to limit items under heading, noting how many were left out.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintAssessment outputs the assessment sent for recommendations.
func (p *Printer) PrintAssessment(req *types.AssessmentRequest) {
	if req == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Education: %s\n", req.EducationLevel)
	fmt.Fprintf(&sb, "Stream:    %s\n", req.Stream)
	fmt.Fprintf(&sb, "Skills:    %s\n", req.Skills)
	fmt.Fprintf(&sb, "Interests: %s", req.Interests)

	p.printBox("CAREER ASSESSMENT", sb.String())
}

// PrintRecommendations outputs a summary of the recommendation bundle.
func (p *Printer) PrintRecommendations(b *types.RecommendationBundle) {
	if b == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Careers: %d  Courses: %d  Roles: %d\n\n", len(b.TopCareers), len(b.Courses), len(b.JobRoles))

	count := min(len(b.TopCareers), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := b.TopCareers[i]
		fmt.Fprintf(&sb, "#%d  %s\n", i+1, c.Title)
		if c.Salary != "" {
			fmt.Fprintf(&sb, "    Salary: %s\n", c.Salary)
		}
	}
	if len(b.TopCareers) > maxItemsToShow {
		fmt.Fprintf(&sb, "... and %d more careers\n", len(b.TopCareers)-maxItemsToShow)
	}

	writeList(&sb, "\nSkills to improve", b.SkillsToImprove, 3)

	p.printBox("CAREER RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs how many entries each profile section holds.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Theme:          %s\n", profile.Theme)
	fmt.Fprintf(&sb, "Education:      %d\n", len(profile.Education))
	fmt.Fprintf(&sb, "Experience:     %d\n", len(profile.Experience))
	fmt.Fprintf(&sb, "Internships:    %d\n", len(profile.Internships))
	fmt.Fprintf(&sb, "Projects:       %d\n", len(profile.Projects))
	fmt.Fprintf(&sb, "Certifications: %d\n", len(profile.Certificates))
	fmt.Fprintf(&sb, "Courses:        %d\n", len(profile.Courses))
	fmt.Fprintf(&sb, "Photo:          %t", profile.ProfilePhoto != "")

	p.printBox("PROFILE", sb.String())
}

var sectionHeadings = func() map[string]bool {
	set := map[string]bool{}
	for _, title := range []string{
		layout.TitleSummary, layout.TitleEducation, layout.TitleExperience, layout.TitleInternships,
		layout.TitleProjects, layout.TitleCertifications, layout.TitleSkills, layout.TitleExtracurricular,
	} {
		set[strings.ToUpper(title)] = true
	}
	return set
}()

// PrintLayout outputs the page count and the section headings of a laid-out resume.
func (p *Printer) PrintLayout(doc *layout.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Author: %s\n", doc.Author)
	fmt.Fprintf(&sb, "Theme:  %s\n", doc.Theme.Name)
	fmt.Fprintf(&sb, "Pages:  %d\n", len(doc.Pages))

	for i, page := range doc.Pages {
		var headings []string
		for _, run := range page.Texts {
			if sectionHeadings[run.Text] {
				headings = append(headings, run.Text)
			}
		}
		writeList(&sb, fmt.Sprintf("\nPage %d", i+1), headings, len(headings))
	}

	p.printBox("RESUME LAYOUT", strings.TrimSuffix(sb.String(), "\n"))
}
