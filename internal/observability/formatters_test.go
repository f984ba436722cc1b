package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/career-guide/internal/layout"
	"github.com/jonathan/career-guide/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintAssessment(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAssessment(&types.AssessmentRequest{
		EducationLevel: "12th",
		Stream:         "Commerce",
		Skills:         "Accounts",
		Interests:      "Banking",
	})
	output := buf.String()

	assert.Contains(t, output, "CAREER ASSESSMENT")
	assert.Contains(t, output, "Education: 12th")
	assert.Contains(t, output, "Interests: Banking")
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	bundle := &types.RecommendationBundle{
		Analysis:        "Good with numbers.",
		TopCareers:      []types.CareerOption{{Title: "Accountant", Salary: "3-5 LPA"}, {Title: "Bank Clerk"}},
		Courses:         []string{"B.Com"},
		SkillsToImprove: []string{"Tally", "Excel", "English", "GST filing"},
	}

	NewPrinter(&buf).PrintRecommendations(bundle)
	output := buf.String()

	assert.Contains(t, output, "CAREER RECOMMENDATIONS")
	assert.Contains(t, output, "Careers: 2  Courses: 1  Roles: 0")
	assert.Contains(t, output, "#1  Accountant")
	assert.Contains(t, output, "Salary: 3-5 LPA")
	assert.Contains(t, output, "#2  Bank Clerk")
	assert.Contains(t, output, "• Tally")
	assert.NotContains(t, output, "GST filing")
	assert.Contains(t, output, "... and 1 more")
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := types.NewProfile()
	p.AddEducation(types.Education{Level: "10th", Stream: "State board"})
	p.Theme = "Slate Gray"

	NewPrinter(&buf).PrintProfile(p)
	output := buf.String()

	assert.Contains(t, output, "Theme:          Slate Gray")
	assert.Contains(t, output, "Education:      1")
	assert.Contains(t, output, "Photo:          false")
}

func TestPrintLayout(t *testing.T) {
	var buf bytes.Buffer
	p := types.NewProfile()
	p.About = "Eager learner."
	p.AddEducation(types.Education{Level: "Diploma", Stream: "Civil"})

	doc := layout.NewEngine(nil).Layout(p, "Classic Blue", "Ravi Kumar")
	NewPrinter(&buf).PrintLayout(doc)
	output := buf.String()

	assert.Contains(t, output, "RESUME LAYOUT")
	assert.Contains(t, output, "Author: Ravi Kumar")
	assert.Contains(t, output, "Pages:  1")
	assert.Contains(t, output, "• PROFESSIONAL SUMMARY")
	assert.Contains(t, output, "• EDUCATION")
	assert.NotContains(t, output, "• RAVI KUMAR")
}

func TestPrintNil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAssessment(nil)
	p.PrintRecommendations(nil)
	p.PrintProfile(nil)
	p.PrintLayout(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("TITLE", strings.Repeat("ಕ", 80))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}
