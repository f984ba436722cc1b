package layout

import (
	"log"
	"strings"

	"github.com/jonathan/career-guide/internal/theme"
	"github.com/jonathan/career-guide/internal/types"
)

// Section titles in render order.
const (
	TitleSummary         = "Professional Summary"
	TitleEducation       = "Education"
	TitleExperience      = "Professional Experience"
	TitleInternships     = "Internships"
	TitleProjects        = "Projects"
	TitleCertifications  = "Certifications & Courses"
	TitleSkills          = "Skills & Languages"
	TitleExtracurricular = "Extracurricular Activities"
)

const (
	nameSize    = 22.0
	sectionSize = 12.0
	entrySize   = 11.0
	bodySize    = 10.0
	detailSize  = 9.0

	lineHeight = 5.0

	// entryReserve keeps an entry's heading block off the bottom of a page.
	entryReserve = 10.0

	skillLabelWidth = 25.0
	skillWrapWidth  = PageWidth - Margin - 40
)

var (
	companyGray = theme.RGB{R: 80, G: 80, B: 80}
	detailGray  = theme.RGB{R: 100, G: 100, B: 100}
)

// Engine lays out profiles. It is safe for concurrent use when its Measurer is.
type Engine struct {
	measurer Measurer
}

// NewEngine creates an Engine. A nil measurer selects the Helvetica metrics.
func NewEngine(m Measurer) *Engine {
	if m == nil {
		m = NewFontMeasurer()
	}
	return &Engine{measurer: m}
}

// Layout places profile onto pages using the named resume theme (unknown
// names fall back to the default theme). author is printed upper-cased as
// the header. Sections with no content are omitted entirely.
func (e *Engine) Layout(profile *types.Profile, themeName, author string) *Document {
	if profile == nil {
		profile = types.NewProfile()
	}
	doc := &Document{
		Author: author,
		Theme:  theme.Resume(themeName),
		Width:  PageWidth,
		Height: PageHeight,
	}
	c := &cursor{doc: doc, m: e.measurer, theme: doc.Theme}
	c.newPage()

	c.header(profile, author)
	c.summary(profile)
	c.education(profile)
	c.experience(profile)
	c.internships(profile)
	c.projects(profile)
	c.certifications(profile)
	c.skills(profile)
	c.extracurricular(profile)

	return doc
}

// cursor tracks the current page and vertical position.
type cursor struct {
	doc   *Document
	page  *Page
	m     Measurer
	theme theme.ResumeTheme
	y     float64
}

func (c *cursor) newPage() {
	c.page = &Page{}
	c.doc.Pages = append(c.doc.Pages, c.page)
	c.y = TopMargin
}

// ensure starts a new page when the cursor plus h would pass the bottom margin.
func (c *cursor) ensure(h float64) {
	if c.y+h > BottomMargin {
		c.newPage()
	}
}

func (c *cursor) text(x float64, s string, size float64, style FontStyle, color theme.RGB, align Align) {
	c.ensure(0)
	c.page.Texts = append(c.page.Texts, TextRun{
		X: x, Y: c.y, Text: s, Size: size, Style: style, Color: color, Align: align,
	})
}

// lines wraps s to width and places one line per lineHeight starting at the
// cursor, leaving the cursor below the last line.
func (c *cursor) lines(x float64, s string, size float64, style FontStyle, color theme.RGB, width float64, align Align) int {
	wrapped := Wrap(c.m, s, style, size, width)
	for _, line := range wrapped {
		if line != "" {
			c.text(x, line, size, style, color, align)
		}
		c.y += lineHeight
	}
	return len(wrapped)
}

func (c *cursor) section(title string) {
	c.y += 5
	c.ensure(0)
	c.text(Margin, strings.ToUpper(title), sectionSize, StyleBold, c.theme.Primary, AlignLeft)
	c.y += sectionSize/2 + 2
	c.y--
	c.page.Rules = append(c.page.Rules, Rule{
		X1: Margin, Y1: c.y, X2: PageWidth - Margin, Y2: c.y,
		Width: 0.5, Color: c.theme.Primary,
	})
	c.y += 6
}

func (c *cursor) header(p *types.Profile, author string) {
	c.text(PageWidth/2, strings.ToUpper(author), nameSize, StyleBold, c.theme.Primary, AlignCenter)
	c.y += nameSize/2 + 2
	c.y += 2

	if p.ProfilePhoto != "" {
		data, format, err := DecodePhoto(p.ProfilePhoto)
		if err != nil {
			log.Printf("[RESUME] Skipping profile photo: %v", err)
		} else {
			c.doc.Pages[0].Images = append(c.doc.Pages[0].Images, Image{
				X: PhotoX, Y: PhotoY, W: PhotoSize, H: PhotoSize, Format: format, Data: data,
			})
		}
	}

	if contact := joinPresent(" | ", p.Contact.Phone, p.Contact.Email, p.Contact.Address); contact != "" {
		c.text(PageWidth/2, contact, bodySize, StyleNormal, c.theme.Text, AlignCenter)
		c.y += 6
	}

	if len(p.SocialProfiles) == 0 {
		c.y += 5
		return
	}
	links := make([]string, 0, len(p.SocialProfiles))
	for _, s := range p.SocialProfiles {
		links = append(links, s.Platform+": "+s.URL)
	}
	c.lines(PageWidth/2, strings.Join(links, " | "), bodySize, StyleNormal, c.theme.Primary, PrintableWidth, AlignCenter)
	c.y += 5
}

func (c *cursor) summary(p *types.Profile) {
	if strings.TrimSpace(p.About) == "" {
		return
	}
	c.section(TitleSummary)
	c.body(p.About)
	c.y += 5
}

func (c *cursor) body(s string) {
	c.lines(Margin, s, bodySize, StyleNormal, c.theme.Text, PrintableWidth, AlignLeft)
}

func (c *cursor) education(p *types.Profile) {
	if len(p.Education) == 0 {
		return
	}
	c.section(TitleEducation)
	for _, edu := range p.Education {
		c.ensure(lineHeight)
		c.text(Margin, joinPresent(" - ", edu.Level, edu.Stream), entrySize, StyleBold, c.theme.Text, AlignLeft)
		c.y += lineHeight
		if detail := joinPresent(" | ", edu.Institution, edu.Year); detail != "" {
			c.text(Margin, detail, bodySize, StyleNormal, c.theme.Text, AlignLeft)
		}
		c.y += 7
	}
}

// role places the shared heading block of experience and internship entries.
func (c *cursor) role(role, company, when, description string) {
	c.ensure(entryReserve)
	c.text(Margin, role, entrySize, StyleBold, c.theme.Text, AlignLeft)
	if when != "" {
		c.text(PageWidth-Margin, when, bodySize, StyleNormal, c.theme.Text, AlignRight)
	}
	c.y += lineHeight
	c.text(Margin, company, bodySize, StyleBold, companyGray, AlignLeft)
	c.y += lineHeight
	if strings.TrimSpace(description) != "" {
		c.body(description)
	}
	c.y += 4
}

func (c *cursor) experience(p *types.Profile) {
	if len(p.Experience) == 0 {
		return
	}
	c.section(TitleExperience)
	for _, exp := range p.Experience {
		c.role(exp.Role, exp.Company, joinPresent(" - ", exp.StartDate, exp.EndDate), exp.Description)
	}
}

func (c *cursor) internships(p *types.Profile) {
	if len(p.Internships) == 0 {
		return
	}
	c.section(TitleInternships)
	for _, in := range p.Internships {
		c.role(in.Role, in.Company, in.Duration, in.Description)
	}
}

func (c *cursor) projects(p *types.Profile) {
	if len(p.Projects) == 0 {
		return
	}
	c.section(TitleProjects)
	for _, proj := range p.Projects {
		c.ensure(entryReserve)
		title := proj.Title
		if proj.Link != "" {
			title += " (" + proj.Link + ")"
		}
		c.lines(Margin, title, entrySize, StyleBold, c.theme.Text, PrintableWidth, AlignLeft)
		if len(proj.Technologies) > 0 {
			c.lines(Margin, "Tech: "+strings.Join(proj.Technologies, ", "), detailSize, StyleItalic, detailGray, PrintableWidth, AlignLeft)
		}
		if strings.TrimSpace(proj.Description) != "" {
			c.body(proj.Description)
		}
		c.y += 3
	}
}

func (c *cursor) certifications(p *types.Profile) {
	if len(p.Certificates) == 0 && len(p.Courses) == 0 {
		return
	}
	c.section(TitleCertifications)
	for _, cert := range p.Certificates {
		c.body(bullet(cert.Name, cert.Issuer, cert.Date))
	}
	for _, course := range p.Courses {
		c.body(bullet(course.Name, course.Institution, course.Date))
	}
	c.y += 3
}

func (c *cursor) skills(p *types.Profile) {
	if len(p.TechnicalSkills) == 0 && len(p.Skills) == 0 && len(p.Languages) == 0 {
		return
	}
	c.section(TitleSkills)
	c.skillRow("Technical:", p.TechnicalSkills)
	c.skillRow("Soft Skills:", p.Skills)
	c.skillRow("Languages:", p.Languages)
	c.y += 3
}

func (c *cursor) skillRow(label string, items []string) {
	if len(items) == 0 {
		return
	}
	c.ensure(0)
	c.text(Margin, label, bodySize, StyleBold, c.theme.Text, AlignLeft)
	c.lines(Margin+skillLabelWidth, strings.Join(items, ", "), bodySize, StyleNormal, c.theme.Text, skillWrapWidth, AlignLeft)
	c.y += 2
}

func (c *cursor) extracurricular(p *types.Profile) {
	if len(p.Extracurricular) == 0 {
		return
	}
	c.section(TitleExtracurricular)
	c.body(strings.Join(p.Extracurricular, ", "))
	c.y += 5
}

func bullet(name, from, date string) string {
	s := "• " + name
	if from != "" {
		s += " - " + from
	}
	if date != "" {
		s += " (" + date + ")"
	}
	return s
}

func joinPresent(sep string, parts ...string) string {
	present := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, sep)
}
