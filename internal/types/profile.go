// Package types provides type definitions for structured data used throughout the career-guide system.
package types

import "strings"

// Education is a single schooling record.
type Education struct {
	Level       string `json:"level" validate:"required"`
	Stream      string `json:"stream" validate:"required"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// Experience is a professional role.
type Experience struct {
	Role        string `json:"role" validate:"required"`
	Company     string `json:"company" validate:"required"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Internship is a time-boxed training role.
type Internship struct {
	Role        string `json:"role" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Project describes something the user built.
type Project struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	// Link is free text; "github.com/user/repo" without a scheme is allowed.
	Link         string   `json:"link,omitempty"`
}

// Certification is an earned certificate.
type Certification struct {
	Name   string `json:"name" validate:"required"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// Course is a completed course.
type Course struct {
	Name        string `json:"name" validate:"required"`
	Institution string `json:"institution"`
	Date        string `json:"date"`
}

// SocialProfile is a link to an external profile (LinkedIn, GitHub, ...).
type SocialProfile struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required"`
}

// Contact holds the contact block shown under the resume header.
type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

// PersonalDetails holds personal information that is edited but not rendered.
type PersonalDetails struct {
	DOB        string `json:"dob"`
	Gender     string `json:"gender"`
	FatherName string `json:"fatherName"`
	MotherName string `json:"motherName"`
}

// Profile is the user-editable resume data.
// JSON field names match the stored profile blobs so existing data round-trips.
type Profile struct {
	About           string          `json:"about"`
	Education       []Education     `json:"education" validate:"dive"`
	Experience      []Experience    `json:"experience" validate:"dive"`
	Internships     []Internship    `json:"internships" validate:"dive"`
	Projects        []Project       `json:"projects" validate:"dive"`
	TechnicalSkills []string        `json:"technicalSkills"`
	Skills          []string        `json:"skills"`
	SocialProfiles  []SocialProfile `json:"socialProfiles" validate:"dive"`
	Accomplishments []string        `json:"accomplishments"`
	Contact         Contact         `json:"contact"`
	Languages       []string        `json:"languages"`
	Personal        PersonalDetails `json:"personal"`
	Certificates    []Certification `json:"certificates" validate:"dive"`
	Courses         []Course        `json:"courses" validate:"dive"`
	Extracurricular []string        `json:"extracurricular"`
	Workshops       []string        `json:"workshops"`
	Conferences     []string        `json:"conferences"`
	Theme           string          `json:"theme,omitempty"`
	ProfilePhoto    string          `json:"profilePhoto,omitempty"`
}

// NewProfile returns a profile with every list field initialised to empty.
func NewProfile() *Profile {
	p := &Profile{}
	p.Normalize()
	return p
}

// Normalize replaces nil lists with empty ones and drops blank entries from
// the flat string lists. It is applied after decoding stored or submitted data.
func (p *Profile) Normalize() {
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Internships == nil {
		p.Internships = []Internship{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	for i := range p.Projects {
		p.Projects[i].Technologies = compact(p.Projects[i].Technologies)
	}
	if p.SocialProfiles == nil {
		p.SocialProfiles = []SocialProfile{}
	}
	if p.Certificates == nil {
		p.Certificates = []Certification{}
	}
	if p.Courses == nil {
		p.Courses = []Course{}
	}
	p.TechnicalSkills = compact(p.TechnicalSkills)
	p.Skills = compact(p.Skills)
	p.Accomplishments = compact(p.Accomplishments)
	p.Languages = compact(p.Languages)
	p.Extracurricular = compact(p.Extracurricular)
	p.Workshops = compact(p.Workshops)
	p.Conferences = compact(p.Conferences)
}

// ParseList splits a comma-separated input string into a trimmed list.
// Empty items are dropped. This is an input convenience only; lists are
// always stored as slices.
func ParseList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// AddEducation appends an education record.
func (p *Profile) AddEducation(e Education) { p.Education = append(p.Education, e) }

// AddExperience appends an experience record.
func (p *Profile) AddExperience(e Experience) { p.Experience = append(p.Experience, e) }

// AddInternship appends an internship record.
func (p *Profile) AddInternship(i Internship) { p.Internships = append(p.Internships, i) }

// AddProject appends a project record.
func (p *Profile) AddProject(pr Project) { p.Projects = append(p.Projects, pr) }

// AddCertification appends a certificate record.
func (p *Profile) AddCertification(c Certification) { p.Certificates = append(p.Certificates, c) }

// AddCourse appends a course record.
func (p *Profile) AddCourse(c Course) { p.Courses = append(p.Courses, c) }

// AddSocialProfile appends a social profile link.
func (p *Profile) AddSocialProfile(s SocialProfile) {
	p.SocialProfiles = append(p.SocialProfiles, s)
}

// RemoveEducationAt removes the education record at index i.
func (p *Profile) RemoveEducationAt(i int) bool { return removeAt(&p.Education, i) }

// RemoveExperienceAt removes the experience record at index i.
func (p *Profile) RemoveExperienceAt(i int) bool { return removeAt(&p.Experience, i) }

// RemoveInternshipAt removes the internship record at index i.
func (p *Profile) RemoveInternshipAt(i int) bool { return removeAt(&p.Internships, i) }

// RemoveProjectAt removes the project record at index i.
func (p *Profile) RemoveProjectAt(i int) bool { return removeAt(&p.Projects, i) }

// RemoveCertificationAt removes the certificate record at index i.
func (p *Profile) RemoveCertificationAt(i int) bool { return removeAt(&p.Certificates, i) }

// RemoveCourseAt removes the course record at index i.
func (p *Profile) RemoveCourseAt(i int) bool { return removeAt(&p.Courses, i) }

// RemoveSocialProfileAt removes the social profile at index i.
func (p *Profile) RemoveSocialProfileAt(i int) bool { return removeAt(&p.SocialProfiles, i) }

// removeAt deletes index i from the slice, preserving order.
// Returns false when i is out of range.
func removeAt[T any](s *[]T, i int) bool {
	if i < 0 || i >= len(*s) {
		return false
	}
	*s = append((*s)[:i], (*s)[i+1:]...)
	return true
}
