// Package theme provides resume colour themes and the application colour palettes.
package theme

import (
	"fmt"
	"sort"
)

// RGB is an 8-bit colour triple.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ResumeTheme is the colour pair used when rendering a resume.
type ResumeTheme struct {
	Name    string `json:"name"`
	Primary RGB    `json:"primary"`
	Text    RGB    `json:"text"`
}

// DefaultResumeTheme is used when a profile names no theme or an unknown one.
const DefaultResumeTheme = "Classic Blue"

var resumeThemes = map[string]ResumeTheme{
	"Classic Blue":    {Name: "Classic Blue", Primary: RGB{0, 51, 102}, Text: RGB{0, 0, 0}},
	"Modern Black":    {Name: "Modern Black", Primary: RGB{0, 0, 0}, Text: RGB{30, 30, 30}},
	"Emerald Green":   {Name: "Emerald Green", Primary: RGB{5, 150, 105}, Text: RGB{0, 0, 0}},
	"Royal Purple":    {Name: "Royal Purple", Primary: RGB{124, 58, 237}, Text: RGB{0, 0, 0}},
	"Crimson Red":     {Name: "Crimson Red", Primary: RGB{220, 38, 38}, Text: RGB{0, 0, 0}},
	"Slate Gray":      {Name: "Slate Gray", Primary: RGB{71, 85, 105}, Text: RGB{0, 0, 0}},
	"Ocean Teal":      {Name: "Ocean Teal", Primary: RGB{13, 148, 136}, Text: RGB{0, 0, 0}},
	"Sunset Orange":   {Name: "Sunset Orange", Primary: RGB{234, 88, 12}, Text: RGB{0, 0, 0}},
	"Midnight Indigo": {Name: "Midnight Indigo", Primary: RGB{49, 46, 129}, Text: RGB{0, 0, 0}},
	"Chocolate Brown": {Name: "Chocolate Brown", Primary: RGB{120, 53, 15}, Text: RGB{0, 0, 0}},
}

// Resume looks up a resume theme by name, falling back to Classic Blue.
func Resume(name string) ResumeTheme {
	if t, ok := resumeThemes[name]; ok {
		return t
	}
	return resumeThemes[DefaultResumeTheme]
}

// ResumeThemeNames lists the resume theme names in alphabetical order.
func ResumeThemeNames() []string {
	names := make([]string, 0, len(resumeThemes))
	for name := range resumeThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
