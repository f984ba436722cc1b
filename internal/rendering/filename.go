package rendering

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName returns the download name for author's resume, with every run of
// whitespace replaced by an underscore.
func FileName(author string) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(author), "_")
	if name == "" {
		name = "My"
	}
	return name + "_Resume.pdf"
}
