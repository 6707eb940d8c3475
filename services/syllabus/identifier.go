package syllabus

import (
	"regexp"
	"strings"
)

// matches "CODE：Title" with either an ASCII or a full-width colon
var identifierRegex = regexp.MustCompile(`^([^\s：:]+)[：:](.+)$`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ParseCourseIdentifier splits a combined code+title cell into its parts.
// Falls back to splitting on the first whitespace run; a value with no
// whitespace at all is returned as the code with an empty title. It never
// fails.
func ParseCourseIdentifier(value string) (code string, title string) {
	groups := identifierRegex.FindStringSubmatch(value)
	if groups != nil {
		return groups[1], strings.TrimSpace(groups[2])
	}

	trimmed := strings.TrimSpace(value)
	if loc := whitespaceRun.FindStringIndex(trimmed); loc != nil {
		return trimmed[:loc[0]], strings.TrimSpace(trimmed[loc[1]:])
	}

	return trimmed, ""
}
