package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// ContainsAny reports whether s contains any of the keywords verbatim.
func ContainsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// ContainsAnyFold is ContainsAny with case-insensitive matching, used for
// mixed Japanese/English keyword sets.
func ContainsAnyFold(s string, keywords []string) bool {
	lowered := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lowered, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// SplitList splits a delimited multi-value cell on the given separator
// class, dropping empty tokens and trimming the rest.
func SplitList(value string, separators *regexp.Regexp) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range separators.Split(value, -1) {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
