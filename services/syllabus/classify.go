package syllabus

import (
	"fmt"
	"sort"
	"strings"

	"syllabus-harvester/lib/textutil"
)

const (
	CategoryGeneralEducation = "general-education"
	CategoryFacultyCourse    = "faculty-course"
)

const (
	TagMultiFaculty         = "multi-faculty"
	TagInternationalStudent = "international-student"
)

var generalFacultyKeywords = []string{
	"共通教育",
	"教養教育",
	"全学共通",
	"基盤教育",
	"汎用教育",
	"General Education",
	"教養科目",
	"共通科目",
}

var generalTitleKeywords = []string{
	"教養",
	"共通科目",
	"General Education",
	"Liberal Arts",
}

var internationalKeywords = []string{
	"留学生",
	"International Students",
	"for International Students",
	"Non-Japanese",
	"外国人",
}

// categoryRules is evaluated top to bottom; the first rule whose predicate
// matches decides the category.
type categoryRule struct {
	name     string
	matches  func(faculties []string, title string) bool
	category string
}

var categoryRules = []categoryRule{
	{
		name: "no-faculties",
		matches: func(faculties []string, _ string) bool {
			return len(faculties) == 0
		},
		category: CategoryGeneralEducation,
	},
	{
		name: "general-faculty-keyword",
		matches: func(faculties []string, _ string) bool {
			for _, faculty := range faculties {
				if textutil.ContainsAny(faculty, generalFacultyKeywords) {
					return true
				}
			}
			return false
		},
		category: CategoryGeneralEducation,
	},
	{
		name: "three-distinct-faculties",
		matches: func(faculties []string, _ string) bool {
			return len(distinct(faculties)) >= 3
		},
		category: CategoryGeneralEducation,
	},
	{
		name: "general-title-keyword",
		matches: func(_ []string, title string) bool {
			return textutil.ContainsAny(title, generalTitleKeywords)
		},
		category: CategoryGeneralEducation,
	},
}

// DetermineCourseCategory classifies a course as general-education or a
// faculty course from its faculty list and title.
func DetermineCourseCategory(faculties []string, courseTitle string) string {
	var normalized []string
	for _, f := range faculties {
		f = strings.TrimSpace(f)
		if f != "" {
			normalized = append(normalized, f)
		}
	}

	for _, rule := range categoryRules {
		if rule.matches(normalized, courseTitle) {
			return rule.category
		}
	}
	return CategoryFacultyCourse
}

// DetectInternationalCourse reports whether the text marks a course aimed
// at international students.
func DetectInternationalCourse(text string) bool {
	return textutil.ContainsAnyFold(text, internationalKeywords)
}

// languageRules maps free-text instruction-language values onto a closed
// tag set, checked in order.
var languageRules = []struct {
	keywords []string
	tag      string
}{
	{[]string{"english", "英語"}, "english"},
	{[]string{"japanese", "日本語"}, "japanese"},
	{[]string{"chinese", "中国語"}, "chinese"},
	{[]string{"korean", "韓国語"}, "korean"},
	{[]string{"french", "フランス語"}, "french"},
	{[]string{"german", "ドイツ語"}, "german"},
}

// NormalizeLanguageTag returns the canonical language tag for a free-text
// instruction-language value, or "" if none of the known languages match.
func NormalizeLanguageTag(raw string) string {
	if raw == "" {
		return ""
	}
	for _, rule := range languageRules {
		if textutil.ContainsAnyFold(raw, rule.keywords) {
			return rule.tag
		}
	}
	return ""
}

// DeriveTags computes the sorted tag set for a course. Sorting makes the
// output independent of map iteration order.
func DeriveTags(category string, faculties []string, courseTitle, instructionLanguage string) []string {
	tags := map[string]bool{category: true}

	if len(distinct(faculties)) > 1 && category != CategoryGeneralEducation {
		tags[TagMultiFaculty] = true
	}
	if DetectInternationalCourse(courseTitle) {
		tags[TagInternationalStudent] = true
	}
	if lang := NormalizeLanguageTag(instructionLanguage); lang != "" {
		tags[fmt.Sprintf("lang:%s", lang)] = true
	}

	out := make([]string, 0, len(tags))
	for tag := range tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func distinct(values []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
