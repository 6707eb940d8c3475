package syllabus

import (
	"fmt"
	"sort"
	"strings"
)

// separator between note fragments
const noteSeparator = " / "

// AppendNote joins an addition onto an existing note. A fragment already
// present in the note is not appended again, which makes the annotation
// passes idempotent.
func AppendNote(existing, addition string) string {
	if addition == "" {
		return existing
	}
	if strings.Contains(existing, addition) {
		return existing
	}
	if existing == "" {
		return addition
	}
	return existing + noteSeparator + addition
}

// Annotate runs the cross-record annotation passes. It needs the complete
// batch: alias detection cannot know the full title set for a course code
// until every document has been parsed.
func Annotate(records []TextbookRecord) {
	AnnotateAliases(records)
	AnnotateFacultyScope(records)
}

// AnnotateAliases flags course codes that appear under more than one
// title, noting the other titles on every affected record.
func AnnotateAliases(records []TextbookRecord) {
	titlesByCode := map[string]map[string]bool{}
	for _, record := range records {
		if record.CourseCode == "" {
			continue
		}
		if titlesByCode[record.CourseCode] == nil {
			titlesByCode[record.CourseCode] = map[string]bool{}
		}
		titlesByCode[record.CourseCode][record.CourseTitle] = true
	}

	for i := range records {
		record := &records[i]
		if record.CourseCode == "" {
			continue
		}
		aliasTitles := titlesByCode[record.CourseCode]
		if len(aliasTitles) <= 1 {
			continue
		}

		var otherTitles []string
		for title := range aliasTitles {
			if title != record.CourseTitle {
				otherTitles = append(otherTitles, title)
			}
		}
		if len(otherTitles) == 0 {
			continue
		}
		sort.Strings(otherTitles)
		record.Note = AppendNote(record.Note, fmt.Sprintf("別名称: %s", strings.Join(otherTitles, " / ")))
	}
}

// AnnotateFacultyScope notes records that span several faculties and marks
// auto-classified general-education records.
func AnnotateFacultyScope(records []TextbookRecord) {
	for i := range records {
		record := &records[i]

		uniqueFaculties := distinct(record.FacultyNames)
		sort.Strings(uniqueFaculties)
		if len(uniqueFaculties) > 1 {
			record.Note = AppendNote(record.Note, fmt.Sprintf("複数学部向け: %s", strings.Join(uniqueFaculties, ", ")))
		}
		if record.CourseCategory == CategoryGeneralEducation {
			record.Note = AppendNote(record.Note, "教養・共通科目 (自動判定)")
		}
	}
}
