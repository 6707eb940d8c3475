package syllabus

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const untitledCourse = "Untitled Course"

// BuildRecords parses one syllabus document into textbook records. The
// category and base tag set depend only on the course metadata, so they
// are computed once per document; a textbook whose note targets
// international students gets an extra tag on top of them.
func BuildRecords(doc *goquery.Document) ([]TextbookRecord, error) {
	metadata, err := ExtractCourseMetadata(doc)
	if err != nil {
		return nil, err
	}
	textbooks := ExtractTextbooks(doc)

	title := resolveCourseTitle(metadata)
	category := DetermineCourseCategory(metadata.Faculties, title)
	baseTags := DeriveTags(category, metadata.Faculties, title, metadata.InstructionLanguage)

	var records []TextbookRecord
	for _, textbook := range textbooks {
		tags := baseTags
		if DetectInternationalCourse(textbook.Note) {
			tags = mergeTag(baseTags, TagInternationalStudent)
		}

		records = append(records, TextbookRecord{
			TextbookTitle:        textbook.Title,
			TextbookTitleReading: textbook.Reading,
			Authors:              textbook.Authors,
			Publisher:            textbook.Publisher,
			ISBN:                 textbook.ISBN,
			Note:                 textbook.Note,
			CourseTitle:          title,
			CourseCode:           metadata.CourseCode,
			AcademicYear:         metadata.AcademicYear,
			Term:                 metadata.Term,
			Schedule:             metadata.Schedule,
			Classroom:            metadata.Classroom,
			Credits:              metadata.Credits,
			Instructors:          metadata.Instructors,
			FacultyNames:         metadata.Faculties,
			Campus:               metadata.Campus,
			TagNames:             strings.Join(tags, ","),
			CourseCategory:       category,
			InstructionLanguage:  metadata.InstructionLanguage,
		})
	}
	return records, nil
}

// title -> code -> "Untitled Course"; the resolved title is never empty
func resolveCourseTitle(metadata CourseMetadata) string {
	if metadata.CourseTitle != "" {
		return metadata.CourseTitle
	}
	if metadata.CourseCode != "" {
		return metadata.CourseCode
	}
	return untitledCourse
}

// returns a new sorted slice; base stays untouched since it is shared
// across the document's records
func mergeTag(base []string, tag string) []string {
	for _, t := range base {
		if t == tag {
			return base
		}
	}
	merged := make([]string, 0, len(base)+1)
	inserted := false
	for _, t := range base {
		if !inserted && tag < t {
			merged = append(merged, tag)
			inserted = true
		}
		merged = append(merged, t)
	}
	if !inserted {
		merged = append(merged, tag)
	}
	return merged
}
