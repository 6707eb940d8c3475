package syllabus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// no textbook rows survived extraction; an all-empty run is a usage error
// and must not produce an output file
var ErrNoRecords = fmt.Errorf("no textbook records found, ensure the input html contains textbook tables")

// CSVHeader is the fixed output column order. The downstream importer
// matches on these names exactly.
var CSVHeader = []string{
	"textbook_title",
	"textbook_title_reading",
	"authors",
	"publisher",
	"publication_year",
	"isbn",
	"course_title",
	"course_code",
	"academic_year",
	"term",
	"schedule",
	"classroom",
	"credits",
	"instructors",
	"faculty_names",
	"campus",
	"tag_names",
	"course_category",
	"instruction_language",
	"note",
}

// WriteCSV emits the final flat table. Multi-valued columns are joined
// with a plain comma, so their component values must not contain one;
// joinMultiValue enforces that.
func WriteCSV(w io.Writer, records []TextbookRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, record := range records {
		if err := writer.Write(csvRow(record)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvRow(r TextbookRecord) []string {
	return []string{
		r.TextbookTitle,
		r.TextbookTitleReading,
		r.Authors,
		r.Publisher,
		r.PublicationYear,
		r.ISBN,
		r.CourseTitle,
		r.CourseCode,
		r.AcademicYear,
		r.Term,
		r.Schedule,
		r.Classroom,
		r.Credits,
		joinMultiValue(r.Instructors),
		joinMultiValue(r.FacultyNames),
		r.Campus,
		r.TagNames,
		r.CourseCategory,
		r.InstructionLanguage,
		r.Note,
	}
}

// joinMultiValue comma-joins a multi-value column, replacing any ASCII
// comma inside a component with its full-width form so the joined string
// stays splittable.
func joinMultiValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	sanitized := make([]string, len(values))
	for i, v := range values {
		sanitized[i] = strings.ReplaceAll(v, ",", "、")
	}
	return strings.Join(sanitized, ",")
}
