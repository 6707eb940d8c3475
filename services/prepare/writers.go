package prepare

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strings"
)

var importHeader = []string{
	"textbook_title",
	"textbook_title_reading",
	"course_title",
	"course_title_reading",
	"campus",
	"faculty_names",
	"department_names",
	"tag_names",
	"course_code",
	"course_category",
	"instruction_language",
	"note",
	"authors",
	"publisher",
	"publication_year",
	"isbn",
}

// WriteImportCSV emits the full 16-column import file.
func WriteImportCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	err := writer.Write(importHeader)
	if err != nil {
		return err
	}
	for _, row := range rows {
		err := writer.Write([]string{
			row.TextbookTitle,
			row.TextbookTitleReading,
			row.CourseTitle,
			row.CourseTitleReading,
			row.Campus,
			strings.Join(row.Faculties, ","),
			strings.Join(row.Departments, ","),
			strings.Join(row.Tags, ","),
			row.CourseCode,
			row.CourseCategory,
			row.InstructionLanguage,
			row.Note,
			row.Authors,
			row.Publisher,
			row.PublicationYear,
			row.ISBN,
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

type relation struct {
	TextbookTitle       string   `json:"textbook_title"`
	CourseTitle         string   `json:"course_title"`
	CourseCode          string   `json:"course_code"`
	CourseCategory      string   `json:"course_category"`
	InstructionLanguage string   `json:"instruction_language"`
	Note                string   `json:"note"`
	Faculties           []string `json:"faculties"`
	Departments         []string `json:"departments"`
	Tags                []string `json:"tags"`
	Authors             string   `json:"authors"`
	Publisher           string   `json:"publisher"`
	PublicationYear     string   `json:"publication_year"`
	ISBN                string   `json:"isbn"`
}

// WriteRelationsJSON emits the faculty/department/tag relations as
// indented json with multibyte text left unescaped.
func WriteRelationsJSON(w io.Writer, rows []Row) error {
	relations := make([]relation, len(rows))
	for i, row := range rows {
		relations[i] = relation{
			TextbookTitle:       row.TextbookTitle,
			CourseTitle:         row.CourseTitle,
			CourseCode:          row.CourseCode,
			CourseCategory:      row.CourseCategory,
			InstructionLanguage: row.InstructionLanguage,
			Note:                row.Note,
			Faculties:           orEmpty(row.Faculties),
			Departments:         orEmpty(row.Departments),
			Tags:                orEmpty(row.Tags),
			Authors:             row.Authors,
			Publisher:           row.Publisher,
			PublicationYear:     row.PublicationYear,
			ISBN:                row.ISBN,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(relations)
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

var minimalHeader = []string{"course_title", "textbook_title", "campus", "faculty_names"}

// WriteMinimalCSV emits the deduplicated 4-column file, collapsing
// sectioned offerings via CanonicalCourseTitle.
func WriteMinimalCSV(w io.Writer, rows []Row) (int, error) {
	writer := csv.NewWriter(w)
	err := writer.Write(minimalHeader)
	if err != nil {
		return 0, err
	}

	seen := map[string]bool{}
	written := 0
	for _, row := range rows {
		baseCourse := CanonicalCourseTitle(row.CourseTitle)

		faculties := append([]string(nil), row.Faculties...)
		sort.Strings(faculties)
		key := strings.Join([]string{
			row.TextbookTitle,
			baseCourse,
			row.Campus,
			strings.Join(faculties, "\x00"),
		}, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true

		courseTitle := baseCourse
		if courseTitle == "" {
			courseTitle = row.CourseTitle
		}
		err := writer.Write([]string{
			courseTitle,
			row.TextbookTitle,
			row.Campus,
			strings.Join(row.Faculties, ","),
		})
		if err != nil {
			return written, err
		}
		written++
	}
	writer.Flush()
	return written, writer.Error()
}
