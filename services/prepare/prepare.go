package prepare

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

var ErrMissingColumns = fmt.Errorf("raw csv is missing required columns")

var requiredColumns = []string{"textbook_title", "course_title", "campus"}

var optionalColumns = map[string]bool{
	"textbook_title_reading": true,
	"course_title_reading":   true,
	"faculty_names":          true,
	"department_names":       true,
	"tag_names":              true,
	"course_code":            true,
	"course_category":        true,
	"instruction_language":   true,
	"note":                   true,
	"authors":                true,
	"publisher":              true,
	"publication_year":       true,
	"isbn":                   true,
}

// Row is one normalized textbook/course pairing from the raw scrape
// output, with the multi-value columns already split.
type Row struct {
	TextbookTitle        string
	TextbookTitleReading string
	CourseTitle          string
	CourseTitleReading   string
	Campus               string
	CourseCode           string
	CourseCategory       string
	InstructionLanguage  string
	Note                 string
	Authors              string
	Publisher            string
	PublicationYear      string
	ISBN                 string
	Faculties            []string
	Departments          []string
	Tags                 []string
}

func splitMultiValue(value string) []string {
	if value == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// NormalizeRow trims every cell and splits the comma-joined columns.
func NormalizeRow(raw map[string]string) Row {
	get := func(name string) string {
		return strings.TrimSpace(raw[name])
	}
	return Row{
		TextbookTitle:        get("textbook_title"),
		TextbookTitleReading: get("textbook_title_reading"),
		CourseTitle:          get("course_title"),
		CourseTitleReading:   get("course_title_reading"),
		Campus:               get("campus"),
		CourseCode:           get("course_code"),
		CourseCategory:       get("course_category"),
		InstructionLanguage:  get("instruction_language"),
		Note:                 get("note"),
		Authors:              get("authors"),
		Publisher:            get("publisher"),
		PublicationYear:      get("publication_year"),
		ISBN:                 get("isbn"),
		Faculties:            splitMultiValue(raw["faculty_names"]),
		Departments:          splitMultiValue(raw["department_names"]),
		Tags:                 splitMultiValue(raw["tag_names"]),
	}
}

// ReadRaw parses the raw scrape csv. Missing required columns are an
// error; unknown columns are logged and ignored.
func ReadRaw(ctx context.Context, r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read raw csv header: %w", err)
	}
	if len(header) > 0 {
		// excel saves utf-8 with a BOM
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var unknown []string
	for name := range columns {
		if !optionalColumns[name] && !isRequired(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		slog.WarnContext(ctx, "ignoring unknown raw csv columns",
			"columns", strings.Join(unknown, ", "))
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read raw csv row: %w", err)
		}

		raw := map[string]string{}
		for name, idx := range columns {
			if idx < len(record) {
				raw[name] = record[idx]
			}
		}
		rows = append(rows, NormalizeRow(raw))
	}
	return rows, nil
}

func isRequired(name string) bool {
	for _, required := range requiredColumns {
		if name == required {
			return true
		}
	}
	return false
}

var sectionSuffixRegex = regexp.MustCompile(`[\s　]*[\(（][A-Za-z0-9Ａ-Ｚ０-９]{1,4}[\)）]$`)

// CanonicalCourseTitle strips a trailing section marker like "(A)" or
// "（Ｂ）" so sectioned offerings of the same course collapse together.
func CanonicalCourseTitle(title string) string {
	if title == "" {
		return ""
	}
	return strings.TrimSpace(sectionSuffixRegex.ReplaceAllString(title, ""))
}
