package syllabus

import (
	"fmt"
	"regexp"
	"strings"

	"syllabus-harvester/lib/htmlutil"
	"syllabus-harvester/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

var (
	// the course-info table or its minimum row count is missing; one
	// malformed document is a structural failure, see Options.SkipMalformed
	// for the batch policy.
	ErrNoCourseTable   = fmt.Errorf("could not locate course metadata table in html page")
	ErrCourseTableRows = fmt.Errorf("course metadata table does not contain expected rows")
)

const courseTableSelector = "#table-syllabusitems table.stdlist"

var (
	// faculty cells list names like "理学部、工学部"; splitting on
	// whitespace too would shatter English names such as
	// "Faculty of Science", so only comma variants separate
	facultySeparators    = regexp.MustCompile(`[、，,]+`)
	instructorSeparators = regexp.MustCompile(`[、，,/／]+`)
)

var (
	campusLabel    = regexp.MustCompile(`キャンパス`)
	classroomLabel = regexp.MustCompile(`授業施設|教室|教場|教室名`)
	languageLabel  = regexp.MustCompile(`使用言語|Language of instruction|使用言語等|使用される言語`)
)

// ExtractCourseMetadata parses the course-info table and the labeled page
// sections of one syllabus document.
func ExtractCourseMetadata(doc *goquery.Document) (CourseMetadata, error) {
	table := doc.Find(courseTableSelector).First()
	if table.Length() == 0 {
		return CourseMetadata{}, ErrNoCourseTable
	}

	rows := table.Find("tr")
	if rows.Length() < 2 {
		return CourseMetadata{}, ErrCourseTableRows
	}

	var cells []string
	rows.Eq(1).Find("td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	if len(cells) < 1 {
		return CourseMetadata{}, fmt.Errorf("%w: data row has no cells", ErrCourseTableRows)
	}

	getCell := func(index int) string {
		if index < len(cells) {
			return cells[index]
		}
		return ""
	}

	code, title := ParseCourseIdentifier(getCell(0))

	return CourseMetadata{
		CourseCode:          code,
		CourseTitle:         title,
		AcademicYear:        getCell(1),
		Term:                getCell(2),
		Schedule:            getCell(3),
		Faculties:           textutil.SplitList(getCell(4), facultySeparators),
		Instructors:         textutil.SplitList(getCell(5), instructorSeparators),
		Credits:             getCell(6),
		Campus:              extractSectionText(doc, campusLabel),
		Classroom:           extractSectionText(doc, classroomLabel),
		InstructionLanguage: extractSectionText(doc, languageLabel),
	}, nil
}

// extractSectionText finds a section header (h3 or th) whose text matches
// the label and returns the text of the nearest following element that has
// any. A missing section is not an error, just an empty string.
func extractSectionText(doc *goquery.Document, label *regexp.Regexp) string {
	result := ""
	doc.Find("h3, th").EachWithBreak(func(_ int, header *goquery.Selection) bool {
		if !label.MatchString(strings.TrimSpace(header.Text())) {
			return true
		}
		if len(header.Nodes) == 0 {
			return true
		}
		text := htmlutil.FindFollowingText(header.Nodes[0])
		if text == "" {
			return true
		}
		result = text
		return false
	})
	return result
}
