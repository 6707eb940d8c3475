package syllabus

import (
	"strings"

	"syllabus-harvester/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const textbookHeadingKeyword = "教科書"

// canonical textbook columns, also the positional fallback order for
// headerless tables (minus reading, which never appears positionally)
const (
	fieldTitle     = "title"
	fieldReading   = "reading"
	fieldAuthors   = "authors"
	fieldPublisher = "publisher"
	fieldISBN      = "isbn"
	fieldNote      = "note"
)

var positionalFields = []string{fieldTitle, fieldAuthors, fieldPublisher, fieldISBN, fieldNote}

// headerRules maps header-cell labels to canonical fields. Checked in
// order, so a label matching several keyword sets resolves to the first.
var headerRules = []struct {
	keywords        []string
	caseInsensitive []string
	field           string
}{
	{[]string{"書名", "タイトル"}, []string{"name"}, fieldTitle},
	{[]string{"読み", "フリガナ", "ふりがな"}, nil, fieldReading},
	{[]string{"著者", "編者"}, []string{"author"}, fieldAuthors},
	{[]string{"出版社"}, []string{"publisher"}, fieldPublisher},
	{nil, []string{"isbn"}, fieldISBN},
	{[]string{"備考", "補足", "メモ", "使用頻度"}, []string{"note"}, fieldNote},
}

// NormalizeTextbookHeader resolves a header-cell label to a canonical
// field name, or "" when the label is not recognized.
func NormalizeTextbookHeader(label string) string {
	value := strings.TrimSpace(label)
	if value == "" {
		return ""
	}
	lower := strings.ToLower(value)
	for _, rule := range headerRules {
		for _, k := range rule.keywords {
			if strings.Contains(value, k) {
				return rule.field
			}
		}
		for _, k := range rule.caseInsensitive {
			if strings.Contains(lower, k) {
				return rule.field
			}
		}
	}
	return ""
}

// ExtractTextbooks locates the textbook listing and returns its rows in
// document order. Documents without a textbook section yield an empty
// result, not an error.
func ExtractTextbooks(doc *goquery.Document) []RawTextbook {
	heading := findTextbookHeading(doc)
	if heading == nil {
		return nil
	}

	tableNode := htmlutil.FindFollowingElement(heading, "table")
	if tableNode == nil {
		return nil
	}
	table := goquery.NewDocumentFromNode(tableNode)

	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil
	}

	var headerMap []string
	dataRows := rows
	if firstRowIsHeader(rows.Eq(0)) {
		rows.Eq(0).Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			headerMap = append(headerMap, NormalizeTextbookHeader(cell.Text()))
		})
		dataRows = rows.Slice(1, rows.Length())
	}

	var textbooks []RawTextbook
	dataRows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() == 0 {
			return
		}

		values := map[string]string{}
		cells.Each(func(index int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())

			key := ""
			if index < len(headerMap) {
				key = headerMap[index]
			}
			if key != "" {
				values[key] = text
				return
			}

			// positional fallback for unmapped columns, first writer
			// wins per cell
			if index < len(positionalFields) {
				field := positionalFields[index]
				if _, taken := values[field]; !taken {
					values[field] = text
				}
			}
		})

		title := strings.TrimSpace(values[fieldTitle])
		if title == "" {
			return
		}
		textbooks = append(textbooks, RawTextbook{
			Title:     title,
			Reading:   values[fieldReading],
			Authors:   values[fieldAuthors],
			Publisher: values[fieldPublisher],
			ISBN:      values[fieldISBN],
			Note:      values[fieldNote],
		})
	})

	return textbooks
}

func findTextbookHeading(doc *goquery.Document) *html.Node {
	var heading *html.Node
	doc.Find("h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.Contains(sel.Text(), textbookHeadingKeyword) {
			return true
		}
		if len(sel.Nodes) == 0 {
			return true
		}
		heading = sel.Nodes[0]
		return false
	})
	return heading
}

func firstRowIsHeader(row *goquery.Selection) bool {
	return row.Find("th").Length() > 0
}
