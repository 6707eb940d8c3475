package syllabus

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const sampleSyllabusHTML = `<html><body>
<div id="table-syllabusitems">
<table class="stdlist">
<tr><th>科目</th><th>年度</th><th>学期</th><th>曜日時限</th><th>対象学部</th><th>担当教員</th><th>単位数</th></tr>
<tr><td>ABC123：Intro to CS</td><td>2024</td><td>前期</td><td>月1</td><td>Faculty of Science、Faculty of Engineering</td><td>山田 太郎／佐藤 花子</td><td>2</td></tr>
</table>
</div>
<h3>キャンパス</h3><p>駿河台</p>
<table><tr><th>教室名</th><td>101号室</td></tr></table>
<h3>使用言語</h3><p>日本語</p>
<h3>教科書</h3>
<table>
<tr><th>書名</th><th>著者名</th><th>出版社</th><th>ISBN</th><th>備考</th></tr>
<tr><td>Algorithms</td><td>A. Author</td><td>X Press</td><td>123</td><td></td></tr>
<tr><td></td><td>Nobody</td><td></td><td></td><td></td></tr>
</table>
</body></html>`

func docFromString(t *testing.T, contents string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	require.NoError(t, err)
	return doc
}

func TestExtractCourseMetadata(t *testing.T) {
	metadata, err := ExtractCourseMetadata(docFromString(t, sampleSyllabusHTML))
	require.NoError(t, err)

	expected := CourseMetadata{
		CourseCode:          "ABC123",
		CourseTitle:         "Intro to CS",
		AcademicYear:        "2024",
		Term:                "前期",
		Schedule:            "月1",
		Campus:              "駿河台",
		Classroom:           "101号室",
		Faculties:           []string{"Faculty of Science", "Faculty of Engineering"},
		Instructors:         []string{"山田 太郎", "佐藤 花子"},
		Credits:             "2",
		InstructionLanguage: "日本語",
	}
	if diff := cmp.Diff(expected, metadata); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractCourseMetadataMissingTable(t *testing.T) {
	_, err := ExtractCourseMetadata(docFromString(t, `<html><body><p>nothing here</p></body></html>`))
	require.ErrorIs(t, err, ErrNoCourseTable)
}

func TestExtractCourseMetadataTooFewRows(t *testing.T) {
	doc := docFromString(t, `<html><body>
<div id="table-syllabusitems"><table class="stdlist">
<tr><th>科目</th></tr>
</table></div>
</body></html>`)
	_, err := ExtractCourseMetadata(doc)
	require.ErrorIs(t, err, ErrCourseTableRows)
}

func TestExtractCourseMetadataMissingSections(t *testing.T) {
	doc := docFromString(t, `<html><body>
<div id="table-syllabusitems"><table class="stdlist">
<tr><th>科目</th><th>年度</th></tr>
<tr><td>Seminar</td><td>2024</td></tr>
</table></div>
</body></html>`)
	metadata, err := ExtractCourseMetadata(doc)
	require.NoError(t, err)

	// missing campus/classroom/language sections are not an error
	require.Equal(t, "Seminar", metadata.CourseCode)
	require.Equal(t, "", metadata.CourseTitle)
	require.Equal(t, "", metadata.Campus)
	require.Equal(t, "", metadata.Classroom)
	require.Equal(t, "", metadata.InstructionLanguage)
	require.Empty(t, metadata.Faculties)
	require.Empty(t, metadata.Instructors)
	require.Equal(t, "", metadata.Credits)
}
