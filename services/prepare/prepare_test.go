package prepare

import (
	"context"
	"os"
	"strings"
	"testing"

	"syllabus-harvester/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	telemetry.InitSlog(true)
	os.Exit(m.Run())
}

const rawCSV = `textbook_title,course_title,campus,faculty_names,tag_names,course_code,isbn
  Algorithms  ,Intro to CS (A),駿河台,"理学部,工学部","faculty-course,multi-faculty",ABC123,123
Algorithms,Intro to CS (B),駿河台,"理学部,工学部",faculty-course,ABC124,123
みんなの日本語,日本語初級,和泉,文学部,general-education,JP01,456
`

func TestReadRaw(t *testing.T) {
	rows, err := ReadRaw(context.Background(), strings.NewReader(rawCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	want := Row{
		TextbookTitle: "Algorithms",
		CourseTitle:   "Intro to CS (A)",
		Campus:        "駿河台",
		CourseCode:    "ABC123",
		ISBN:          "123",
		Faculties:     []string{"理学部", "工学部"},
		Tags:          []string{"faculty-course", "multi-faculty"},
	}
	if diff := cmp.Diff(want, rows[0]); diff != "" {
		t.Fatal(diff)
	}
}

func TestReadRawMissingColumns(t *testing.T) {
	_, err := ReadRaw(context.Background(), strings.NewReader("textbook_title,campus\na,b\n"))
	require.ErrorIs(t, err, ErrMissingColumns)
	require.Contains(t, err.Error(), "course_title")
}

func TestReadRawBOMHeader(t *testing.T) {
	rows, err := ReadRaw(context.Background(),
		strings.NewReader("\ufefftextbook_title,course_title,campus\nBook,Course,Campus\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Book", rows[0].TextbookTitle)
}

func TestReadRawUnknownColumnIgnored(t *testing.T) {
	rows, err := ReadRaw(context.Background(),
		strings.NewReader("textbook_title,course_title,campus,price\nBook,Course,Campus,1200\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestCanonicalCourseTitle(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Intro to CS (A)", "Intro to CS"},
		{"日本語初級（Ｂ）", "日本語初級"},
		{"解析学　(IIB)", "解析学"},
		{"Chemistry (Advanced)", "Chemistry (Advanced)"},
		{"Physics", "Physics"},
		{"", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, CanonicalCourseTitle(c.input), "input %q", c.input)
	}
}

func TestFindNearDuplicateTitles(t *testing.T) {
	rows := []Row{
		{TextbookTitle: "Introduction to Algorithms"},
		{TextbookTitle: "Introduction to Algorithm"},
		{TextbookTitle: "Organic Chemistry"},
		{TextbookTitle: "Introduction to Algorithms"},
	}

	pairs := FindNearDuplicateTitles(rows)
	require.Len(t, pairs, 1)
	require.Equal(t, "Introduction to Algorithms", pairs[0].A)
	require.Equal(t, "Introduction to Algorithm", pairs[0].B)
	require.GreaterOrEqual(t, pairs[0].Similarity, duplicateThreshold)
}
