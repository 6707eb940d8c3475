package syllabus

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteCSVEmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	require.ErrorIs(t, err, ErrNoRecords)
	require.Zero(t, buf.Len())
}

func TestWriteCSV(t *testing.T) {
	records := []TextbookRecord{
		{
			TextbookTitle:       "Algorithms",
			Authors:             "A. Author",
			ISBN:                "123",
			CourseTitle:         "Intro to CS",
			CourseCode:          "ABC123",
			AcademicYear:        "2024",
			Instructors:         []string{"山田 太郎", "佐藤 花子"},
			FacultyNames:        []string{"理学部", "工学部"},
			Campus:              "駿河台",
			TagNames:            "faculty-course,multi-faculty",
			CourseCategory:      CategoryFacultyCourse,
			InstructionLanguage: "日本語",
			Note:                "別名称: Other",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, CSVHeader, rows[0])

	row := rows[1]
	require.Len(t, row, len(CSVHeader))
	require.Equal(t, "Algorithms", row[0])
	require.Equal(t, "123", row[5])
	require.Equal(t, "Intro to CS", row[6])
	require.Equal(t, "ABC123", row[7])
	require.Equal(t, "山田 太郎,佐藤 花子", row[13])
	require.Equal(t, "理学部,工学部", row[14])
	require.Equal(t, "faculty-course,multi-faculty", row[16])
	require.Equal(t, "別名称: Other", row[19])
}

// a component value containing the join delimiter must be sanitized, the
// downstream importer splits these columns on plain commas
func TestWriteCSVSanitizesMultiValueColumns(t *testing.T) {
	records := []TextbookRecord{
		{
			TextbookTitle: "Book",
			FacultyNames:  []string{"Faculty of Arts, Letters"},
			Instructors:   []string{"Doe, J."},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, "Doe、 J.", rows[1][13])
	require.Equal(t, "Faculty of Arts、 Letters", rows[1][14])
}
