package prepare

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func normalizedRows(t *testing.T) []Row {
	t.Helper()
	rows, err := ReadRaw(context.Background(), strings.NewReader(rawCSV))
	require.NoError(t, err)
	return rows
}

func TestWriteImportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteImportCSV(&buf, normalizedRows(t)))

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 4)
	require.Equal(t, importHeader, parsed[0])

	row := parsed[1]
	require.Equal(t, "Algorithms", row[0])
	require.Equal(t, "Intro to CS (A)", row[2])
	require.Equal(t, "理学部,工学部", row[5])
	require.Equal(t, "faculty-course,multi-faculty", row[7])
	require.Equal(t, "123", row[15])
}

func TestWriteRelationsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRelationsJSON(&buf, normalizedRows(t)))

	// multibyte text must stay readable in the output file
	require.Contains(t, buf.String(), "理学部")

	var relations []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &relations))
	require.Len(t, relations, 3)
	require.Equal(t, "Algorithms", relations[0]["textbook_title"])
	require.Equal(t, []any{"理学部", "工学部"}, relations[0]["faculties"])
	// rows without departments still serialize as [] not null
	require.Equal(t, []any{}, relations[0]["departments"])
}

func TestWriteMinimalCSV(t *testing.T) {
	var buf bytes.Buffer
	written, err := WriteMinimalCSV(&buf, normalizedRows(t))
	require.NoError(t, err)

	// the (A)/(B) sections of Intro to CS collapse into one row
	require.Equal(t, 2, written)

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	require.Equal(t, minimalHeader, parsed[0])
	require.Equal(t, []string{"Intro to CS", "Algorithms", "駿河台", "理学部,工学部"}, parsed[1])
	require.Equal(t, []string{"日本語初級", "みんなの日本語", "和泉", "文学部"}, parsed[2])
}
