package syllabus

import (
	"strings"
	"testing"

	"github.com/mazen160/go-random"
	"github.com/stretchr/testify/require"
)

func TestParseCourseIdentifier(t *testing.T) {
	testCases := []struct {
		in    string
		code  string
		title string
	}{
		{"CS101：Intro to Programming", "CS101", "Intro to Programming"},
		{"CS101:Intro to Programming", "CS101", "Intro to Programming"},
		{"Basic Math", "Basic", "Math"},
		{"Seminar", "Seminar", ""},
		{"  ABC123：  Advanced Topics  ", "ABC123：", "Advanced Topics"},
		{"数学演習 I", "数学演習", "I"},
		{"", "", ""},
	}
	for _, test := range testCases {
		code, title := ParseCourseIdentifier(test.in)
		require.Equal(t, test.code, code, "input %q", test.in)
		require.Equal(t, test.title, title, "input %q", test.in)
	}
}

// the parser contract is that it never fails, whatever the cell contents
func TestParseCourseIdentifierArbitraryInput(t *testing.T) {
	for i := 0; i < 200; i++ {
		length, err := random.IntRange(1, 40)
		require.NoError(t, err)
		value, err := random.String(length)
		require.NoError(t, err)

		require.NotPanics(t, func() {
			code, title := ParseCourseIdentifier(value)
			if strings.TrimSpace(value) != "" {
				require.True(t, code != "" || title != "", "parsed %q into empty pair", value)
			}
		})
	}
}
