package fetch

import (
	"strings"
	"unicode"

	"github.com/gosimple/slug"
)

// Slugifier turns course codes/titles into stable filenames. It is a
// capability so environments that cannot take the transliteration tables
// along can still run with the ASCII fallback.
type Slugifier interface {
	Slugify(value string) string
}

type librarySlugifier struct{}

func (librarySlugifier) Slugify(value string) string {
	return slug.Make(value)
}

// asciiSlugifier keeps alphanumerics and joins the rest with dashes; no
// transliteration.
type asciiSlugifier struct{}

func (asciiSlugifier) Slugify(value string) string {
	var cleaned strings.Builder
	for _, ch := range value {
		if ch <= unicode.MaxASCII && (unicode.IsLetter(ch) || unicode.IsDigit(ch)) {
			cleaned.WriteRune(unicode.ToLower(ch))
		} else {
			cleaned.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(cleaned.String()), "-")
}

// NewSlugifier returns the transliterating implementation.
func NewSlugifier() Slugifier {
	return librarySlugifier{}
}

// NewASCIISlugifier returns the dependency-free fallback.
func NewASCIISlugifier() Slugifier {
	return asciiSlugifier{}
}
