package fetch

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
)

var ErrNoTargets = fmt.Errorf("no syllabus urls found in input file")

// Target is one syllabus page to download. Code/title/filename are
// optional and only influence the saved filename.
type Target struct {
	URL         string
	CourseCode  string
	CourseTitle string
	FileName    string
}

// LoadTargets reads a target list. A `.csv` input needs a `url` column
// (extra `course_code`, `course_title` and `file_name` columns are picked
// up); anything else, or a csv without a `url` header, is treated as one
// url per line.
func LoadTargets(inputPath string) ([]Target, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var targets []Target
	if strings.EqualFold(path.Ext(inputPath), ".csv") {
		targets, err = parseCSVTargets(f)
		if err != nil {
			return nil, err
		}
		if targets == nil {
			// fallback: simple text file with one url per line
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				return nil, err
			}
			targets, err = parsePlainTargets(f)
			if err != nil {
				return nil, err
			}
		}
	} else {
		targets, err = parsePlainTargets(f)
		if err != nil {
			return nil, err
		}
	}

	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	return targets, nil
}

// returns nil (not an empty slice) when the header has no url column
func parseCSVTargets(r io.Reader) ([]Target, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["url"]; !ok {
		return nil, nil
	}

	get := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	targets := []Target{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		urlValue := get(row, "url")
		if urlValue == "" {
			urlValue = firstURLLike(row)
		}
		if urlValue == "" {
			continue
		}
		targets = append(targets, Target{
			URL:         urlValue,
			CourseCode:  get(row, "course_code"),
			CourseTitle: get(row, "course_title"),
			FileName:    get(row, "file_name"),
		})
	}
	return targets, nil
}

func firstURLLike(row []string) string {
	for _, value := range row {
		text := strings.TrimSpace(value)
		lower := strings.ToLower(text)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			return text
		}
	}
	return ""
}

func parsePlainTargets(r io.Reader) ([]Target, error) {
	var targets []Target
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		value := strings.TrimSpace(scanner.Text())
		if value == "" || strings.EqualFold(value, "url") {
			continue
		}
		targets = append(targets, Target{URL: value})
	}
	return targets, scanner.Err()
}

// ResolveFileName picks the saved filename for a target: explicit name,
// slugged course code, slugged title, then the last url path segment.
func ResolveFileName(t Target, index int, slugifier Slugifier) string {
	if t.FileName != "" {
		return ensureHTMLExtension(t.FileName)
	}
	if slugged := slugifier.Slugify(t.CourseCode); slugged != "" {
		return ensureHTMLExtension(slugged)
	}
	if slugged := slugifier.Slugify(t.CourseTitle); slugged != "" {
		return ensureHTMLExtension(slugged)
	}

	segment := ""
	if parsed, err := url.Parse(t.URL); err == nil {
		segment = path.Base(parsed.Path)
		if segment == "." || segment == "/" {
			segment = ""
		}
	}
	if segment == "" {
		return ensureHTMLExtension(fmt.Sprintf("page-%d", index))
	}
	if slugged := slugifier.Slugify(segment); slugged != "" {
		return ensureHTMLExtension(slugged)
	}
	return ensureHTMLExtension(fmt.Sprintf("page-%d", index))
}

func ensureHTMLExtension(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".html") {
		return name
	}
	return name + ".html"
}
