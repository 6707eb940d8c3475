package syllabus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/syllabus")

type Options struct {
	// skip structurally broken documents with a warning instead of
	// aborting the whole run
	SkipMalformed bool
}

// ScrapeFile parses a single saved syllabus page into textbook records.
func ScrapeFile(ctx context.Context, path string) ([]TextbookRecord, error) {
	ctx, span := tracer.Start(ctx, "ScrapeFile")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open html file")
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	records, err := BuildRecords(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to build records")
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ScrapePath parses one html file, or every *.html file of a directory in
// filename order, and returns the accumulated record list. Annotation is
// left to the caller since it needs the full batch.
func ScrapePath(ctx context.Context, input string, opts Options) ([]TextbookRecord, error) {
	ctx, span := tracer.Start(ctx, "ScrapePath")
	defer span.End()

	files, err := listHTMLFiles(input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list input files")
		return nil, err
	}

	var all []TextbookRecord
	for _, file := range files {
		records, err := ScrapeFile(ctx, file)
		if err != nil {
			if opts.SkipMalformed {
				slog.WarnContext(ctx, "skipping malformed document", "file", file, "err", err)
				continue
			}
			return nil, err
		}
		if len(records) == 0 {
			slog.DebugContext(ctx, "document has no textbooks", "file", file)
			continue
		}
		all = append(all, records...)
	}
	return all, nil
}

// Run is the whole pipeline: scrape, annotate the complete batch, write
// the csv. No output file is created when the run produces zero records.
func Run(ctx context.Context, input, output string, opts Options) (int, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	records, err := ScrapePath(ctx, input, opts)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, ErrNoRecords
	}

	Annotate(records)

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return 0, err
	}
	f, err := os.Create(output)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return 0, err
	}
	slog.InfoContext(ctx, "wrote textbook rows", "rows", len(records), "output", output)
	return len(records), nil
}

func listHTMLFiles(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	matches, err := filepath.Glob(filepath.Join(input, "*.html"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
