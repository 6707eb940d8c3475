package prepare

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/prepare")

type RunOptions struct {
	// only write the deduplicated minimal csv
	MinimalOnly bool
	// sqlite path; empty skips the db import
	DbPath string
}

// Run reads the raw scrape csv and writes the import files into outDir.
func Run(ctx context.Context, inputPath, outDir string, opts RunOptions) error {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	input, err := os.Open(inputPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open raw csv")
		return err
	}
	defer input.Close()

	rows, err := ReadRaw(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse raw csv")
		return err
	}

	WarnNearDuplicates(ctx, rows)

	err = os.MkdirAll(outDir, 0755)
	if err != nil {
		return err
	}

	if !opts.MinimalOnly {
		err = writeFile(filepath.Join(outDir, "textbooks_for_import.csv"), func(f *os.File) error {
			return WriteImportCSV(f, rows)
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to write import csv")
			return err
		}

		err = writeFile(filepath.Join(outDir, "textbook_relations.json"), func(f *os.File) error {
			return WriteRelationsJSON(f, rows)
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to write relations json")
			return err
		}
	}

	minimalPath := filepath.Join(outDir, "textbooks_for_import_minimal.csv")
	var written int
	err = writeFile(minimalPath, func(f *os.File) error {
		var err error
		written, err = WriteMinimalCSV(f, rows)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write minimal csv")
		return err
	}
	slog.InfoContext(ctx, "wrote minimal import csv",
		"path", minimalPath, "rows", written)

	if opts.DbPath != "" {
		store, err := OpenStore(opts.DbPath)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to open textbook db")
			return fmt.Errorf("failed to open textbook db: %w", err)
		}
		defer store.Close()

		err = store.Import(ctx, rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to import into textbook db")
			return fmt.Errorf("failed to import into textbook db: %w", err)
		}
		slog.InfoContext(ctx, "imported rows into textbook db",
			"path", opts.DbPath, "rows", len(rows))
	}

	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
