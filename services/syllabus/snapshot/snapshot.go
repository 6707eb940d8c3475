package snapshot

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/syllabus/snapshot")

var ErrNoSnapshots = fmt.Errorf("no html snapshots found")

type htmlFile struct {
	path    string
	size    int64
	modTime time.Time
}

type DirStats struct {
	Count     int
	TotalSize int64
	Oldest    time.Time
	Newest    time.Time
}

// HumanSize renders a byte count the way `ls -lh` would.
func HumanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	value := float64(size)
	for _, suffix := range []string{"KiB", "MiB", "GiB", "TiB"} {
		value /= unit
		if value < unit {
			return fmt.Sprintf("%.1f %s", value, suffix)
		}
	}
	return fmt.Sprintf("%.1f PiB", float64(size)/(unit*unit*unit*unit*unit))
}

// lists *.html in dir sorted oldest first by modification time
func listSnapshots(dir string) ([]htmlFile, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}

	var files []htmlFile
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			continue
		}
		files = append(files, htmlFile{
			path:    path,
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})
	return files, nil
}

// Stats summarizes the html snapshots under dir.
func Stats(dir string) (DirStats, error) {
	files, err := listSnapshots(dir)
	if err != nil {
		return DirStats{}, err
	}
	if len(files) == 0 {
		return DirStats{}, ErrNoSnapshots
	}

	stats := DirStats{
		Count:  len(files),
		Oldest: files[0].modTime,
		Newest: files[len(files)-1].modTime,
	}
	for _, f := range files {
		stats.TotalSize += f.size
	}
	return stats, nil
}

type ArchiveOptions struct {
	// newest files left out of the archive
	KeepLatest int
	// remove archived originals afterwards
	DeleteAfter bool
	// report what would happen without touching anything
	DryRun bool
}

type ArchiveResult struct {
	ArchivePath string
	Archived    []string
	Kept        []string
}

// Archive zips all but the newest KeepLatest snapshots under dir into
// archiveDir as syllabus-html-<timestamp>.zip.
func Archive(ctx context.Context, dir, archiveDir string, opts ArchiveOptions) (ArchiveResult, error) {
	ctx, span := tracer.Start(ctx, "Archive")
	defer span.End()

	files, err := listSnapshots(dir)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list snapshots")
		return ArchiveResult{}, err
	}
	if len(files) == 0 {
		return ArchiveResult{}, ErrNoSnapshots
	}

	keep := opts.KeepLatest
	if keep < 0 {
		keep = 0
	}
	if keep > len(files) {
		keep = len(files)
	}
	toArchive := files[:len(files)-keep]
	toKeep := files[len(files)-keep:]

	result := ArchiveResult{
		ArchivePath: filepath.Join(archiveDir,
			fmt.Sprintf("syllabus-html-%s.zip", time.Now().Format("20060102-150405"))),
	}
	for _, f := range toArchive {
		result.Archived = append(result.Archived, f.path)
	}
	for _, f := range toKeep {
		result.Kept = append(result.Kept, f.path)
	}

	if len(toArchive) == 0 {
		slog.InfoContext(ctx, "nothing to archive", "kept", len(toKeep))
		result.ArchivePath = ""
		return result, nil
	}
	if opts.DryRun {
		slog.InfoContext(ctx, "dry run",
			"would_archive", len(toArchive), "would_keep", len(toKeep))
		return result, nil
	}

	err = writeArchive(result.ArchivePath, toArchive)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write archive")
		return ArchiveResult{}, err
	}
	slog.InfoContext(ctx, "wrote archive",
		"path", result.ArchivePath, "files", len(toArchive))

	if opts.DeleteAfter {
		for _, f := range toArchive {
			err := os.Remove(f.path)
			if err != nil {
				slog.WarnContext(ctx, "failed to remove archived file",
					"file", f.path, "err", err)
			}
		}
	}
	return result, nil
}

func writeArchive(archivePath string, files []htmlFile) error {
	err := os.MkdirAll(filepath.Dir(archivePath), 0755)
	if err != nil {
		return err
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	for _, f := range files {
		header := &zip.FileHeader{
			Name:     filepath.Base(f.path),
			Method:   zip.Deflate,
			Modified: f.modTime,
		}
		entry, err := writer.CreateHeader(header)
		if err != nil {
			return err
		}
		src, err := os.Open(f.path)
		if err != nil {
			return err
		}
		_, err = io.Copy(entry, src)
		src.Close()
		if err != nil {
			return err
		}
	}
	err = writer.Close()
	if err != nil {
		return err
	}
	return out.Close()
}
