package commands

import (
	"fmt"
	"os"

	"syllabus-harvester/lib/serviceutil"
	"syllabus-harvester/services/syllabus/snapshot"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statsTarget *string

var archiveTarget *string
var archiveOutputDir *string
var archiveKeepLatest *int
var archiveDeleteAfter *bool
var archiveDryRun *bool

func init() {
	statsTarget = statsCmd.Flags().String("target", "raw/html", "The directory of saved syllabus pages.")

	archiveTarget = archiveCmd.Flags().String("target", "raw/html", "The directory of saved syllabus pages.")
	archiveOutputDir = archiveCmd.Flags().String("output-dir", "raw/archive", "The directory to write the zip archive into.")
	archiveKeepLatest = archiveCmd.Flags().Int("keep-latest", 0, "How many of the newest files to leave unarchived.")
	archiveDeleteAfter = archiveCmd.Flags().Bool("delete-after", false, "Remove the original files once archived.")
	archiveDryRun = archiveCmd.Flags().Bool("dry-run", false, "Report what would be archived without writing anything.")

	htmlCmd.AddCommand(statsCmd)
	htmlCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(htmlCmd)
}

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Manages the directory of downloaded syllabus pages.",
}

var statsCmd = &cobra.Command{
	Use:   "stats [--target <dir>]",
	Short: "Prints a summary of the saved syllabus pages.",
	Run: func(cmd *cobra.Command, args []string) {
		stats, err := snapshot.Stats(*statsTarget)
		if err != nil {
			serviceutil.Fatal("failed to read snapshot directory", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Files", "Total Size", "Oldest", "Newest"})
		t.AppendRow(table.Row{
			stats.Count,
			snapshot.HumanSize(stats.TotalSize),
			stats.Oldest.Format("2006-01-02 15:04"),
			stats.Newest.Format("2006-01-02 15:04"),
		})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive [--target <dir>] [--output-dir <dir>]",
	Short: "Zips old syllabus pages into a timestamped archive.",
	Run: func(cmd *cobra.Command, args []string) {
		result, err := snapshot.Archive(cmd.Context(), *archiveTarget, *archiveOutputDir, snapshot.ArchiveOptions{
			KeepLatest:  *archiveKeepLatest,
			DeleteAfter: *archiveDeleteAfter,
			DryRun:      *archiveDryRun,
		})
		if err != nil {
			serviceutil.Fatal("failed to archive snapshot directory", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Archived", "Kept", "Archive"})
		archivePath := result.ArchivePath
		if *archiveDryRun {
			archivePath = fmt.Sprintf("(dry run) %s", archivePath)
		}
		t.AppendRow(table.Row{len(result.Archived), len(result.Kept), archivePath})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
