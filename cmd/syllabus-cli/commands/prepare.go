package commands

import (
	"log/slog"
	"time"

	"syllabus-harvester/lib/serviceutil"
	"syllabus-harvester/services/prepare"

	"github.com/spf13/cobra"
)

var prepareInput *string
var prepareOutDir *string
var prepareDb *string
var prepareMinimalOnly *bool

func init() {
	prepareInput = prepareCmd.Flags().String("input", "raw/textbooks_raw.csv", "The raw csv produced by the scrape command.")
	prepareOutDir = prepareCmd.Flags().String("out-dir", "processed", "The directory to write the import files into.")
	prepareDb = prepareCmd.Flags().String("db", "", "Optionally also load the rows into this sqlite database.")
	prepareMinimalOnly = prepareCmd.Flags().Bool("minimal-only", false, "Only write the deduplicated minimal csv.")
	rootCmd.AddCommand(prepareCmd)
}

var prepareCmd = &cobra.Command{
	Use:   "prepare [--input <raw.csv>] [--out-dir <dir>]",
	Short: "Converts the raw scrape csv into import-ready files.",
	Run: func(cmd *cobra.Command, args []string) {
		t1 := time.Now()
		err := prepare.Run(cmd.Context(), *prepareInput, *prepareOutDir, prepare.RunOptions{
			MinimalOnly: *prepareMinimalOnly,
			DbPath:      *prepareDb,
		})
		if err != nil {
			serviceutil.Fatal("failed to prepare import files", err)
		}

		slog.Info("prepared import files",
			"out_dir", *prepareOutDir,
			"seconds", time.Since(t1).Seconds())
	},
}
