package commands

import (
	"log/slog"
	"time"

	"syllabus-harvester/lib/serviceutil"
	"syllabus-harvester/services/syllabus"

	"github.com/spf13/cobra"
)

var scrapeInput *string
var scrapeOutput *string
var scrapeSkipMalformed *bool

func init() {
	scrapeInput = scrapeCmd.Flags().String("input", "raw/html", "An html file or a directory of html files to scrape.")
	scrapeOutput = scrapeCmd.Flags().String("output", "raw/textbooks_raw.csv", "The csv file to write extracted records to.")
	scrapeSkipMalformed = scrapeCmd.Flags().Bool("skip-malformed", false, "Skip pages without a recognizable course table instead of aborting.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--input <path>] [--output <out.csv>]",
	Short: "Extracts textbook records from saved syllabus pages and writes a csv.",
	Run: func(cmd *cobra.Command, args []string) {
		t1 := time.Now()
		rows, err := syllabus.Run(cmd.Context(), *scrapeInput, *scrapeOutput, syllabus.Options{
			SkipMalformed: *scrapeSkipMalformed,
		})
		if err != nil {
			serviceutil.Fatal("failed to scrape syllabus pages", err)
		}

		slog.Info("wrote textbook records",
			"output", *scrapeOutput,
			"rows", rows,
			"seconds", time.Since(t1).Seconds())
	},
}
