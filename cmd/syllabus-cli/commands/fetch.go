package commands

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"syllabus-harvester/lib/configutil"
	"syllabus-harvester/lib/serviceutil"
	"syllabus-harvester/services/syllabus/fetch"

	"github.com/spf13/cobra"
)

var fetchInput *string
var fetchOutput *string
var fetchDelay *time.Duration
var fetchAuthCookie *string

func init() {
	fetchInput = fetchCmd.Flags().String("input", "raw/targets.csv", "A csv with a url column, or a text file with one url per line.")
	fetchOutput = fetchCmd.Flags().String("output", "raw/html", "The directory to save downloaded pages into.")
	fetchDelay = fetchCmd.Flags().Duration("delay", time.Second, "Minimum delay between requests.")
	fetchAuthCookie = fetchCmd.Flags().String("auth-cookie", "", "Cookie header for the syllabus portal. Overrides config.json5.")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [--input <targets.csv>] [--output <dir>]",
	Short: "Downloads syllabus pages listed in a target file.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[fetch.Config]("config.json5")
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			serviceutil.Fatal("failed to read config", err)
		}
		if *fetchAuthCookie != "" {
			cfg.AuthCookie = *fetchAuthCookie
		}

		targets, err := fetch.LoadTargets(*fetchInput)
		if err != nil {
			serviceutil.Fatal("failed to load target list", err)
		}
		slog.Info("loaded targets", "count", len(targets))

		client := fetch.NewClient(fetch.ClientOptions{
			AuthCookie: cfg.AuthCookie,
			UserAgent:  cfg.UserAgent,
			Delay:      *fetchDelay,
		})

		t1 := time.Now()
		saved, err := client.Download(cmd.Context(), targets, *fetchOutput)
		if err != nil {
			serviceutil.Fatal("failed to download syllabus pages", err)
		}

		slog.Info("downloaded syllabus pages",
			"saved", saved,
			"failed", len(targets)-saved,
			"seconds", time.Since(t1).Seconds())
	},
}
