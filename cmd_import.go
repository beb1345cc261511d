package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Load a study tracker JSON export into the local store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sm, closeDB, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open export: %w", err)
		}
		defer f.Close()

		stats, err := sm.Import.Import(cmd.Context(), f)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Imported %d records: %d plans, %d coaching logs, %d tests, %d wellness logs, %d doubts, %d lectures, %d teachers, %d upcoming tests, %d challenges\n",
			stats.Stored(), stats.Plans, stats.CoachingLogs, stats.Tests, stats.WellnessLogs, stats.Doubts, stats.Lectures, stats.Teachers,
			stats.UpcomingTests, stats.Challenges)
		if stats.Syllabus {
			fmt.Fprintln(out, "📚 Syllabus updated")
		}
		for _, e := range stats.Errors {
			fmt.Fprintln(out, "⚠️ skipped", e)
		}
		return nil
	},
}
