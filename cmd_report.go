package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"prep-meter/internal/report"
	"prep-meter/internal/services"
	"prep-meter/internal/utils"
)

var reportOpts struct {
	from   string
	to     string
	asJSON bool
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the report for a date range (defaults to the current week)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sm, closeDB, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		from, to := reportOpts.from, reportOpts.to
		if from == "" || to == "" {
			weekStart, weekEnd := utils.WeekBounds(time.Now().In(cfg.Location()))
			if from == "" {
				from = weekStart
			}
			if to == "" {
				to = weekEnd
			}
		}

		data, err := sm.Report.Generate(cmd.Context(), from, to)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if reportOpts.asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		}

		counts, err := sm.Repository().GetCounts(cmd.Context(), from, to)
		if err != nil {
			return err
		}
		if counts.Total() == 0 {
			fmt.Fprintf(out, "No records stored between %s and %s\n\n", from, to)
		} else {
			fmt.Fprintf(out, "Stored records: %d (%d plans, %d coaching logs, %d tests, %d wellness logs, %d doubts)\n\n",
				counts.Total(), counts.Plans, counts.CoachingLogs, counts.Tests, counts.WellnessLogs, counts.Doubts)
		}
		return writeSummary(out, data)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportOpts.from, "from", "", "first date, YYYY-MM-DD")
	reportCmd.Flags().StringVar(&reportOpts.to, "to", "", "last date, YYYY-MM-DD")
	reportCmd.Flags().BoolVar(&reportOpts.asJSON, "json", false, "print the full snapshot as JSON")
}

func orDash[T any](v *T, format func(T) string) string {
	if v == nil {
		return "-"
	}
	return format(*v)
}

func writeSummary(out io.Writer, data *report.ReportData) error {
	hours := func(h float64) string { return utils.FormatHours(h) }
	one := func(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) }
	percent := func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) }

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", data.Title, data.DateRange)
	fmt.Fprintf(tw, "Days with records\t%d\n", len(data.DailyBreakdown))
	fmt.Fprintf(tw, "Self study\t%s\n", orDash(data.TotalStudyHours, hours))
	fmt.Fprintf(tw, "Coaching\t%s\n", orDash(data.TotalCoachingHours, hours))
	fmt.Fprintf(tw, "Efficiency\t%s\n", orDash(data.AvgEfficiency, percent))
	fmt.Fprintf(tw, "Questions solved\t%s\n", orDash(data.TotalQuestionsSolved, strconv.Itoa))
	fmt.Fprintf(tw, "Tests taken\t%s\n", orDash(data.TestsTakenCount, strconv.Itoa))
	fmt.Fprintf(tw, "Average mood\t%s\n", orDash(data.AvgMood, one))
	fmt.Fprintf(tw, "Average sleep\t%s\n", orDash(data.AvgSleep, one))
	fmt.Fprintf(tw, "Study streak\t%s (longest %s)\n",
		orDash(data.CurrentStudyStreak, strconv.Itoa), orDash(data.LongestStudyStreak, strconv.Itoa))
	if data.PersonalBestStudyHours != nil && data.PersonalBestDate != nil {
		fmt.Fprintf(tw, "Best day\t%s on %s\n", hours(*data.PersonalBestStudyHours), *data.PersonalBestDate)
	}
	for _, c := range data.ChallengeProgress {
		fmt.Fprintf(tw, "Challenge\t%s %s/%s %s (%s)\n", c.Title,
			strconv.FormatFloat(c.Current, 'f', -1, 64), strconv.FormatFloat(c.Goal, 'f', -1, 64), c.Unit, c.Status)
	}
	for _, c := range data.WeakestChapters {
		fmt.Fprintf(tw, "Weak chapter\t%s (%s, %.0f%%)\n", c.Name, c.Subject, c.AvgScore)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, line := range services.Insights(data) {
		fmt.Fprintln(out, line)
	}
	return nil
}
