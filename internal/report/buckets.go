package report

import "fmt"

// hourlyHeatmap returns 24 rows, one per hour of day, each holding a value
// per rollup date: hours of completed study and coaching overlapping that
// hour, or nil for the whole column when the date has no schedule at all.
func hourlyHeatmap(days []day) ([]HeatmapRow, []string) {
	if len(days) == 0 {
		return []HeatmapRow{}, []string{}
	}
	labels := make([]string, len(days))
	columns := make([]*[24]int, len(days))
	for i, d := range days {
		labels[i] = d.item.Date
		if !d.hasSchedule {
			continue
		}
		var buckets [24]int
		for _, s := range d.study {
			spreadByHour(s.interval, &buckets)
		}
		for _, c := range d.coachSpans {
			spreadByHour(c, &buckets)
		}
		columns[i] = &buckets
	}

	rows := make([]HeatmapRow, 24)
	for h := range rows {
		values := make([]*float64, len(days))
		for i, col := range columns {
			if col != nil {
				values[i] = ptr(toHours(col[h]))
			}
		}
		rows[h] = HeatmapRow{Hour: fmt.Sprintf("%02d", h), Values: values}
	}
	return rows, labels
}

// dailyHoursBreakdown has an entry for every rollup date.
func dailyHoursBreakdown(days []day) []DailyHours {
	out := make([]DailyHours, len(days))
	for i, d := range days {
		out[i] = DailyHours{
			Date:      d.item.Date,
			SelfStudy: d.item.StudyHours,
			Coaching:  d.item.CoachingHours,
			Breaks:    d.item.BreakHours,
		}
	}
	return out
}
