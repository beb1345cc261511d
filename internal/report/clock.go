package report

import (
	"slices"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// parseClock parses "HH:mm" into minutes after midnight.
func parseClock(s string) (int, bool) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 24 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, false
	}
	return (h*60 + m) % minutesPerDay, true
}

// interval is a half-open span of minutes on a day timeline. Values may run
// past minutesPerDay when a span crosses midnight.
type interval struct {
	start, end int
}

func (iv interval) minutes() int {
	if iv.end <= iv.start {
		return 0
	}
	return iv.end - iv.start
}

func (iv interval) clip(to interval) interval {
	return interval{start: max(iv.start, to.start), end: min(iv.end, to.end)}
}

// timeline anchors one day's clock times at its wake-up minute. Spans that end
// by the origin belong to the night after it.
type timeline struct {
	origin int
	window interval
	hasWin bool
}

func newTimeline(wake, sleep string) timeline {
	w, okW := parseClock(wake)
	s, okS := parseClock(sleep)
	if !okW || !okS {
		return timeline{}
	}
	length := mod(s-w, minutesPerDay)
	if length == 0 {
		length = minutesPerDay
	}
	return timeline{origin: w, window: interval{start: w, end: w + length}, hasWin: true}
}

// place converts a start/end clock pair into an interval. A span whose end is
// not after its start wraps past midnight; equal times give an empty span.
// Only a span lying wholly before the origin moves to the following night; one
// that crosses the origin keeps its place.
func (t timeline) place(start, end string) (interval, bool) {
	s, ok := parseClock(start)
	if !ok {
		return interval{}, false
	}
	e, ok := parseClock(end)
	if !ok {
		return interval{}, false
	}
	if s < t.origin && s < e && e <= t.origin {
		s += minutesPerDay
	}
	return interval{start: s, end: s + mod(e-s, minutesPerDay)}, true
}

// coveredMinutes returns how much of window the union of spans covers. Each
// span is also tried one day later, so the part of a span that starts before
// wake-up covers the same clock minutes at the end of a full-day window.
func coveredMinutes(spans []interval, window interval) int {
	clipped := make([]interval, 0, len(spans))
	for _, sp := range spans {
		for _, shift := range [...]int{0, minutesPerDay} {
			moved := interval{start: sp.start + shift, end: sp.end + shift}
			if c := moved.clip(window); c.minutes() > 0 {
				clipped = append(clipped, c)
			}
		}
	}
	slices.SortFunc(clipped, func(a, b interval) int { return a.start - b.start })

	total, reach := 0, window.start
	for _, c := range clipped {
		if c.end <= reach {
			continue
		}
		total += c.end - max(c.start, reach)
		reach = c.end
	}
	return total
}

// spreadByHour adds the minutes of iv to the hour-of-day buckets it overlaps.
func spreadByHour(iv interval, buckets *[24]int) {
	for h := iv.start / 60; h*60 < iv.end; h++ {
		overlap := interval{start: max(iv.start, h*60), end: min(iv.end, (h+1)*60)}.minutes()
		buckets[h%24] += overlap
	}
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func toHours(minutes int) float64 {
	return float64(minutes) / 60
}
