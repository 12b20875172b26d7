package domain

import (
	"math"
	"strings"
	"time"
)

const (
	WeeklyInterval  = 7 * 24 * time.Hour
	MonthlyInterval = 30 * 24 * time.Hour
)

// Labels derived from a trend point's timestamp.
const (
	weeklyLabel  = "1/2"
	monthlyLabel = "Jan"
)

// Layouts tried when a legacy entry only carries its display label.
var labelLayouts = []string{
	"2006-01-02",
	"2006/1/2",
	"1/2/2006",
	"Jan 2, 2006",
	time.RFC3339,
	DayLayout,
}

// nextStamp returns the timestamp of a point appended after a series whose
// last point has ts and label. Without a usable predecessor it is now.
func nextStamp(now time.Time, last *int64, label string, hasLast bool, interval time.Duration) time.Time {
	if !hasLast {
		return now
	}
	if last != nil {
		return time.UnixMilli(*last).Add(interval)
	}
	label = strings.TrimSpace(label)
	for _, layout := range labelLayouts {
		if t, err := time.ParseInLocation(layout, label, time.Local); err == nil {
			return t.Add(interval)
		}
	}
	return now
}

func pointLabel(explicit string, ts time.Time, layout string) string {
	if l := strings.TrimSpace(explicit); l != "" {
		return l
	}
	return ts.Local().Format(layout)
}

func stamp(t time.Time) *int64 {
	ms := t.UnixMilli()
	return &ms
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

// optHours stores non-zero tape hours; zero is kept as absent.
func optHours(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func tapeInput(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}

func sumTape(entries []TapeEntry) (b, k, m float64) {
	for _, e := range entries {
		eb, ek, em := e.Hours()
		b += eb
		k += ek
		m += em
	}
	return b, k, m
}

// recomputeTape sets the tape totals to the hours logged outside the series
// plus the sum of the new series. before is the series the totals were
// computed against.
func recomputeTape(r *ActivityRecord, before, after []TapeEntry) {
	ob, ok, om := sumTape(before)
	nb, nk, nm := sumTape(after)
	r.BoxingTapeHours = math.Max(0, r.BoxingTapeHours-ob+nb)
	r.KickboxingTapeHours = math.Max(0, r.KickboxingTapeHours-ok+nk)
	r.MMATapeHours = math.Max(0, r.MMATapeHours-om+nm)
	r.BoxingTapeTrend = after
}

// recomputeFitness derives the highest and latest score from the full series.
func recomputeFitness(r *ActivityRecord) {
	highest := 0
	for _, s := range r.FitnessTestTrend {
		highest = max(highest, s.Score)
	}
	r.FitnessTestHighest = highest
	r.FitnessTestThisMonth = 0
	if n := len(r.FitnessTestTrend); n > 0 {
		r.FitnessTestThisMonth = r.FitnessTestTrend[n-1].Score
	}
}

// RecomputeFitness is exported for the migration engine.
func RecomputeFitness(r *ActivityRecord) { recomputeFitness(r) }
