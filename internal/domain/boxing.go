package domain

import (
	"math"
	"slices"
)

// AddTapeHours adds study hours to one tape total without logging a series entry.
func AddTapeHours(d Document, ref Ref, kind TapeKind, hours float64) (Document, bool) {
	if !positive(hours) {
		return d, false
	}
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		switch kind {
		case TapeBoxing:
			r.BoxingTapeHours += hours
		case TapeKickboxing:
			r.KickboxingTapeHours += hours
		case TapeMMA:
			r.MMATapeHours += hours
		default:
			return false
		}
		return true
	})
}

// AddTapeEntry appends a weekly tape log. Negative or non-finite hours count
// as zero and an entry with no hours at all is ignored.
func AddTapeEntry(d Document, ref Ref, boxing, kickboxing, mma float64, label string, env Env) (Document, bool) {
	b, k, m := tapeInput(boxing), tapeInput(kickboxing), tapeInput(mma)
	if b+k+m <= 0 {
		return d, false
	}
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		before := r.BoxingTapeTrend
		var lastTS *int64
		var lastLabel string
		if n := len(before); n > 0 {
			lastTS, lastLabel = before[n-1].TS, before[n-1].Date
		}
		ts := nextStamp(env.Now, lastTS, lastLabel, len(before) > 0, WeeklyInterval)
		entry := TapeEntry{
			Date:       pointLabel(label, ts, weeklyLabel),
			TS:         stamp(ts),
			Boxing:     optHours(b),
			Kickboxing: optHours(k),
			MMA:        optHours(m),
		}
		recomputeTape(r, before, append(slices.Clone(before), entry))
		return true
	})
}

// UpdateTapeEntryAt replaces the supplied fields of entry i. Nil or invalid
// hours keep the old value and a blank label keeps the old label.
func UpdateTapeEntryAt(d Document, ref Ref, i int, boxing, kickboxing, mma *float64, label string) (Document, bool) {
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		before := r.BoxingTapeTrend
		if i < 0 || i >= len(before) {
			return false
		}
		after := slices.Clone(before)
		cur := after[i]
		ob, ok, om := cur.Hours()
		cur.Boxing = optHours(pick(boxing, ob))
		cur.Kickboxing = optHours(pick(kickboxing, ok))
		cur.MMA = optHours(pick(mma, om))
		if !blank(label) {
			cur.Date = label
		}
		after[i] = cur
		recomputeTape(r, before, after)
		return true
	})
}

func DeleteTapeEntryAt(d Document, ref Ref, i int) (Document, bool) {
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		before := r.BoxingTapeTrend
		if i < 0 || i >= len(before) {
			return false
		}
		recomputeTape(r, before, slices.Delete(slices.Clone(before), i, i+1))
		return true
	})
}

// ResetTape clears the tape totals and series.
func ResetTape(d Document, ref Ref) (Document, bool) {
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		r.BoxingTapeHours, r.KickboxingTapeHours, r.MMATapeHours = 0, 0, 0
		r.BoxingTapeTrend = []TapeEntry{}
		return true
	})
}

// AddFitnessScore appends a monthly fitness test result.
func AddFitnessScore(d Document, ref Ref, score float64, label string, env Env) (Document, bool) {
	if !finite(score) || score < 0 {
		return d, false
	}
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		trend := r.FitnessTestTrend
		var lastTS *int64
		var lastLabel string
		if n := len(trend); n > 0 {
			lastTS, lastLabel = trend[n-1].TS, trend[n-1].Date
		}
		ts := nextStamp(env.Now, lastTS, lastLabel, len(trend) > 0, MonthlyInterval)
		r.FitnessTestTrend = append(slices.Clone(trend), FitnessScore{
			Date:  pointLabel(label, ts, monthlyLabel),
			Score: int(math.Round(score)),
			TS:    stamp(ts),
		})
		recomputeFitness(r)
		return true
	})
}

func UpdateFitnessScoreAt(d Document, ref Ref, i int, score *float64, label string) (Document, bool) {
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		if i < 0 || i >= len(r.FitnessTestTrend) {
			return false
		}
		cur := r.FitnessTestTrend[i]
		if score != nil && finite(*score) && *score >= 0 {
			cur.Score = int(math.Round(*score))
		}
		if !blank(label) {
			cur.Date = label
		}
		r.FitnessTestTrend[i] = cur
		recomputeFitness(r)
		return true
	})
}

func DeleteFitnessScoreAt(d Document, ref Ref, i int) (Document, bool) {
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		if i < 0 || i >= len(r.FitnessTestTrend) {
			return false
		}
		r.FitnessTestTrend = slices.Delete(r.FitnessTestTrend, i, i+1)
		recomputeFitness(r)
		return true
	})
}

func pick(v *float64, old float64) float64 {
	if v == nil || !finite(*v) || *v < 0 {
		return old
	}
	return *v
}
