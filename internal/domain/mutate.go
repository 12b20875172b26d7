package domain

import (
	"strings"
)

// Mutations are pure transitions: they return the next document and whether
// anything changed. Invalid input never panics or errors; it returns the
// input document and false.

// updateRecord applies fn to a copy of the referenced record and returns a
// new document holding it. The remaining records are shared with d.
func updateRecord(d Document, ref Ref, fn func(r *ActivityRecord) bool) (Document, bool) {
	r, ok := d.Record(ref)
	if !ok {
		return d, false
	}
	r = r.Clone()
	if !fn(&r) {
		return d, false
	}
	next := d
	if ref.IsCore() {
		*next.core(ref.Core) = r
		return next, true
	}
	next.CustomActivities = cloneMap(d.CustomActivities)
	entry := next.CustomActivities[ref.Slug]
	entry.Data = r
	next.CustomActivities[ref.Slug] = entry
	return next, true
}

// AddHours logs a session of the given length.
func AddHours(d Document, ref Ref, hours float64, env Env) (Document, bool) {
	if !positive(hours) {
		return d, false
	}
	today := env.Today()
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		r.TotalHours = round2(r.TotalHours + round2(hours))
		r.ThisWeekSessions++
		if r.LastSession == nil || *r.LastSession != today {
			r.CurrentStreak++
		}
		r.LastSession = &today
		return true
	})
}

// SetTotalHours overwrites the total, e.g. to correct a mistake.
func SetTotalHours(d Document, ref Ref, hours float64) (Document, bool) {
	if !finite(hours) || hours < 0 {
		return d, false
	}
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		r.TotalHours = round2(hours)
		return true
	})
}

func RecordFightResult(d Document, ref Ref, result FightResult, env Env) (Document, bool) {
	switch result {
	case FightWin, FightLoss, FightDraw:
	default:
		return d, false
	}
	today := env.Today()
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		r.TotalFights++
		switch result {
		case FightWin:
			r.Wins++
		case FightLoss:
			r.Losses++
		case FightDraw:
			r.Draws++
		}
		r.LastSession = &today
		return true
	})
}

func AddConcert(d Document, ref Ref, env Env) (Document, bool) {
	today := env.Today()
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		r.TotalConcerts++
		r.LastSession = &today
		return true
	})
}

func SetBooksRead(d Document, ref Ref, count float64) (Document, bool) {
	if !finite(count) {
		return d, false
	}
	n := max(0, int(count))
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		r.BooksRead = n
		return true
	})
}

func SetDailyGoal(d Document, ref Ref, minutes int) (Document, bool) {
	if minutes <= 0 {
		return d, false
	}
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		r.DailyGoalMinutes = minutes
		return true
	})
}

// AddTodayMinutes adds to today's practice minutes, starting over on a new day.
func AddTodayMinutes(d Document, ref Ref, minutes int, env Env) (Document, bool) {
	if minutes <= 0 {
		return d, false
	}
	today := env.Today()
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		if r.TodayDate != today {
			r.TodayDate = today
			r.TodayMinutes = 0
		}
		r.TodayMinutes += minutes
		return true
	})
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
