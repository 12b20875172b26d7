package migration

import (
	"math"
	"strconv"
	"strings"

	"asura/tracker/internal/domain"
)

// Categories given to the legacy daily names when the list is rebuilt.
var legacyDailyCategories = []string{"Learning", "Learning", "Music", "Health", "Health"}

const fallbackDailyCategory = "General"

// Backfill defaults every absent field and converts legacy shapes. It is
// applied on every load and is idempotent.
func Backfill(s StoredDocument) domain.Document {
	d := domain.NewDocument()
	for _, k := range domain.CoreKeys {
		if r := *s.record(k); r != nil {
			d.SetCore(k, BackfillRecord(*r))
		}
	}

	for slug, c := range s.CustomActivities {
		entry := domain.CustomActivity{Name: c.Name, Template: c.Template, Data: domain.NewRecord()}
		if !entry.Template.Valid() {
			entry.Template = domain.TemplateNone
		}
		if entry.Name == "" {
			entry.Name = slug
		}
		if c.Data != nil {
			entry.Data = BackfillRecord(*c.Data)
		}
		d.CustomActivities[slug] = entry
	}
	for k, hidden := range s.HiddenActivities {
		if hidden && k.Valid() {
			d.HiddenActivities[k] = true
		}
	}
	if s.MinimalMode != nil {
		d.MinimalMode = *s.MinimalMode
	}

	if s.DailyActivityNames != nil {
		d.DailyActivityNames = append([]string{}, s.DailyActivityNames...)
	}
	if s.DailyActivityList != nil {
		d.DailyActivityList = append([]domain.DailyActivity{}, s.DailyActivityList...)
	} else {
		d.DailyActivityList = dailyListFromNames(d.DailyActivityNames)
	}

	for id, name := range s.GymExerciseNames {
		d.GymExerciseNames[id] = name
	}
	for id, c := range s.GymExerciseCategories {
		if !c.Valid() {
			c = domain.CategoryOther
		}
		d.GymExerciseCategories[id] = c
	}
	for id, series := range s.GymExerciseProgress {
		d.GymExerciseProgress[id] = exerciseSeries(series)
	}
	return d
}

func dailyListFromNames(names []string) []domain.DailyActivity {
	list := make([]domain.DailyActivity, 0, len(names))
	for i, n := range names {
		cat := fallbackDailyCategory
		if i < len(legacyDailyCategories) {
			cat = legacyDailyCategories[i]
		}
		list = append(list, domain.DailyActivity{ID: strconv.Itoa(i + 1), Name: n, Category: cat})
	}
	return list
}

// BackfillRecord converts one stored record, defaulting absent fields.
func BackfillRecord(s StoredRecord) domain.ActivityRecord {
	r := domain.NewRecord()
	r.TotalHours = num(s.TotalHours)
	r.ThisWeekSessions = count(s.ThisWeekSessions)
	r.CurrentStreak = count(s.CurrentStreak)
	if s.LastSession != nil {
		v := *s.LastSession
		r.LastSession = &v
	}

	r.FitnessTestHighest = count(s.FitnessTestHighest)
	r.FitnessTestThisMonth = count(s.FitnessTestThisMonth)
	for _, p := range s.FitnessTestTrend {
		r.FitnessTestTrend = append(r.FitnessTestTrend, domain.FitnessScore{
			Date:  p.Date,
			Score: count(&p.Score),
			TS:    millis(p.TS),
		})
	}
	if n := len(r.FitnessTestTrend); n > 0 {
		highest := r.FitnessTestHighest
		domain.RecomputeFitness(&r)
		r.FitnessTestHighest = max(highest, r.FitnessTestHighest)
	}

	r.BoxingTapeHours = num(s.BoxingTapeHours)
	r.KickboxingTapeHours = num(s.KickboxingTapeHours)
	switch {
	case s.MMATapeHours != nil:
		r.MMATapeHours = num(s.MMATapeHours)
	case s.FightTapeHours != nil:
		r.MMATapeHours = num(s.FightTapeHours)
	}
	for _, e := range s.BoxingTapeTrend {
		r.BoxingTapeTrend = append(r.BoxingTapeTrend, domain.TapeEntry{
			Date:       e.Date,
			TS:         millis(e.TS),
			Boxing:     hours(e.Boxing),
			Kickboxing: hours(e.Kickboxing),
			MMA:        hours(e.MMA),
		})
	}

	r.TotalFights = count(s.TotalFights)
	r.Wins = count(s.Wins)
	r.Losses = count(s.Losses)
	r.Draws = count(s.Draws)

	for i := range r.PowerLiftNames {
		if i < len(s.PowerLiftNames) && strings.TrimSpace(s.PowerLiftNames[i]) != "" {
			r.PowerLiftNames[i] = s.PowerLiftNames[i]
		}
		if i < len(s.PowerLiftWeights) && finite(s.PowerLiftWeights[i]) {
			r.PowerLiftWeights[i] = s.PowerLiftWeights[i]
		}
	}
	for _, w := range s.WeightTrend {
		r.WeightTrend = append(r.WeightTrend, domain.WeightEntry{Date: w.Date, Weight: w.Weight, TS: millis(w.TS)})
	}

	r.TotalConcerts = count(s.TotalConcerts)
	r.BooksRead = count(s.BooksRead)
	if g := count(s.DailyGoalMinutes); g > 0 {
		r.DailyGoalMinutes = g
	}
	r.TodayMinutes = count(s.TodayMinutes)
	if s.TodayDate != nil {
		r.TodayDate = *s.TodayDate
	}

	if len(s.GymExerciseNames) > 0 {
		r.GymExerciseNames = make(map[string]string, len(s.GymExerciseNames))
		for id, name := range s.GymExerciseNames {
			r.GymExerciseNames[id] = name
		}
	}
	if len(s.GymExerciseProgress) > 0 {
		r.GymExerciseProgress = make(map[string][]domain.ExerciseWeightEntry, len(s.GymExerciseProgress))
		for id, series := range s.GymExerciseProgress {
			r.GymExerciseProgress[id] = exerciseSeries(series)
		}
	}
	return r
}

func exerciseSeries(in []StoredExerciseWeight) []domain.ExerciseWeightEntry {
	out := make([]domain.ExerciseWeightEntry, 0, len(in))
	for _, e := range in {
		entry := domain.ExerciseWeightEntry{Date: e.Date, Weight: e.Weight, TS: millis(e.TS)}
		if e.Reps != nil && finite(*e.Reps) {
			reps := int(math.Round(*e.Reps))
			entry.Reps = &reps
		}
		out = append(out, entry)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func num(v *float64) float64 {
	if v == nil || !finite(*v) {
		return 0
	}
	return *v
}

func count(v *float64) int {
	return int(math.Round(num(v)))
}

func hours(v *float64) *float64 {
	if h := num(v); h > 0 {
		return &h
	}
	return nil
}

func millis(v *float64) *int64 {
	if v == nil || !finite(*v) {
		return nil
	}
	ms := int64(*v)
	return &ms
}
