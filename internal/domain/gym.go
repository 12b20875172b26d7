package domain

import (
	"slices"
	"strings"
)

func UpdatePowerLiftName(d Document, ref Ref, i int, name string) (Document, bool) {
	if i < 0 || i > 3 || blank(name) {
		return d, false
	}
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		r.PowerLiftNames[i] = strings.TrimSpace(name)
		return true
	})
}

func UpdatePowerLiftWeight(d Document, ref Ref, i int, weight float64) (Document, bool) {
	if i < 0 || i > 3 || !positive(weight) {
		return d, false
	}
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		r.PowerLiftWeights[i] = round2(weight)
		return true
	})
}

// AddBodyWeight appends a weekly body weight measurement.
func AddBodyWeight(d Document, ref Ref, weight float64, label string, env Env) (Document, bool) {
	if !positive(weight) {
		return d, false
	}
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		trend := r.WeightTrend
		var lastTS *int64
		var lastLabel string
		if n := len(trend); n > 0 {
			lastTS, lastLabel = trend[n-1].TS, trend[n-1].Date
		}
		ts := nextStamp(env.Now, lastTS, lastLabel, len(trend) > 0, WeeklyInterval)
		r.WeightTrend = append(slices.Clone(trend), WeightEntry{
			Date:   pointLabel(label, ts, weeklyLabel),
			Weight: round2(weight),
			TS:     stamp(ts),
		})
		return true
	})
}

// UpdateBodyWeightAt replaces the weight when positive and the label when not blank.
func UpdateBodyWeightAt(d Document, ref Ref, i int, weight *float64, label string) (Document, bool) {
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		if i < 0 || i >= len(r.WeightTrend) {
			return false
		}
		cur := r.WeightTrend[i]
		if weight != nil && positive(*weight) {
			cur.Weight = round2(*weight)
		}
		if !blank(label) {
			cur.Date = label
		}
		r.WeightTrend[i] = cur
		return true
	})
}

func DeleteBodyWeightAt(d Document, ref Ref, i int) (Document, bool) {
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		if i < 0 || i >= len(r.WeightTrend) {
			return false
		}
		r.WeightTrend = slices.Delete(r.WeightTrend, i, i+1)
		return true
	})
}

// ExerciseID derives a catalog id from name: a slug of at most 40 characters
// followed by a random suffix.
func ExerciseID(name, suffix string) string {
	base := Slugify(name)
	if len(base) > 40 {
		base = base[:40]
	}
	if base == "" {
		base = "exercise"
	}
	return base + "-" + suffix
}

// AddGymExercise adds an exercise to the document catalog and returns its id.
// A blank name adds nothing and returns "". The progress series is created
// with the first logged weight.
func AddGymExercise(d Document, name string, category ExerciseCategory, env Env) (Document, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return d, ""
	}
	if !category.Valid() {
		category = CategoryOther
	}
	id := ExerciseID(name, env.suffix())
	next := d
	next.GymExerciseNames = cloneMap(d.GymExerciseNames)
	next.GymExerciseNames[id] = name
	next.GymExerciseCategories = cloneMap(d.GymExerciseCategories)
	next.GymExerciseCategories[id] = category
	return next, id
}

// UpdateExerciseName renames an exercise. The core gym activity keeps its
// catalog on the document; custom gym activities keep their own.
func UpdateExerciseName(d Document, ref Ref, id, name string) (Document, bool) {
	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return d, false
	}
	if ref.IsCore() {
		if ref.Core != Gym {
			return d, false
		}
		next := d
		next.GymExerciseNames = cloneMap(d.GymExerciseNames)
		next.GymExerciseNames[id] = name
		return next, true
	}
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		names := map[string]string{}
		if r.GymExerciseNames != nil {
			names = r.GymExerciseNames
		}
		names[id] = name
		r.GymExerciseNames = names
		return true
	})
}

func UpdateGymExerciseCategory(d Document, id string, category ExerciseCategory) (Document, bool) {
	if id == "" || !category.Valid() {
		return d, false
	}
	if _, ok := d.GymExerciseNames[id]; !ok {
		return d, false
	}
	next := d
	next.GymExerciseCategories = cloneMap(d.GymExerciseCategories)
	next.GymExerciseCategories[id] = category
	return next, true
}

// AddExerciseWeight logs a weekly working weight for an exercise.
func AddExerciseWeight(d Document, ref Ref, id string, weight float64, reps *int, label string, env Env) (Document, bool) {
	if id == "" || !positive(weight) {
		return d, false
	}
	if ref.IsCore() && ref.Core != Gym {
		return d, false
	}
	if _, ok := d.Record(ref); !ok {
		return d, false
	}
	appendTo := func(progress map[string][]ExerciseWeightEntry) map[string][]ExerciseWeightEntry {
		out := map[string][]ExerciseWeightEntry{}
		for k, v := range progress {
			out[k] = v
		}
		series := progress[id]
		var lastTS *int64
		var lastLabel string
		if n := len(series); n > 0 {
			lastTS, lastLabel = series[n-1].TS, series[n-1].Date
		}
		ts := nextStamp(env.Now, lastTS, lastLabel, len(series) > 0, WeeklyInterval)
		out[id] = append(slices.Clone(series), ExerciseWeightEntry{
			Date:   pointLabel(label, ts, weeklyLabel),
			Weight: round2(weight),
			Reps:   reps,
			TS:     stamp(ts),
		})
		return out
	}
	if ref.IsCore() {
		next := d
		next.GymExerciseProgress = appendTo(d.GymExerciseProgress)
		return next, true
	}
	return updateRecord(d, ref, func(r *ActivityRecord) bool {
		r.GymExerciseProgress = appendTo(r.GymExerciseProgress)
		return true
	})
}

// DefaultBodyWeight is assumed when no body weight has been logged.
const DefaultBodyWeight = 87.0

// BodyWeight returns the latest logged body weight.
func (r ActivityRecord) BodyWeight() float64 {
	if n := len(r.WeightTrend); n > 0 && r.WeightTrend[n-1].Weight > 0 {
		return r.WeightTrend[n-1].Weight
	}
	return DefaultBodyWeight
}

type levelRule struct {
	level      int
	bench      func(bw float64) float64
	squatRatio float64
	hipRatio   float64
}

func fixed(kg float64) func(float64) float64 { return func(float64) float64 { return kg } }
func relative(mul float64) func(float64) float64 { return func(bw float64) float64 { return mul * bw } }

var levelRules = []levelRule{
	{7, relative(1.75), 2.25, 3.5},
	{6, relative(1.5), 2.0, 3.0},
	{5, fixed(120), 1.75, 2.5},
	{4, fixed(100), 1.5, 2.0},
	{3, fixed(80), 1.25, 1.5},
	{2, fixed(60), 1.0, 1.0},
}

// GymLevel grades a record from 1 to 7 using the squat, bench and hip thrust
// weights relative to body weight. A level needs every threshold met.
func GymLevel(r ActivityRecord) int {
	bw := r.BodyWeight()
	squat, bench, hip := r.PowerLiftWeights[0], r.PowerLiftWeights[1], r.PowerLiftWeights[3]
	for _, rule := range levelRules {
		if bench >= rule.bench(bw) && squat/bw >= rule.squatRatio && hip/bw >= rule.hipRatio {
			return rule.level
		}
	}
	return 1
}
