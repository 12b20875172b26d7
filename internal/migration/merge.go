package migration

import (
	"asura/tracker/internal/domain"
)

// Merge applies a partial remote document onto base. Every top-level key
// present in partial replaces the one in base; absent keys are kept. The
// replaced values are backfilled like any stored document.
func Merge(base domain.Document, partial StoredDocument) domain.Document {
	next := base.Clone()
	filled := Backfill(partial)
	for _, k := range domain.CoreKeys {
		if *partial.record(k) != nil {
			r, _ := filled.Core(k)
			next.SetCore(k, r)
		}
	}
	if partial.CustomActivities != nil {
		next.CustomActivities = filled.CustomActivities
	}
	if partial.HiddenActivities != nil {
		next.HiddenActivities = filled.HiddenActivities
	}
	if partial.MinimalMode != nil {
		next.MinimalMode = filled.MinimalMode
	}
	if partial.DailyActivityNames != nil {
		next.DailyActivityNames = filled.DailyActivityNames
	}
	if partial.DailyActivityList != nil {
		next.DailyActivityList = filled.DailyActivityList
	}
	if partial.GymExerciseNames != nil {
		next.GymExerciseNames = filled.GymExerciseNames
	}
	if partial.GymExerciseCategories != nil {
		next.GymExerciseCategories = filled.GymExerciseCategories
	}
	if partial.GymExerciseProgress != nil {
		next.GymExerciseProgress = filled.GymExerciseProgress
	}
	return next
}

// Empty reports whether no top-level key is present.
func (s StoredDocument) Empty() bool {
	for _, k := range domain.CoreKeys {
		if *s.record(k) != nil {
			return false
		}
	}
	return s.CustomActivities == nil && s.HiddenActivities == nil && s.MinimalMode == nil &&
		s.DailyActivityNames == nil && s.DailyActivityList == nil &&
		s.GymExerciseNames == nil && s.GymExerciseCategories == nil && s.GymExerciseProgress == nil
}
