package store

import (
	"asura/tracker/internal/domain"
)

// Each method reports whether the document changed.

func (s *Store) AddHours(ref domain.Ref, hours float64) bool {
	return s.apply("add_hours", func(d domain.Document, env domain.Env) (domain.Document, bool) {
		return domain.AddHours(d, ref, hours, env)
	})
}

func (s *Store) SetTotalHours(ref domain.Ref, hours float64) bool {
	return s.apply("set_total_hours", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.SetTotalHours(d, ref, hours)
	})
}

func (s *Store) RecordFightResult(ref domain.Ref, result domain.FightResult) bool {
	return s.apply("record_fight", func(d domain.Document, env domain.Env) (domain.Document, bool) {
		return domain.RecordFightResult(d, ref, result, env)
	})
}

func (s *Store) AddConcert(ref domain.Ref) bool {
	return s.apply("add_concert", func(d domain.Document, env domain.Env) (domain.Document, bool) {
		return domain.AddConcert(d, ref, env)
	})
}

func (s *Store) AddTapeHours(ref domain.Ref, kind domain.TapeKind, hours float64) bool {
	return s.apply("add_tape_hours", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.AddTapeHours(d, ref, kind, hours)
	})
}

func (s *Store) AddTapeEntry(ref domain.Ref, boxing, kickboxing, mma float64, label string) bool {
	return s.apply("add_tape_entry", func(d domain.Document, env domain.Env) (domain.Document, bool) {
		return domain.AddTapeEntry(d, ref, boxing, kickboxing, mma, label, env)
	})
}

func (s *Store) UpdateTapeEntryAt(ref domain.Ref, i int, boxing, kickboxing, mma *float64, label string) bool {
	return s.apply("update_tape_entry", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.UpdateTapeEntryAt(d, ref, i, boxing, kickboxing, mma, label)
	})
}

func (s *Store) DeleteTapeEntryAt(ref domain.Ref, i int) bool {
	return s.apply("delete_tape_entry", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.DeleteTapeEntryAt(d, ref, i)
	})
}

func (s *Store) ResetTape(ref domain.Ref) bool {
	return s.apply("reset_tape", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.ResetTape(d, ref)
	})
}

func (s *Store) AddFitnessScore(ref domain.Ref, score float64, label string) bool {
	return s.apply("add_fitness_score", func(d domain.Document, env domain.Env) (domain.Document, bool) {
		return domain.AddFitnessScore(d, ref, score, label, env)
	})
}

func (s *Store) UpdateFitnessScoreAt(ref domain.Ref, i int, score *float64, label string) bool {
	return s.apply("update_fitness_score", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.UpdateFitnessScoreAt(d, ref, i, score, label)
	})
}

func (s *Store) DeleteFitnessScoreAt(ref domain.Ref, i int) bool {
	return s.apply("delete_fitness_score", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.DeleteFitnessScoreAt(d, ref, i)
	})
}

func (s *Store) UpdatePowerLiftName(ref domain.Ref, i int, name string) bool {
	return s.apply("update_lift_name", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.UpdatePowerLiftName(d, ref, i, name)
	})
}

func (s *Store) UpdatePowerLiftWeight(ref domain.Ref, i int, weight float64) bool {
	return s.apply("update_lift_weight", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.UpdatePowerLiftWeight(d, ref, i, weight)
	})
}

func (s *Store) AddBodyWeight(ref domain.Ref, weight float64, label string) bool {
	return s.apply("add_body_weight", func(d domain.Document, env domain.Env) (domain.Document, bool) {
		return domain.AddBodyWeight(d, ref, weight, label, env)
	})
}

func (s *Store) UpdateBodyWeightAt(ref domain.Ref, i int, weight *float64, label string) bool {
	return s.apply("update_body_weight", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.UpdateBodyWeightAt(d, ref, i, weight, label)
	})
}

func (s *Store) DeleteBodyWeightAt(ref domain.Ref, i int) bool {
	return s.apply("delete_body_weight", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.DeleteBodyWeightAt(d, ref, i)
	})
}

func (s *Store) AddCustomActivity(slug, name string, template domain.Template) bool {
	return s.apply("add_custom_activity", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.AddCustomActivity(d, slug, name, template)
	})
}

func (s *Store) DeleteCustomActivity(slug string) bool {
	return s.apply("delete_custom_activity", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.DeleteCustomActivity(d, slug)
	})
}

func (s *Store) HideActivity(key domain.CoreKey) bool {
	return s.apply("hide_activity", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.HideActivity(d, key)
	})
}

func (s *Store) RestoreActivity(key domain.CoreKey) bool {
	return s.apply("restore_activity", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.RestoreActivity(d, key)
	})
}

func (s *Store) SetMinimalMode(on bool) bool {
	return s.apply("set_minimal_mode", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.SetMinimalMode(d, on)
	})
}

func (s *Store) UpdateDailyActivityName(i int, name string) bool {
	return s.apply("update_daily_name", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.UpdateDailyActivityName(d, i, name)
	})
}

func (s *Store) AddDailyActivity(name, category string) bool {
	return s.apply("add_daily_activity", func(d domain.Document, env domain.Env) (domain.Document, bool) {
		return domain.AddDailyActivity(d, name, category, env)
	})
}

func (s *Store) RemoveDailyActivity(id string) bool {
	return s.apply("remove_daily_activity", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.RemoveDailyActivity(d, id)
	})
}

func (s *Store) RenameDailyActivity(id, name string) bool {
	return s.apply("rename_daily_activity", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.RenameDailyActivity(d, id, name)
	})
}

// AddGymExercise returns the new exercise id, or "" for a blank name.
func (s *Store) AddGymExercise(name string, category domain.ExerciseCategory) string {
	var id string
	s.apply("add_gym_exercise", func(d domain.Document, env domain.Env) (domain.Document, bool) {
		var next domain.Document
		next, id = domain.AddGymExercise(d, name, category, env)
		return next, id != ""
	})
	return id
}

func (s *Store) UpdateExerciseName(ref domain.Ref, id, name string) bool {
	return s.apply("update_exercise_name", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.UpdateExerciseName(d, ref, id, name)
	})
}

func (s *Store) UpdateGymExerciseCategory(id string, category domain.ExerciseCategory) bool {
	return s.apply("update_exercise_category", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.UpdateGymExerciseCategory(d, id, category)
	})
}

func (s *Store) AddExerciseWeight(ref domain.Ref, id string, weight float64, reps *int, label string) bool {
	return s.apply("add_exercise_weight", func(d domain.Document, env domain.Env) (domain.Document, bool) {
		return domain.AddExerciseWeight(d, ref, id, weight, reps, label, env)
	})
}

func (s *Store) SetDailyGoal(ref domain.Ref, minutes int) bool {
	return s.apply("set_daily_goal", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.SetDailyGoal(d, ref, minutes)
	})
}

func (s *Store) AddTodayMinutes(ref domain.Ref, minutes int) bool {
	return s.apply("add_today_minutes", func(d domain.Document, env domain.Env) (domain.Document, bool) {
		return domain.AddTodayMinutes(d, ref, minutes, env)
	})
}

func (s *Store) SetBooksRead(ref domain.Ref, count float64) bool {
	return s.apply("set_books_read", func(d domain.Document, _ domain.Env) (domain.Document, bool) {
		return domain.SetBooksRead(d, ref, count)
	})
}

// GymLevel grades the referenced activity's strength numbers.
func (s *Store) GymLevel(ref domain.Ref) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.doc.Record(ref)
	if !ok {
		return 0, false
	}
	return domain.GymLevel(r), true
}
