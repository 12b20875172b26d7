package migration

import (
	"time"

	"asura/tracker/internal/domain"
	"asura/tracker/internal/seed"
)

// Migrate upgrades a document stored at fromVersion. Documents older than
// CurrentVersion first get the profile's upgrade policy; every document is
// then backfilled. Running it again on its own output changes nothing.
func Migrate(s StoredDocument, fromVersion int, profile *seed.Profile, now time.Time) domain.Document {
	if fromVersion < CurrentVersion && profile != nil {
		s = applyPolicy(s, profile, now)
	}
	return Backfill(s)
}

func applyPolicy(s StoredDocument, p *seed.Profile, now time.Time) StoredDocument {
	policy := p.Migration
	for _, k := range domain.CoreKeys {
		slot := s.record(k)
		if *slot == nil {
			continue
		}
		r := **slot
		if def, ok := policy.Defaults[k]; ok {
			fillAbsent(&r, def)
		}
		if floor, ok := policy.HoursFloor[k]; ok && r.TotalHours != nil && *r.TotalHours < floor {
			r.TotalHours = ptr(floor)
		}
		if fixed, ok := policy.HoursFixed[k]; ok {
			r.TotalHours = ptr(fixed)
		}
		if floor, ok := policy.ConcertsFloor[k]; ok && (r.TotalConcerts == nil || *r.TotalConcerts < float64(floor)) {
			r.TotalConcerts = ptr(float64(floor))
		}
		*slot = &r
	}
	for _, k := range policy.CreateMissing {
		if slot := s.record(k); slot != nil && *slot == nil {
			*slot = storedRecord(p.Record(k))
		}
	}

	if policy.ReseedFitnessTrend && s.Boxing != nil && len(s.Boxing.FitnessTestTrend) == 0 && len(p.FitnessTestScores) > 0 {
		b := *s.Boxing
		b.FitnessTestTrend = nil
		for _, pt := range seed.FitnessTrend(p.FitnessTestScores, now) {
			b.FitnessTestTrend = append(b.FitnessTestTrend, StoredScore{
				Date:  pt.Date,
				Score: float64(pt.Score),
				TS:    ptr(float64(*pt.TS)),
			})
		}
		s.Boxing = &b
	}

	if s.DailyActivityNames == nil && s.DailyActivityList == nil {
		s.DailyActivityList, s.DailyActivityNames = p.DailyLists()
	} else if s.DailyActivityNames == nil {
		_, s.DailyActivityNames = p.DailyLists()
	}
	names, cats := p.Catalog()
	if s.GymExerciseNames == nil {
		s.GymExerciseNames = names
	}
	if s.GymExerciseCategories == nil {
		s.GymExerciseCategories = cats
	}
	return s
}

func fillAbsent(r *StoredRecord, def seed.RecordSeed) {
	fillF(&r.TotalHours, def.TotalHours)
	fillI(&r.ThisWeekSessions, def.ThisWeekSessions)
	fillI(&r.CurrentStreak, def.CurrentStreak)
	fillI(&r.FitnessTestHighest, def.FitnessTestHighest)
	fillI(&r.TotalFights, def.TotalFights)
	fillI(&r.Wins, def.Wins)
	fillI(&r.Losses, def.Losses)
	fillI(&r.Draws, def.Draws)
	fillI(&r.TotalConcerts, def.TotalConcerts)
	fillI(&r.BooksRead, def.BooksRead)
	if r.PowerLiftNames == nil && def.PowerLiftNames != nil {
		r.PowerLiftNames = append([]string{}, def.PowerLiftNames...)
	}
	if r.PowerLiftWeights == nil && def.PowerLiftWeights != nil {
		r.PowerLiftWeights = append([]float64{}, def.PowerLiftWeights...)
	}
}

func fillF(dst **float64, v *float64) {
	if *dst == nil && v != nil {
		*dst = ptr(*v)
	}
}

func fillI(dst **float64, v *int) {
	if *dst == nil && v != nil {
		*dst = ptr(float64(*v))
	}
}

func ptr[T any](v T) *T { return &v }
