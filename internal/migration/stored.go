// Package migration turns documents written by any version of the format
// into a domain.Document with every field present.
package migration

import (
	"encoding/json"
	"fmt"

	"asura/tracker/internal/domain"
)

// CurrentVersion is stamped on every document written by this code.
const CurrentVersion = 12

// StoredRecord is an activity record as found on disk or on the wire. A nil
// field was absent from the source.
type StoredRecord struct {
	TotalHours       *float64 `json:"totalHours,omitempty"`
	ThisWeekSessions *float64 `json:"thisWeekSessions,omitempty"`
	CurrentStreak    *float64 `json:"currentStreak,omitempty"`
	LastSession      *string  `json:"lastSession,omitempty"`

	FitnessTestHighest   *float64      `json:"fitnessTestHighest,omitempty"`
	FitnessTestThisMonth *float64      `json:"fitnessTestThisMonth,omitempty"`
	FitnessTestTrend     []StoredScore `json:"fitnessTestTrend,omitempty"`

	BoxingTapeHours     *float64     `json:"boxingTapeHours,omitempty"`
	KickboxingTapeHours *float64     `json:"kickboxingTapeHours,omitempty"`
	MMATapeHours        *float64     `json:"mmaTapeHours,omitempty"`
	FightTapeHours      *float64     `json:"fightTapeHours,omitempty"` // renamed to mmaTapeHours
	BoxingTapeTrend     []StoredTape `json:"boxingTapeTrend,omitempty"`

	TotalFights *float64 `json:"totalFights,omitempty"`
	Wins        *float64 `json:"wins,omitempty"`
	Losses      *float64 `json:"losses,omitempty"`
	Draws       *float64 `json:"draws,omitempty"`

	PowerLiftNames   []string       `json:"powerLiftNames,omitempty"`
	PowerLiftWeights []float64      `json:"powerLiftWeights,omitempty"`
	WeightTrend      []StoredWeight `json:"weightTrend,omitempty"`

	TotalConcerts *float64 `json:"totalConcerts,omitempty"`
	BooksRead     *float64 `json:"booksRead,omitempty"`

	DailyGoalMinutes *float64 `json:"dailyGoalMinutes,omitempty"`
	TodayMinutes     *float64 `json:"todayMinutes,omitempty"`
	TodayDate        *string  `json:"todayDate,omitempty"`

	GymExerciseNames    map[string]string                 `json:"gymExerciseNames,omitempty"`
	GymExerciseProgress map[string][]StoredExerciseWeight `json:"gymExerciseProgress,omitempty"`
}

type StoredScore struct {
	Date  string   `json:"date"`
	Score float64  `json:"score"`
	TS    *float64 `json:"ts,omitempty"`
}

type StoredTape struct {
	Date       string   `json:"date"`
	TS         *float64 `json:"ts,omitempty"`
	Boxing     *float64 `json:"boxing,omitempty"`
	Kickboxing *float64 `json:"kickboxing,omitempty"`
	MMA        *float64 `json:"mma,omitempty"`
}

type StoredWeight struct {
	Date   string   `json:"date"`
	Weight float64  `json:"weight"`
	TS     *float64 `json:"ts,omitempty"`
}

type StoredExerciseWeight struct {
	Date   string   `json:"date"`
	Weight float64  `json:"weight"`
	Reps   *float64 `json:"reps,omitempty"`
	TS     *float64 `json:"ts,omitempty"`
}

type StoredCustom struct {
	Name     string          `json:"name"`
	Template domain.Template `json:"template"`
	Data     *StoredRecord   `json:"data,omitempty"`
}

// StoredDocument is the document as found on disk or on the wire. Nil
// top-level fields were absent.
type StoredDocument struct {
	Boxing  *StoredRecord `json:"boxing,omitempty"`
	Gym     *StoredRecord `json:"gym,omitempty"`
	Oud     *StoredRecord `json:"oud,omitempty"`
	Violin  *StoredRecord `json:"violin,omitempty"`
	Spanish *StoredRecord `json:"spanish,omitempty"`
	German  *StoredRecord `json:"german,omitempty"`

	CustomActivities map[string]StoredCustom `json:"customActivities,omitempty"`
	HiddenActivities map[domain.CoreKey]bool `json:"hiddenActivities,omitempty"`
	MinimalMode      *bool                   `json:"minimalMode,omitempty"`

	DailyActivityNames []string               `json:"dailyActivityNames,omitempty"`
	DailyActivityList  []domain.DailyActivity `json:"dailyActivityList,omitempty"`

	GymExerciseNames      map[string]string                  `json:"gymExerciseNames,omitempty"`
	GymExerciseCategories map[string]domain.ExerciseCategory `json:"gymExerciseCategories,omitempty"`
	GymExerciseProgress   map[string][]StoredExerciseWeight  `json:"gymExerciseProgress,omitempty"`
}

func (s *StoredDocument) record(k domain.CoreKey) **StoredRecord {
	switch k {
	case domain.Boxing:
		return &s.Boxing
	case domain.Gym:
		return &s.Gym
	case domain.Oud:
		return &s.Oud
	case domain.Violin:
		return &s.Violin
	case domain.Spanish:
		return &s.Spanish
	case domain.German:
		return &s.German
	}
	return nil
}

// Decode parses a serialized document of any version.
func Decode(raw []byte) (StoredDocument, error) {
	var s StoredDocument
	if err := json.Unmarshal(raw, &s); err != nil {
		return StoredDocument{}, fmt.Errorf("decode document: %w", err)
	}
	return s, nil
}

// Stored converts a document back to its stored form.
func Stored(d domain.Document) (StoredDocument, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return StoredDocument{}, fmt.Errorf("encode document: %w", err)
	}
	return Decode(raw)
}

func storedRecord(r domain.ActivityRecord) *StoredRecord {
	raw, err := json.Marshal(r)
	if err != nil {
		return &StoredRecord{}
	}
	var s StoredRecord
	if err := json.Unmarshal(raw, &s); err != nil {
		return &StoredRecord{}
	}
	return &s
}
