package domain

import "slices"

// CoreKey identifies one of the built-in activities.
type CoreKey string

const (
	Boxing  CoreKey = "boxing"
	Gym     CoreKey = "gym"
	Oud     CoreKey = "oud"
	Violin  CoreKey = "violin"
	Spanish CoreKey = "spanish"
	German  CoreKey = "german"
)

// CoreKeys lists the built-in activities in display order.
var CoreKeys = []CoreKey{Boxing, Gym, Oud, Violin, Spanish, German}

func (k CoreKey) Valid() bool {
	return slices.Contains(CoreKeys, k)
}

// Template decides which family-specific fields a custom activity uses.
type Template string

const (
	TemplateNone     Template = "none"
	TemplateBoxing   Template = "boxing"
	TemplateGym      Template = "gym"
	TemplateMusic    Template = "music"
	TemplateLanguage Template = "language"
)

func (t Template) Valid() bool {
	switch t {
	case TemplateNone, TemplateBoxing, TemplateGym, TemplateMusic, TemplateLanguage:
		return true
	}
	return false
}

// Family returns the template a core activity behaves like.
func (k CoreKey) Family() Template {
	switch k {
	case Boxing:
		return TemplateBoxing
	case Gym:
		return TemplateGym
	case Oud, Violin:
		return TemplateMusic
	case Spanish, German:
		return TemplateLanguage
	}
	return TemplateNone
}

type FightResult string

const (
	FightWin  FightResult = "win"
	FightLoss FightResult = "loss"
	FightDraw FightResult = "draw"
)

// TapeKind selects one of the three tape study totals.
type TapeKind string

const (
	TapeBoxing     TapeKind = "boxing"
	TapeKickboxing TapeKind = "kickboxing"
	TapeMMA        TapeKind = "mma"
)

type ExerciseCategory string

const (
	CategoryPush  ExerciseCategory = "push"
	CategoryPull  ExerciseCategory = "pull"
	CategoryLegs  ExerciseCategory = "legs"
	CategoryOther ExerciseCategory = "other"
)

func (c ExerciseCategory) Valid() bool {
	switch c {
	case CategoryPush, CategoryPull, CategoryLegs, CategoryOther:
		return true
	}
	return false
}

// DefaultPowerLiftNames are the four tracked lifts: squat, bench, row, hip thrust.
var DefaultPowerLiftNames = [4]string{"Squats", "Bench Press", "Rows / Lat Pulldowns", "Hip Thrusts"}

const DefaultDailyGoalMinutes = 30

// FitnessScore is one point of the monthly fitness test series.
type FitnessScore struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	TS    *int64 `json:"ts,omitempty"`
}

// TapeEntry is one weekly tape study log. Zero values are stored as absent.
type TapeEntry struct {
	Date       string   `json:"date"`
	TS         *int64   `json:"ts,omitempty"`
	Boxing     *float64 `json:"boxing,omitempty"`
	Kickboxing *float64 `json:"kickboxing,omitempty"`
	MMA        *float64 `json:"mma,omitempty"`
}

// Hours returns the entry's contribution to each tape total.
func (e TapeEntry) Hours() (boxing, kickboxing, mma float64) {
	return deref(e.Boxing), deref(e.Kickboxing), deref(e.MMA)
}

type WeightEntry struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	TS     *int64  `json:"ts,omitempty"`
}

type ExerciseWeightEntry struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	Reps   *int    `json:"reps"`
	TS     *int64  `json:"ts,omitempty"`
}

// ActivityRecord holds the metrics of one core or custom activity. Every
// field is present after migration; family-specific fields stay at zero for
// activities that do not use them.
type ActivityRecord struct {
	TotalHours       float64 `json:"totalHours"`
	ThisWeekSessions int     `json:"thisWeekSessions"`
	CurrentStreak    int     `json:"currentStreak"`
	LastSession      *string `json:"lastSession"`

	FitnessTestHighest   int            `json:"fitnessTestHighest"`
	FitnessTestThisMonth int            `json:"fitnessTestThisMonth"`
	FitnessTestTrend     []FitnessScore `json:"fitnessTestTrend"`

	BoxingTapeHours     float64     `json:"boxingTapeHours"`
	KickboxingTapeHours float64     `json:"kickboxingTapeHours"`
	MMATapeHours        float64     `json:"mmaTapeHours"`
	BoxingTapeTrend     []TapeEntry `json:"boxingTapeTrend"`

	TotalFights int `json:"totalFights"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Draws       int `json:"draws"`

	PowerLiftNames   [4]string     `json:"powerLiftNames"`
	PowerLiftWeights [4]float64    `json:"powerLiftWeights"`
	WeightTrend      []WeightEntry `json:"weightTrend"`

	TotalConcerts int `json:"totalConcerts"`
	BooksRead     int `json:"booksRead"`

	DailyGoalMinutes int    `json:"dailyGoalMinutes"`
	TodayMinutes     int    `json:"todayMinutes"`
	TodayDate        string `json:"todayDate"`

	// Exercise catalog of custom gym-template activities. The core gym
	// activity uses the document-level catalog instead.
	GymExerciseNames    map[string]string                `json:"gymExerciseNames,omitempty"`
	GymExerciseProgress map[string][]ExerciseWeightEntry `json:"gymExerciseProgress,omitempty"`
}

// NewRecord returns a zeroed record with the default lift names.
func NewRecord() ActivityRecord {
	return ActivityRecord{
		FitnessTestTrend: []FitnessScore{},
		BoxingTapeTrend:  []TapeEntry{},
		PowerLiftNames:   DefaultPowerLiftNames,
		WeightTrend:      []WeightEntry{},
		DailyGoalMinutes: DefaultDailyGoalMinutes,
	}
}

// Clone returns a deep copy.
func (r ActivityRecord) Clone() ActivityRecord {
	c := r
	if r.LastSession != nil {
		s := *r.LastSession
		c.LastSession = &s
	}
	c.FitnessTestTrend = slices.Clone(r.FitnessTestTrend)
	c.BoxingTapeTrend = slices.Clone(r.BoxingTapeTrend)
	c.WeightTrend = slices.Clone(r.WeightTrend)
	if r.GymExerciseNames != nil {
		c.GymExerciseNames = cloneMap(r.GymExerciseNames)
	}
	if r.GymExerciseProgress != nil {
		c.GymExerciseProgress = cloneProgress(r.GymExerciseProgress)
	}
	return c
}

// CustomActivity is a user-defined activity keyed by its slug.
type CustomActivity struct {
	Name     string         `json:"name"`
	Template Template       `json:"template"`
	Data     ActivityRecord `json:"data"`
}

// DailyActivity is one item of the daily checklist.
type DailyActivity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneProgress(m map[string][]ExerciseWeightEntry) map[string][]ExerciseWeightEntry {
	out := make(map[string][]ExerciseWeightEntry, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}
