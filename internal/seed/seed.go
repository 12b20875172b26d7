// Package seed holds the baseline documents new accounts and fresh clients
// start from, and the per-profile policy applied when an older stored
// document is upgraded.
package seed

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"asura/tracker/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var builtin embed.FS

const (
	Minimal = "minimal"
	Demo    = "demo"
)

var ErrUnknownProfile = errors.New("unknown seed profile")

// RecordSeed sets selected fields of an activity record. Nil fields are left
// at their zero value.
type RecordSeed struct {
	TotalHours         *float64  `yaml:"totalHours"`
	ThisWeekSessions   *int      `yaml:"thisWeekSessions"`
	CurrentStreak      *int      `yaml:"currentStreak"`
	FitnessTestHighest *int      `yaml:"fitnessTestHighest"`
	TotalFights        *int      `yaml:"totalFights"`
	Wins               *int      `yaml:"wins"`
	Losses             *int      `yaml:"losses"`
	Draws              *int      `yaml:"draws"`
	TotalConcerts      *int      `yaml:"totalConcerts"`
	BooksRead          *int      `yaml:"booksRead"`
	PowerLiftNames     []string  `yaml:"powerLiftNames"`
	PowerLiftWeights   []float64 `yaml:"powerLiftWeights"`
}

// Apply copies the set fields onto r.
func (s RecordSeed) Apply(r *domain.ActivityRecord) {
	setF(&r.TotalHours, s.TotalHours)
	setI(&r.ThisWeekSessions, s.ThisWeekSessions)
	setI(&r.CurrentStreak, s.CurrentStreak)
	setI(&r.FitnessTestHighest, s.FitnessTestHighest)
	setI(&r.TotalFights, s.TotalFights)
	setI(&r.Wins, s.Wins)
	setI(&r.Losses, s.Losses)
	setI(&r.Draws, s.Draws)
	setI(&r.TotalConcerts, s.TotalConcerts)
	setI(&r.BooksRead, s.BooksRead)
	copy(r.PowerLiftNames[:], s.PowerLiftNames)
	copy(r.PowerLiftWeights[:], s.PowerLiftWeights)
}

type Exercise struct {
	ID       string                  `yaml:"id"`
	Name     string                  `yaml:"name"`
	Category domain.ExerciseCategory `yaml:"category"`
}

// Policy is applied by the migration engine to documents stored by an older
// version of the format.
type Policy struct {
	// Defaults fill record fields that are absent from the stored document.
	Defaults map[domain.CoreKey]RecordSeed `yaml:"defaults"`
	// HoursFloor raises stored totals below the given minimum.
	HoursFloor map[domain.CoreKey]float64 `yaml:"hoursFloor"`
	// HoursFixed overwrites stored totals.
	HoursFixed    map[domain.CoreKey]float64 `yaml:"hoursFixed"`
	ConcertsFloor map[domain.CoreKey]int     `yaml:"concertsFloor"`
	// ReseedFitnessTrend replaces an empty boxing fitness trend with the
	// profile's scores.
	ReseedFitnessTrend bool `yaml:"reseedFitnessTrend"`
	// CreateMissing lists core records rebuilt from the profile when absent.
	CreateMissing []domain.CoreKey `yaml:"createMissing"`
}

// Profile is a named baseline document plus its migration policy.
type Profile struct {
	Name              string                        `yaml:"name"`
	Records           map[domain.CoreKey]RecordSeed `yaml:"records"`
	FitnessTestScores []int                         `yaml:"fitnessTestScores"`
	Hidden            []domain.CoreKey              `yaml:"hidden"`
	MinimalMode       bool                          `yaml:"minimalMode"`
	DailyActivities   []domain.DailyActivity        `yaml:"dailyActivities"`
	Exercises         []Exercise                    `yaml:"exercises"`
	Migration         Policy                        `yaml:"migration"`
}

// Load returns a built-in profile by name, or reads a YAML profile from path.
func Load(nameOrPath string) (*Profile, error) {
	if nameOrPath == "" {
		nameOrPath = Minimal
	}
	var (
		raw []byte
		err error
	)
	if strings.HasSuffix(nameOrPath, ".yaml") || strings.HasSuffix(nameOrPath, ".yml") {
		raw, err = os.ReadFile(nameOrPath)
	} else {
		raw, err = builtin.ReadFile("profiles/" + nameOrPath + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, nameOrPath)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("read seed profile: %w", err)
	}
	return Parse(raw)
}

// MustLoad is Load for built-in profiles known to exist.
func MustLoad(name string) *Profile {
	p, err := Load(name)
	if err != nil {
		panic(err)
	}
	return p
}

func Parse(raw []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse seed profile: %w", err)
	}
	for k := range p.Records {
		if !k.Valid() {
			return nil, fmt.Errorf("parse seed profile: unknown activity %q", k)
		}
	}
	for _, e := range p.Exercises {
		if e.ID == "" || !e.Category.Valid() {
			return nil, fmt.Errorf("parse seed profile: invalid exercise %q", e.ID)
		}
	}
	return &p, nil
}

// Record returns the profile's starting record for a core activity.
func (p *Profile) Record(k domain.CoreKey) domain.ActivityRecord {
	r := domain.NewRecord()
	p.Records[k].Apply(&r)
	return r
}

// Document builds the profile's baseline document. now anchors the seeded
// fitness trend.
func (p *Profile) Document(now time.Time) domain.Document {
	d := domain.NewDocument()
	for _, k := range domain.CoreKeys {
		d.SetCore(k, p.Record(k))
	}
	if len(p.FitnessTestScores) > 0 {
		d.Boxing.FitnessTestTrend = FitnessTrend(p.FitnessTestScores, now)
		seeded := d.Boxing.FitnessTestHighest
		domain.RecomputeFitness(&d.Boxing)
		d.Boxing.FitnessTestHighest = max(seeded, d.Boxing.FitnessTestHighest)
	}
	for _, k := range p.Hidden {
		d.HiddenActivities[k] = true
	}
	d.MinimalMode = p.MinimalMode
	d.DailyActivityList, d.DailyActivityNames = p.DailyLists()
	d.GymExerciseNames, d.GymExerciseCategories = p.Catalog()
	return d
}

// DailyLists returns copies of the profile's checklist in both shapes.
func (p *Profile) DailyLists() ([]domain.DailyActivity, []string) {
	list := make([]domain.DailyActivity, 0, len(p.DailyActivities))
	names := make([]string, 0, len(p.DailyActivities))
	for _, a := range p.DailyActivities {
		list = append(list, a)
		names = append(names, a.Name)
	}
	return list, names
}

// Catalog returns the profile's exercise catalog as name and category maps.
func (p *Profile) Catalog() (map[string]string, map[string]domain.ExerciseCategory) {
	names := make(map[string]string, len(p.Exercises))
	cats := make(map[string]domain.ExerciseCategory, len(p.Exercises))
	for _, e := range p.Exercises {
		names[e.ID] = e.Name
		cats[e.ID] = e.Category
	}
	return names, cats
}

// FitnessTrend lays scores out on the first day of consecutive months ending
// with the month of now.
func FitnessTrend(scores []int, now time.Time) []domain.FitnessScore {
	now = now.Local()
	out := make([]domain.FitnessScore, 0, len(scores))
	for i, score := range scores {
		back := len(scores) - 1 - i
		day := time.Date(now.Year(), now.Month()-time.Month(back), 1, 0, 0, 0, 0, time.Local)
		ts := day.UnixMilli()
		out = append(out, domain.FitnessScore{Date: day.Format("Jan"), Score: score, TS: &ts})
	}
	return out
}

func setF(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setI(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
