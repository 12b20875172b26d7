package domain

import (
	"slices"
	"sort"
)

// Document is the aggregate root of one user's tracked activities. It is
// treated as immutable: mutations return a new Document and leave the
// receiver untouched.
type Document struct {
	Boxing  ActivityRecord `json:"boxing"`
	Gym     ActivityRecord `json:"gym"`
	Oud     ActivityRecord `json:"oud"`
	Violin  ActivityRecord `json:"violin"`
	Spanish ActivityRecord `json:"spanish"`
	German  ActivityRecord `json:"german"`

	CustomActivities map[string]CustomActivity `json:"customActivities"`
	HiddenActivities map[CoreKey]bool          `json:"hiddenActivities"`
	MinimalMode      bool                      `json:"minimalMode"`

	DailyActivityNames []string        `json:"dailyActivityNames"`
	DailyActivityList  []DailyActivity `json:"dailyActivityList"`

	GymExerciseNames      map[string]string                `json:"gymExerciseNames"`
	GymExerciseCategories map[string]ExerciseCategory      `json:"gymExerciseCategories"`
	GymExerciseProgress   map[string][]ExerciseWeightEntry `json:"gymExerciseProgress"`
}

// NewDocument returns an empty document with every record zeroed.
func NewDocument() Document {
	d := Document{
		CustomActivities:      map[string]CustomActivity{},
		HiddenActivities:      map[CoreKey]bool{},
		DailyActivityNames:    []string{},
		DailyActivityList:     []DailyActivity{},
		GymExerciseNames:      map[string]string{},
		GymExerciseCategories: map[string]ExerciseCategory{},
		GymExerciseProgress:   map[string][]ExerciseWeightEntry{},
	}
	for _, k := range CoreKeys {
		*d.core(k) = NewRecord()
	}
	return d
}

func (d *Document) core(k CoreKey) *ActivityRecord {
	switch k {
	case Boxing:
		return &d.Boxing
	case Gym:
		return &d.Gym
	case Oud:
		return &d.Oud
	case Violin:
		return &d.Violin
	case Spanish:
		return &d.Spanish
	case German:
		return &d.German
	}
	return nil
}

// Core returns the record of a built-in activity.
func (d Document) Core(k CoreKey) (ActivityRecord, bool) {
	r := d.core(k)
	if r == nil {
		return ActivityRecord{}, false
	}
	return *r, true
}

// SetCore replaces a built-in record in place. It is meant for builders such
// as migrations and seed profiles, not for the mutation API.
func (d *Document) SetCore(k CoreKey, r ActivityRecord) {
	if p := d.core(k); p != nil {
		*p = r
	}
}

// Record resolves a reference to a core or custom activity.
func (d Document) Record(ref Ref) (ActivityRecord, bool) {
	if ref.IsCore() {
		return d.Core(ref.Core)
	}
	c, ok := d.CustomActivities[ref.Slug]
	if !ok {
		return ActivityRecord{}, false
	}
	return c.Data, true
}

// Family returns the template a referenced activity follows.
func (d Document) Family(ref Ref) Template {
	if ref.IsCore() {
		return ref.Core.Family()
	}
	return d.CustomActivities[ref.Slug].Template
}

// Clone returns a deep copy.
func (d Document) Clone() Document {
	c := d
	for _, k := range CoreKeys {
		*c.core(k) = d.core(k).Clone()
	}
	if d.CustomActivities != nil {
		c.CustomActivities = make(map[string]CustomActivity, len(d.CustomActivities))
		for slug, a := range d.CustomActivities {
			a.Data = a.Data.Clone()
			c.CustomActivities[slug] = a
		}
	}
	if d.HiddenActivities != nil {
		c.HiddenActivities = cloneMap(d.HiddenActivities)
	}
	c.DailyActivityNames = slices.Clone(d.DailyActivityNames)
	c.DailyActivityList = slices.Clone(d.DailyActivityList)
	if d.GymExerciseNames != nil {
		c.GymExerciseNames = cloneMap(d.GymExerciseNames)
	}
	if d.GymExerciseCategories != nil {
		c.GymExerciseCategories = cloneMap(d.GymExerciseCategories)
	}
	if d.GymExerciseProgress != nil {
		c.GymExerciseProgress = cloneProgress(d.GymExerciseProgress)
	}
	return c
}

// CustomEntry pairs a custom activity with its slug.
type CustomEntry struct {
	Slug string `json:"slug"`
	CustomActivity
}

// ListCustomActivities returns custom activities sorted by slug.
func (d Document) ListCustomActivities() []CustomEntry {
	out := make([]CustomEntry, 0, len(d.CustomActivities))
	for slug, a := range d.CustomActivities {
		out = append(out, CustomEntry{Slug: slug, CustomActivity: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// VisibleCoreActivities returns the core keys not hidden by the user.
func (d Document) VisibleCoreActivities() []CoreKey {
	out := make([]CoreKey, 0, len(CoreKeys))
	for _, k := range CoreKeys {
		if !d.HiddenActivities[k] {
			out = append(out, k)
		}
	}
	return out
}
