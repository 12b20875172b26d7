package migration

import (
	"encoding/json"
	"testing"
	"time"

	"asura/tracker/internal/domain"
	"asura/tracker/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

// A document written by an early client: no violin, the tape total under its
// old name, no daily list and no exercise catalog.
const legacyBlob = `{
	"boxing": {"totalHours": 40, "thisWeekSessions": 2, "currentStreak": 1, "lastSession": "Mon Jan 01 2024", "fightTapeHours": 3.5},
	"gym": {"totalHours": 10, "thisWeekSessions": 1, "currentStreak": 1, "lastSession": null},
	"oud": {"totalHours": 20, "thisWeekSessions": 0, "currentStreak": 0, "lastSession": null},
	"spanish": {"totalHours": 100, "thisWeekSessions": 0, "currentStreak": 0, "lastSession": null},
	"german": {"totalHours": 600, "thisWeekSessions": 0, "currentStreak": 0, "lastSession": null},
	"dailyActivityNames": ["Spanish writing", "German writing", "Oud 15 min", "Minoxidil", "Creatine", "Stretch"]
}`

func decode(t *testing.T, raw string) StoredDocument {
	t.Helper()
	s, err := Decode([]byte(raw))
	require.NoError(t, err)
	return s
}

func TestBackfillDefaultsAndRenames(t *testing.T) {
	d := Backfill(decode(t, legacyBlob))

	assert.Equal(t, 3.5, d.Boxing.MMATapeHours)
	assert.Equal(t, 0.0, d.Boxing.BoxingTapeHours)
	assert.NotNil(t, d.Boxing.BoxingTapeTrend)
	assert.Equal(t, domain.DefaultPowerLiftNames, d.Gym.PowerLiftNames)
	assert.Equal(t, [4]float64{}, d.Gym.PowerLiftWeights)
	assert.Equal(t, domain.DefaultDailyGoalMinutes, d.Oud.DailyGoalMinutes)
	assert.Equal(t, domain.NewRecord(), d.Violin)
	assert.Equal(t, "Mon Jan 01 2024", *d.Boxing.LastSession)

	require.Len(t, d.DailyActivityList, 6)
	assert.Equal(t, domain.DailyActivity{ID: "1", Name: "Spanish writing", Category: "Learning"}, d.DailyActivityList[0])
	assert.Equal(t, "Music", d.DailyActivityList[2].Category)
	assert.Equal(t, "General", d.DailyActivityList[5].Category)
	assert.Empty(t, d.GymExerciseNames)
	assert.NotNil(t, d.CustomActivities)
}

func TestBackfillKeepsCurrentTapeName(t *testing.T) {
	d := Backfill(decode(t, `{"boxing": {"mmaTapeHours": 2, "fightTapeHours": 9}}`))
	assert.Equal(t, 2.0, d.Boxing.MMATapeHours)
}

func TestBackfillDerivesFitnessFromTrend(t *testing.T) {
	d := Backfill(decode(t, `{"boxing": {"fitnessTestHighest": 400, "fitnessTestThisMonth": 5,
		"fitnessTestTrend": [{"date": "Jan", "score": 300, "ts": 1704067200000}, {"date": "Feb", "score": 310.4}]}}`))
	assert.Equal(t, 400, d.Boxing.FitnessTestHighest)
	assert.Equal(t, 310, d.Boxing.FitnessTestThisMonth)
	require.NotNil(t, d.Boxing.FitnessTestTrend[0].TS)
	assert.Equal(t, int64(1704067200000), *d.Boxing.FitnessTestTrend[0].TS)
	assert.Nil(t, d.Boxing.FitnessTestTrend[1].TS)
}

func TestMigrateAppliesDemoPolicy(t *testing.T) {
	demo := seed.MustLoad(seed.Demo)
	d := Migrate(decode(t, legacyBlob), 3, demo, now)

	assert.Equal(t, 96.0, d.Boxing.TotalHours)
	assert.Equal(t, 24.0, d.Gym.TotalHours)
	assert.Equal(t, 20.0, d.Oud.TotalHours)
	assert.Equal(t, 1, d.Oud.TotalConcerts)
	assert.Equal(t, 393.0, d.Spanish.TotalHours)
	assert.Equal(t, 600.0, d.German.TotalHours)

	assert.Equal(t, 780.0, d.Violin.TotalHours)
	assert.Equal(t, 5, d.Violin.TotalConcerts)
	assert.Equal(t, 2, d.Violin.CurrentStreak)

	assert.Equal(t, 1, d.Boxing.TotalFights)
	assert.Equal(t, 1, d.Boxing.Losses)
	assert.Equal(t, [4]float64{100, 50, 50, 50}, d.Gym.PowerLiftWeights)

	trend := d.Boxing.FitnessTestTrend
	require.Len(t, trend, 7)
	assert.Equal(t, "Dec", trend[0].Date)
	assert.Equal(t, "Jun", trend[6].Date)
	assert.Equal(t, 342, d.Boxing.FitnessTestHighest)
	assert.Equal(t, 342, d.Boxing.FitnessTestThisMonth)

	assert.Len(t, d.GymExerciseNames, 6)
	assert.Equal(t, domain.CategoryPush, d.GymExerciseCategories["flat-db-press"])
	require.Len(t, d.DailyActivityList, 6)
}

func TestMigrateSkipsPolicyForCurrentVersion(t *testing.T) {
	demo := seed.MustLoad(seed.Demo)
	d := Migrate(decode(t, legacyBlob), CurrentVersion, demo, now)
	assert.Equal(t, 40.0, d.Boxing.TotalHours)
	assert.Equal(t, Backfill(decode(t, legacyBlob)), d)
}

func TestMigrateIsIdempotent(t *testing.T) {
	for _, name := range []string{seed.Minimal, seed.Demo} {
		t.Run(name, func(t *testing.T) {
			profile := seed.MustLoad(name)
			once := Migrate(decode(t, legacyBlob), 1, profile, now)

			raw, err := json.Marshal(once)
			require.NoError(t, err)
			later := now.Add(90 * 24 * time.Hour)
			twice := Migrate(decode(t, string(raw)), 1, profile, later)

			assert.Equal(t, once, twice)
		})
	}
}

func TestMergeReplacesPresentKeysOnly(t *testing.T) {
	base := seed.MustLoad(seed.Demo).Document(now)
	partial := decode(t, `{"gym": {"totalHours": 5}, "hiddenActivities": {"oud": true}, "minimalMode": true}`)

	got := Merge(base, partial)
	assert.Equal(t, 5.0, got.Gym.TotalHours)
	assert.Equal(t, 0, got.Gym.ThisWeekSessions)
	assert.Equal(t, map[domain.CoreKey]bool{domain.Oud: true}, got.HiddenActivities)
	assert.True(t, got.MinimalMode)
	assert.Equal(t, base.Boxing, got.Boxing)
	assert.Equal(t, base.GymExerciseNames, got.GymExerciseNames)

	assert.Equal(t, 24.0, base.Gym.TotalHours)
}

func TestMergeRoundTrip(t *testing.T) {
	env := domain.Env{Now: now, Suffix: func() string { return "zzzzz" }, NewID: func() string { return "x" }}
	d := seed.MustLoad(seed.Demo).Document(now)
	d, _ = domain.AddTapeEntry(d, domain.CoreRef(domain.Boxing), 1.5, 0, 2, "", env)
	d, _ = domain.AddBodyWeight(d, domain.CoreRef(domain.Gym), 90, "", env)
	d, id := domain.AddGymExercise(d, "Row", domain.CategoryPull, env)
	d, _ = domain.AddExerciseWeight(d, domain.CoreRef(domain.Gym), id, 60, nil, "", env)
	d, _ = domain.AddCustomActivity(d, "home", "Home", domain.TemplateGym)
	d, _ = domain.UpdateExerciseName(d, domain.CustomRef("home"), "plank", "Plank")
	d, _ = domain.AddHours(d, domain.CoreRef(domain.Oud), 1, env)

	snapshot, err := Stored(d)
	require.NoError(t, err)
	assert.Equal(t, d, Merge(domain.NewDocument(), snapshot))
	assert.Equal(t, d, Merge(d, snapshot))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
	assert.True(t, StoredDocument{}.Empty())
	assert.False(t, decode(t, `{"minimalMode": false}`).Empty())
}
