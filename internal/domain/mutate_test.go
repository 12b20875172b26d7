package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(now time.Time) Env {
	return Env{
		Now:    now,
		Suffix: func() string { return "abcde" },
		NewID:  func() string { return "id-1" },
	}
}

var monday = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.Local)

func ptr[T any](v T) *T { return &v }

func TestAddHours(t *testing.T) {
	env := testEnv(monday)
	d := NewDocument()

	d, ok := AddHours(d, CoreRef(Gym), 1.234, env)
	require.True(t, ok)
	assert.Equal(t, 1.23, d.Gym.TotalHours)
	assert.Equal(t, 1, d.Gym.ThisWeekSessions)
	assert.Equal(t, 1, d.Gym.CurrentStreak)
	require.NotNil(t, d.Gym.LastSession)
	assert.Equal(t, "Mon Mar 04 2024", *d.Gym.LastSession)

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		next, ok := AddHours(d, CoreRef(Gym), bad, env)
		assert.False(t, ok, "hours %v", bad)
		assert.Equal(t, d, next)
	}
}

func TestAddHoursStreakOncePerDay(t *testing.T) {
	env := testEnv(monday)
	d := NewDocument()
	d, _ = AddHours(d, CoreRef(Gym), 1, env)
	d, _ = AddHours(d, CoreRef(Gym), 1, env)
	assert.Equal(t, 2, d.Gym.ThisWeekSessions)
	assert.Equal(t, 1, d.Gym.CurrentStreak)
	assert.Equal(t, 2.0, d.Gym.TotalHours)

	d, _ = AddHours(d, CoreRef(Gym), 0.5, testEnv(monday.Add(24*time.Hour)))
	assert.Equal(t, 3, d.Gym.ThisWeekSessions)
	assert.Equal(t, 2, d.Gym.CurrentStreak)
}

func TestMutationsDoNotTouchInput(t *testing.T) {
	env := testEnv(monday)
	d := NewDocument()
	d, _ = AddCustomActivity(d, "", "Reading", TemplateLanguage)
	before := d.Clone()

	_, ok := AddHours(d, CustomRef("reading"), 2, env)
	require.True(t, ok)
	_, ok = AddFitnessScore(d, CoreRef(Boxing), 200, "", env)
	require.True(t, ok)
	_, id := AddGymExercise(d, "Squat", CategoryLegs, env)
	require.NotEmpty(t, id)

	assert.Equal(t, before, d)
}

func TestSetTotalHours(t *testing.T) {
	d := NewDocument()
	d, ok := SetTotalHours(d, CoreRef(Violin), 780.456)
	require.True(t, ok)
	assert.Equal(t, 780.46, d.Violin.TotalHours)

	d, ok = SetTotalHours(d, CoreRef(Violin), 10)
	require.True(t, ok)
	assert.Equal(t, 10.0, d.Violin.TotalHours)

	for _, bad := range []float64{-1, math.NaN(), math.Inf(-1)} {
		_, ok = SetTotalHours(d, CoreRef(Violin), bad)
		assert.False(t, ok)
	}
}

func TestRecordFightResult(t *testing.T) {
	env := testEnv(monday)
	d := NewDocument()
	d, _ = RecordFightResult(d, CoreRef(Boxing), FightWin, env)
	d, _ = RecordFightResult(d, CoreRef(Boxing), FightLoss, env)
	d, _ = RecordFightResult(d, CoreRef(Boxing), FightDraw, env)
	_, ok := RecordFightResult(d, CoreRef(Boxing), "knockout", env)
	assert.False(t, ok)

	assert.Equal(t, 3, d.Boxing.TotalFights)
	assert.Equal(t, 1, d.Boxing.Wins)
	assert.Equal(t, 1, d.Boxing.Losses)
	assert.Equal(t, 1, d.Boxing.Draws)
	assert.Equal(t, env.Today(), *d.Boxing.LastSession)
}

func TestUnknownRefIsNoop(t *testing.T) {
	d := NewDocument()
	next, ok := AddHours(d, CustomRef("missing"), 1, testEnv(monday))
	assert.False(t, ok)
	assert.Equal(t, d, next)
}

func TestTodayMinutesResetOnNewDay(t *testing.T) {
	d := NewDocument()
	d, _ = AddTodayMinutes(d, CoreRef(Oud), 10, testEnv(monday))
	d, _ = AddTodayMinutes(d, CoreRef(Oud), 5, testEnv(monday))
	assert.Equal(t, 15, d.Oud.TodayMinutes)

	d, _ = AddTodayMinutes(d, CoreRef(Oud), 7, testEnv(monday.Add(24*time.Hour)))
	assert.Equal(t, 7, d.Oud.TodayMinutes)
	assert.Equal(t, "Tue Mar 05 2024", d.Oud.TodayDate)
}

func TestSetBooksReadAndGoal(t *testing.T) {
	d := NewDocument()
	d, _ = SetBooksRead(d, CoreRef(Spanish), 3.9)
	assert.Equal(t, 3, d.Spanish.BooksRead)
	d, _ = SetBooksRead(d, CoreRef(Spanish), -2)
	assert.Equal(t, 0, d.Spanish.BooksRead)

	_, ok := SetDailyGoal(d, CoreRef(Spanish), 0)
	assert.False(t, ok)
	d, _ = SetDailyGoal(d, CoreRef(Spanish), 45)
	assert.Equal(t, 45, d.Spanish.DailyGoalMinutes)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Reading & Writing!!": "reading-writing",
		"  Oud  ":             "oud",
		"--Hello--World--":    "hello-world",
		"Ñandú":               "and",
		"!!!":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestCustomActivityLifecycle(t *testing.T) {
	d := NewDocument()
	d, ok := AddCustomActivity(d, Slugify("Reading & Writing!!"), "Reading & Writing", TemplateLanguage)
	require.True(t, ok)

	again, ok := AddCustomActivity(d, "reading-writing", "Other", TemplateGym)
	assert.False(t, ok)
	assert.Equal(t, d, again)

	entry := d.CustomActivities["reading-writing"]
	assert.Equal(t, "Reading & Writing", entry.Name)
	assert.Equal(t, TemplateLanguage, entry.Template)
	assert.Equal(t, 0.0, entry.Data.TotalHours)

	d, _ = AddCustomActivity(d, "alpha", "Alpha", "weird")
	assert.Equal(t, TemplateNone, d.CustomActivities["alpha"].Template)
	list := d.ListCustomActivities()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Slug)

	d, ok = DeleteCustomActivity(d, "reading-writing")
	require.True(t, ok)
	_, ok = DeleteCustomActivity(d, "reading-writing")
	assert.False(t, ok)
}

func TestHideRestore(t *testing.T) {
	d := NewDocument()
	d, _ = AddHours(d, CoreRef(Oud), 2, testEnv(monday))
	d, ok := HideActivity(d, Oud)
	require.True(t, ok)
	assert.NotContains(t, d.VisibleCoreActivities(), Oud)
	assert.Equal(t, 2.0, d.Oud.TotalHours)

	_, ok = HideActivity(d, "piano")
	assert.False(t, ok)

	d, ok = RestoreActivity(d, Oud)
	require.True(t, ok)
	assert.Equal(t, CoreKeys, d.VisibleCoreActivities())
}

func TestDailyActivities(t *testing.T) {
	env := testEnv(monday)
	d := NewDocument()
	d.DailyActivityNames = []string{"Spanish writing"}

	d, ok := UpdateDailyActivityName(d, 0, "  French writing ")
	require.True(t, ok)
	assert.Equal(t, "French writing", d.DailyActivityNames[0])
	_, ok = UpdateDailyActivityName(d, 3, "x")
	assert.False(t, ok)

	d, ok = AddDailyActivity(d, "Creatine", "Health", env)
	require.True(t, ok)
	require.Len(t, d.DailyActivityList, 1)
	assert.Equal(t, "id-1", d.DailyActivityList[0].ID)

	_, ok = AddDailyActivity(d, "   ", "Health", env)
	assert.False(t, ok)

	d, _ = RenameDailyActivity(d, "id-1", "Creatine 5g")
	assert.Equal(t, "Creatine 5g", d.DailyActivityList[0].Name)

	d, ok = RemoveDailyActivity(d, "id-1")
	require.True(t, ok)
	assert.Empty(t, d.DailyActivityList)
}
