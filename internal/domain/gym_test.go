package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGymLevel(t *testing.T) {
	tests := []struct {
		name    string
		weights [4]float64
		body    []float64
		want    int
	}{
		{"defaults bench below 60", [4]float64{100, 50, 50, 50}, nil, 1},
		{"level 2 at default body weight", [4]float64{87, 60, 50, 87}, nil, 2},
		{"level 4", [4]float64{135, 100, 50, 180}, []float64{90}, 4},
		{"bench relative at level 7", [4]float64{200, 140, 50, 280}, []float64{80}, 7},
		{"hip thrust holds back", [4]float64{200, 140, 50, 100}, []float64{80}, 2},
		{"nothing logged", [4]float64{}, nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord()
			r.PowerLiftWeights = tt.weights
			for _, w := range tt.body {
				r.WeightTrend = append(r.WeightTrend, WeightEntry{Weight: w})
			}
			assert.Equal(t, tt.want, GymLevel(r))
		})
	}
}

func TestGymLevelGovernedByBench(t *testing.T) {
	env := testEnv(monday)
	d := NewDocument()
	for i, w := range []float64{100, 50, 50, 50} {
		d, _ = UpdatePowerLiftWeight(d, CoreRef(Gym), i, w)
	}
	assert.Equal(t, DefaultBodyWeight, d.Gym.BodyWeight())
	before := GymLevel(d.Gym)

	d, _ = AddBodyWeight(d, CoreRef(Gym), 92, "", env)
	assert.Equal(t, 92.0, d.Gym.BodyWeight())
	assert.Equal(t, before, GymLevel(d.Gym))
}

func TestPowerLiftEdits(t *testing.T) {
	d := NewDocument()
	d, ok := UpdatePowerLiftName(d, CoreRef(Gym), 2, " Pull-ups ")
	require.True(t, ok)
	assert.Equal(t, "Pull-ups", d.Gym.PowerLiftNames[2])

	_, ok = UpdatePowerLiftName(d, CoreRef(Gym), 1, "  ")
	assert.False(t, ok)
	_, ok = UpdatePowerLiftName(d, CoreRef(Gym), 4, "Deadlift")
	assert.False(t, ok)

	d, _ = UpdatePowerLiftWeight(d, CoreRef(Gym), 0, 102.499)
	assert.Equal(t, 102.5, d.Gym.PowerLiftWeights[0])
	_, ok = UpdatePowerLiftWeight(d, CoreRef(Gym), 0, 0)
	assert.False(t, ok)
}

func TestAddGymExercise(t *testing.T) {
	env := testEnv(monday)
	d := NewDocument()

	next, id := AddGymExercise(d, "   ", CategoryPush, env)
	assert.Empty(t, id)
	assert.Equal(t, d, next)

	d, id = AddGymExercise(d, "Flat DB Press", CategoryPush, env)
	assert.Equal(t, "flat-db-press-abcde", id)
	assert.Equal(t, "Flat DB Press", d.GymExerciseNames[id])
	assert.Equal(t, CategoryPush, d.GymExerciseCategories[id])
	assert.NotContains(t, d.GymExerciseProgress, id)

	_, id = AddGymExercise(d, "???", CategoryLegs, env)
	assert.Equal(t, "exercise-abcde", id)

	_, id = AddGymExercise(d, strings.Repeat("a", 60), CategoryLegs, env)
	assert.Equal(t, strings.Repeat("a", 40)+"-abcde", id)

	d, ok := UpdateGymExerciseCategory(d, "flat-db-press-abcde", CategoryPull)
	require.True(t, ok)
	assert.Equal(t, CategoryPull, d.GymExerciseCategories["flat-db-press-abcde"])
	_, ok = UpdateGymExerciseCategory(d, "nope", CategoryPull)
	assert.False(t, ok)
}

func TestExerciseWeights(t *testing.T) {
	env := testEnv(monday)
	d := NewDocument()
	d, id := AddGymExercise(d, "Squat", CategoryLegs, env)

	d, ok := AddExerciseWeight(d, CoreRef(Gym), id, 100.004, ptr(5), "", env)
	require.True(t, ok)
	d, _ = AddExerciseWeight(d, CoreRef(Gym), id, 105, nil, "", env)
	series := d.GymExerciseProgress[id]
	require.Len(t, series, 2)
	assert.Equal(t, 100.0, series[0].Weight)
	assert.Equal(t, 5, *series[0].Reps)
	assert.Nil(t, series[1].Reps)
	assert.Equal(t, *series[0].TS+WeeklyInterval.Milliseconds(), *series[1].TS)

	_, ok = AddExerciseWeight(d, CoreRef(Boxing), id, 10, nil, "", env)
	assert.False(t, ok)

	d, _ = AddCustomActivity(d, "home-gym", "Home Gym", TemplateGym)
	d, ok = UpdateExerciseName(d, CustomRef("home-gym"), "pushup", "Push-up")
	require.True(t, ok)
	d, ok = AddExerciseWeight(d, CustomRef("home-gym"), "pushup", 20, ptr(12), "", env)
	require.True(t, ok)
	custom := d.CustomActivities["home-gym"].Data
	assert.Equal(t, "Push-up", custom.GymExerciseNames["pushup"])
	assert.Len(t, custom.GymExerciseProgress["pushup"], 1)
	assert.NotContains(t, d.GymExerciseProgress, "pushup")

	d, _ = UpdateExerciseName(d, CoreRef(Gym), id, "Back Squat")
	assert.Equal(t, "Back Squat", d.GymExerciseNames[id])
}
