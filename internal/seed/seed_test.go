package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"asura/tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local)

func TestMinimalProfile(t *testing.T) {
	p, err := Load(Minimal)
	require.NoError(t, err)
	d := p.Document(now)

	for _, k := range domain.CoreKeys {
		r, _ := d.Core(k)
		assert.Zero(t, r.TotalHours, k)
	}
	assert.Equal(t, [4]float64{}, d.Gym.PowerLiftWeights)
	assert.Equal(t, domain.DefaultPowerLiftNames, d.Gym.PowerLiftNames)
	assert.Equal(t, []domain.CoreKey{domain.Violin}, d.VisibleCoreActivities())
	assert.Len(t, d.DailyActivityList, 5)
	assert.Equal(t, []string{"Spanish writing", "German writing", "Oud 15 min", "Minoxidil", "Creatine"}, d.DailyActivityNames)
	assert.Empty(t, d.GymExerciseNames)
	assert.Empty(t, d.Boxing.FitnessTestTrend)
}

func TestDemoProfile(t *testing.T) {
	d := MustLoad(Demo).Document(now)

	assert.Equal(t, 96.0, d.Boxing.TotalHours)
	assert.Equal(t, 7, d.Boxing.CurrentStreak)
	assert.Equal(t, 780.0, d.Violin.TotalHours)
	assert.Equal(t, 5, d.Violin.TotalConcerts)
	assert.Equal(t, [4]float64{100, 50, 50, 50}, d.Gym.PowerLiftWeights)
	assert.Equal(t, domain.CoreKeys, d.VisibleCoreActivities())

	trend := d.Boxing.FitnessTestTrend
	require.Len(t, trend, 7)
	assert.Equal(t, "Sep", trend[0].Date)
	assert.Equal(t, 139, trend[0].Score)
	assert.Equal(t, "Mar", trend[6].Date)
	assert.Equal(t, 342, d.Boxing.FitnessTestHighest)

	assert.Equal(t, "Flat DB Press", d.GymExerciseNames["flat-db-press"])
	assert.Len(t, d.GymExerciseCategories, 6)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coach.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: coach
records:
  spanish: {totalHours: 12.5, booksRead: 2}
hidden: [boxing]
`), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	d := p.Document(now)
	assert.Equal(t, 12.5, d.Spanish.TotalHours)
	assert.Equal(t, 2, d.Spanish.BooksRead)
	assert.True(t, d.HiddenActivities[domain.Boxing])
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("nope")
	assert.ErrorIs(t, err, ErrUnknownProfile)

	_, err = Parse([]byte("records:\n  piano: {totalHours: 1}\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("exercises:\n  - {id: x, name: X, category: arms}\n"))
	assert.Error(t, err)
}

func TestSelector(t *testing.T) {
	s := Selector{Default: Minimal, Overrides: map[string]string{"Demo@Example.com": Demo}}
	assert.Equal(t, Demo, s.For(" demo@example.com "))
	assert.Equal(t, Minimal, s.For("other@example.com"))
	assert.Equal(t, Minimal, Selector{}.For("x@y.z"))
}
