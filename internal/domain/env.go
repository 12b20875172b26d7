package domain

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DayLayout formats the calendar day compared for streaks, e.g. "Mon Jan 02 2006".
const DayLayout = "Mon Jan 02 2006"

// Env supplies the clock and the random parts of generated identifiers to the
// mutation functions so that they stay deterministic under test.
type Env struct {
	Now    time.Time
	Suffix func() string
	NewID  func() string
}

// NewEnv returns an Env reading the local wall clock.
func NewEnv() Env {
	return Env{
		Now:    time.Now(),
		Suffix: RandomSuffix,
		NewID:  func() string { return uuid.NewString() },
	}
}

// Today returns the local calendar day as a string.
func (e Env) Today() string {
	return e.Now.Format(DayLayout)
}

func (e Env) suffix() string {
	if e.Suffix == nil {
		return RandomSuffix()
	}
	return e.Suffix()
}

func (e Env) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomSuffix returns five random base-36 characters.
func RandomSuffix() string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteByte(base36[rand.Intn(len(base36))])
	}
	return b.String()
}
