package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pacific(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return loc
}

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, Monday, WeekdayOf(time.Monday))
	assert.Equal(t, Tuesday, WeekdayOf(time.Tuesday))
	assert.Equal(t, Sunday, WeekdayOf(time.Sunday))
	assert.Equal(t, "Tuesday", Tuesday.String())
	assert.Equal(t, "Sunday", Sunday.String())
	assert.False(t, Weekday(7).Valid())
}

func TestWeekBounds_TuesdayStartFromWednesday(t *testing.T) {
	loc := pacific(t)
	// 2024-09-11 es miércoles
	ref := time.Date(2024, 9, 11, 18, 30, 0, 0, loc)

	w := WeekBounds(ref, Tuesday)

	assert.Equal(t, time.Date(2024, 9, 10, 0, 0, 0, 0, loc), w.Start)
	assert.Equal(t, time.Date(2024, 9, 16, 23, 59, 59, 999_000_000, loc), w.End)
	assert.Equal(t, time.Tuesday, w.Start.Weekday())
	assert.Equal(t, time.Monday, w.End.Weekday())
}

func TestWeekBounds_ReferenceOnStartDay(t *testing.T) {
	loc := pacific(t)
	ref := time.Date(2024, 9, 10, 0, 0, 1, 0, loc) // martes

	w := WeekBounds(ref, Tuesday)
	assert.Equal(t, time.Date(2024, 9, 10, 0, 0, 0, 0, loc), w.Start)
}

func TestWeekBounds_ReferenceDayBeforeStart(t *testing.T) {
	loc := pacific(t)
	ref := time.Date(2024, 9, 16, 23, 0, 0, 0, loc) // lunes

	w := WeekBounds(ref, Tuesday)
	assert.Equal(t, time.Date(2024, 9, 10, 0, 0, 0, 0, loc), w.Start)
	assert.True(t, w.Contains(ref))
}

func TestWeekBounds_CrossesMonthAndDST(t *testing.T) {
	loc := pacific(t)
	// 2024-11-03 termina el horario de verano en US/Pacific
	ref := time.Date(2024, 11, 4, 12, 0, 0, 0, loc) // lunes

	w := WeekBounds(ref, Tuesday)
	assert.Equal(t, time.Date(2024, 10, 29, 0, 0, 0, 0, loc), w.Start)
	assert.Equal(t, time.Date(2024, 11, 4, 23, 59, 59, 999_000_000, loc), w.End)
}

func TestWeekWindow_ContainsBoundaries(t *testing.T) {
	loc := pacific(t)
	w := WeekBounds(time.Date(2024, 9, 11, 12, 0, 0, 0, loc), Tuesday)

	assert.False(t, w.Contains(w.Start.Add(-time.Second)))
	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End.Add(-time.Second)))
	assert.True(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.End.Add(time.Millisecond)))
}

func TestNFLWeek(t *testing.T) {
	utc := time.UTC
	first := time.Date(2024, 9, 5, 0, 0, 0, 0, utc) // jueves, semana 1 empieza el martes 3

	assert.Equal(t, 1, NFLWeek(first, time.Date(2024, 9, 4, 12, 0, 0, 0, utc), Tuesday))
	assert.Equal(t, 1, NFLWeek(first, time.Date(2024, 9, 9, 20, 0, 0, 0, utc), Tuesday))
	assert.Equal(t, 2, NFLWeek(first, time.Date(2024, 9, 11, 3, 0, 0, 0, utc), Tuesday))
	assert.Equal(t, 10, NFLWeek(first, time.Date(2024, 11, 6, 3, 0, 0, 0, utc), Tuesday))
}

func TestNFLWeek_BeforeSeason(t *testing.T) {
	first := time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, NFLWeek(first, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), Tuesday))
}
