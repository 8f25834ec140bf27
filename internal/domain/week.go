package domain

import (
	"fmt"
	"time"
)

// Weekday numera los días empezando en lunes: 0=lunes … 6=domingo.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayOf convierte un time.Weekday (domingo=0) a Weekday (lunes=0).
func WeekdayOf(d time.Weekday) Weekday {
	return Weekday((int(d) + 6) % 7)
}

// Valid devuelve true si el día está en 0..6.
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return time.Weekday((int(w) + 1) % 7).String()
}

// WeekWindow es el rango [Start, End] de la semana actual, inclusivo en ambos extremos.
type WeekWindow struct {
	Start time.Time
	End   time.Time
}

// Contains devuelve true si t cae dentro de la ventana, extremos incluidos.
func (w WeekWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WeekBounds calcula la ventana semanal que contiene ref.
// Start es el día más reciente <= ref cuyo weekday es start, a las 00:00:00.000;
// End es Start + 6 días a las 23:59:59.999. Ambos en la location de ref.
func WeekBounds(ref time.Time, start Weekday) WeekWindow {
	back := (int(WeekdayOf(ref.Weekday())) - int(start) + 7) % 7
	y, m, d := ref.Date()
	loc := ref.Location()

	return WeekWindow{
		Start: time.Date(y, m, d-back, 0, 0, 0, 0, loc),
		End:   time.Date(y, m, d-back+6, 23, 59, 59, int(999*time.Millisecond), loc),
	}
}

// NFLWeek devuelve el número de semana de la temporada para now.
// La semana 1 empieza en el inicio de la ventana semanal que contiene firstGameDay.
// Antes del inicio de temporada devuelve 1.
func NFLWeek(firstGameDay, now time.Time, start Weekday) int {
	week1 := WeekBounds(firstGameDay, start).Start
	if now.Before(week1) {
		return 1
	}
	days := int(now.Sub(week1).Hours() / 24)
	return days/7 + 1
}
