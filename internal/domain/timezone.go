package domain

import (
	"fmt"
	"time"
)

// ParseTimestamp parsea un ISO-8601 con offset ("Z" o "±hh:mm"), con o sin fracción de segundo.
func ParseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, &ParseError{Field: field, Value: value, Err: err}
	}
	return t, nil
}

// ToZone expresa el mismo instante en loc, con el offset efectivo de loc
// para ese instante (horario de verano incluido).
func ToZone(ts string, loc *time.Location) (string, error) {
	t, err := ParseTimestamp("commence_time", ts)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format(time.RFC3339Nano), nil
}

// NormalizeGames convierte el CommenceTime de cada partido a loc.
// Devuelve una copia; games no se modifica.
func NormalizeGames(games []Game, loc *time.Location) ([]Game, error) {
	out := make([]Game, len(games))
	for i, g := range games {
		ts, err := ToZone(g.CommenceTime, loc)
		if err != nil {
			return nil, fmt.Errorf("normalize %s: %w", g.Label(), err)
		}
		g.CommenceTime = ts
		out[i] = g
	}
	return out, nil
}
