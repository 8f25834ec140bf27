package domain

import "time"

// Summary es el resultado de una ejecución del pipeline.
type Summary struct {
	Window      WeekWindow
	Games       []TransformedGame
	Body        string
	GeneratedAt time.Time
}

// Empty devuelve true si no hay partidos en la semana.
func (s Summary) Empty() bool {
	return len(s.Games) == 0
}

// PostRecord es un post publicado en el message board.
type PostRecord struct {
	ID       string
	Season   int
	Week     int
	Subject  string
	Body     string
	Games    int
	PostedAt time.Time
}
