package domain

import (
	"fmt"
	"time"
)

// Claves de mercado de the-odds-api.
const (
	MarketSpreads = "spreads"
	MarketTotals  = "totals"
)

// Game es un partido tal como llega de la fuente de odds.
// CommenceTime se mantiene como string ISO-8601 hasta que se normaliza.
type Game struct {
	ID           string
	SportKey     string
	CommenceTime string
	HomeTeam     string
	AwayTeam     string
	Bookmakers   []Bookmaker
}

// Bookmaker agrupa los mercados publicados por una casa de apuestas.
type Bookmaker struct {
	Key     string
	Title   string
	Markets []Market
}

// Market es un mercado (spreads, totals) con sus outcomes.
type Market struct {
	Key      string
	Outcomes []Outcome
}

// Outcome es un lado del mercado: equipo (o Over/Under) con su línea.
type Outcome struct {
	Name  string
	Price float64
	Point float64
}

// Label identifica el partido en logs y errores: "Away @ Home".
func (g Game) Label() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam)
}

// Bookmaker devuelve el bookmaker con la key dada, o el primero si key está vacía.
func (g Game) Bookmaker(key string) (Bookmaker, bool) {
	if len(g.Bookmakers) == 0 {
		return Bookmaker{}, false
	}
	if key == "" {
		return g.Bookmakers[0], true
	}
	for _, b := range g.Bookmakers {
		if b.Key == key {
			return b, true
		}
	}
	return Bookmaker{}, false
}

// Market devuelve el mercado con la key dada.
func (b Bookmaker) Market(key string) (Market, bool) {
	for _, m := range b.Markets {
		if m.Key == key {
			return m, true
		}
	}
	return Market{}, false
}

// TransformedGame es el resumen de un partido listo para formatear.
// Se crea una vez durante la transformación y no se modifica después.
type TransformedGame struct {
	CommenceTime time.Time // en la zona horaria destino
	FavoredTeam  string
	HomeTeam     string
	AwayTeam     string
	PointSpread  float64 // con ajuste de medio punto
	TotalsPoint  float64 // con ajuste de medio punto
}

// FavoredIsAway devuelve true si el favorito juega de visitante.
func (t TransformedGame) FavoredIsAway() bool {
	return t.FavoredTeam == t.AwayTeam
}
