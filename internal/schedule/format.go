package schedule

import (
	"strconv"
	"strings"

	"github.com/alejandrodnm/oddsposter/internal/domain"
)

// Separadores de línea para Format.
const (
	LineBreakText = "\n"
	LineBreakHTML = "<br>"
)

// Format renderiza los partidos agrupados por día. Cada cambio de día (incluido
// el primero) abre con lb + "*** DIA ***" + lb + lb. La línea del favorito lleva
// "| spread | total"; cada partido termina con una línea en blanco.
// games debe venir ordenado cronológicamente.
func Format(games []domain.TransformedGame, lb string) string {
	var sb strings.Builder
	currentDay := ""

	for _, g := range games {
		day := g.CommenceTime.Weekday().String()
		if day != currentDay {
			currentDay = day
			sb.WriteString(lb + "*** " + strings.ToUpper(day) + " ***" + lb + lb)
		}

		line := " | " + formatLine(g.PointSpread) + " | " + formatLine(g.TotalsPoint)
		if g.FavoredIsAway() {
			sb.WriteString(g.AwayTeam + line + lb)
			sb.WriteString(g.HomeTeam + lb + lb)
		} else {
			sb.WriteString(g.AwayTeam + lb)
			sb.WriteString(g.HomeTeam + line + lb + lb)
		}
	}
	return sb.String()
}

// formatLine usa la representación más corta: -3.5, 47.5, 44.25.
func formatLine(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
