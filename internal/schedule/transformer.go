package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/alejandrodnm/oddsposter/internal/domain"
)

// Transformer filtra los partidos de la semana actual y extrae favorito, spread y total.
type Transformer struct {
	loc       *time.Location
	weekStart domain.Weekday
	bookmaker string
}

// NewTransformer crea un Transformer. bookmaker vacío = primer bookmaker de cada partido.
func NewTransformer(loc *time.Location, weekStart domain.Weekday, bookmaker string) *Transformer {
	return &Transformer{loc: loc, weekStart: weekStart, bookmaker: bookmaker}
}

// Window devuelve la ventana semanal que contiene now, en la zona configurada.
func (t *Transformer) Window(now time.Time) domain.WeekWindow {
	return domain.WeekBounds(now.In(t.loc), t.weekStart)
}

// Transform devuelve los partidos de la semana de now ordenados por hora de inicio.
// games debe venir normalizado (domain.NormalizeGames); la hora se expresa en la zona
// configurada en cualquier caso.
func (t *Transformer) Transform(games []domain.Game, now time.Time) ([]domain.TransformedGame, error) {
	window := t.Window(now)

	type dated struct {
		game  domain.Game
		start time.Time
	}
	inWeek := make([]dated, 0, len(games))
	for _, g := range games {
		start, err := domain.ParseTimestamp("commence_time", g.CommenceTime)
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", g.Label(), err)
		}
		if window.Contains(start) {
			inWeek = append(inWeek, dated{game: g, start: start.In(t.loc)})
		}
	}

	sort.SliceStable(inWeek, func(i, j int) bool {
		return inWeek[i].start.Before(inWeek[j].start)
	})

	out := make([]domain.TransformedGame, 0, len(inWeek))
	for _, d := range inWeek {
		tg, err := t.summarize(d.game)
		if err != nil {
			return nil, err
		}
		tg.CommenceTime = d.start
		out = append(out, tg)
	}
	return out, nil
}

// summarize extrae favorito, spread y total de un partido.
func (t *Transformer) summarize(g domain.Game) (domain.TransformedGame, error) {
	book, ok := g.Bookmaker(t.bookmaker)
	if !ok {
		return domain.TransformedGame{}, &domain.TransformError{
			Game: g.Label(), Field: "bookmakers", Reason: bookmakerReason(t.bookmaker),
		}
	}

	spreads, ok := book.Market(domain.MarketSpreads)
	if !ok {
		return domain.TransformedGame{}, &domain.TransformError{
			Game: g.Label(), Field: domain.MarketSpreads, Reason: "market missing from " + book.Key,
		}
	}
	favored, err := favoredOutcome(g, spreads)
	if err != nil {
		return domain.TransformedGame{}, err
	}

	totals, ok := book.Market(domain.MarketTotals)
	if !ok || len(totals.Outcomes) == 0 {
		return domain.TransformedGame{}, &domain.TransformError{
			Game: g.Label(), Field: domain.MarketTotals, Reason: "market missing or empty in " + book.Key,
		}
	}

	return domain.TransformedGame{
		FavoredTeam: favored.Name,
		HomeTeam:    g.HomeTeam,
		AwayTeam:    g.AwayTeam,
		PointSpread: domain.AdjustHalfPoint(favored.Point),
		TotalsPoint: domain.AdjustHalfPoint(totals.Outcomes[0].Point),
	}, nil
}

// favoredOutcome devuelve el único outcome con spread negativo.
// Un pick 'em (ninguno negativo) o datos ambiguos (más de uno) son error.
func favoredOutcome(g domain.Game, spreads domain.Market) (domain.Outcome, error) {
	var (
		favored domain.Outcome
		count   int
	)
	for _, o := range spreads.Outcomes {
		if o.Point < 0 {
			favored = o
			count++
		}
	}

	switch count {
	case 1:
		return favored, nil
	case 0:
		return domain.Outcome{}, &domain.TransformError{
			Game: g.Label(), Field: domain.MarketSpreads, Reason: "no outcome with a negative point (pick 'em?)",
		}
	default:
		return domain.Outcome{}, &domain.TransformError{
			Game: g.Label(), Field: domain.MarketSpreads, Reason: fmt.Sprintf("%d outcomes with a negative point", count),
		}
	}
}

func bookmakerReason(key string) string {
	if key == "" {
		return "no bookmakers"
	}
	return fmt.Sprintf("bookmaker %q not found", key)
}
