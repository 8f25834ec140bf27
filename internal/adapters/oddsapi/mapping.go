package oddsapi

import "github.com/alejandrodnm/oddsposter/internal/domain"

// mapEvents convierte los DTOs de la API a domain.Game.
func mapEvents(raw []oddsEvent) []domain.Game {
	games := make([]domain.Game, 0, len(raw))
	for _, r := range raw {
		games = append(games, mapEvent(r))
	}
	return games
}

func mapEvent(r oddsEvent) domain.Game {
	g := domain.Game{
		ID:           r.ID,
		SportKey:     r.SportKey,
		CommenceTime: r.CommenceTime,
		HomeTeam:     r.HomeTeam,
		AwayTeam:     r.AwayTeam,
		Bookmakers:   make([]domain.Bookmaker, 0, len(r.Bookmakers)),
	}
	for _, b := range r.Bookmakers {
		db := domain.Bookmaker{Key: b.Key, Title: b.Title}
		for _, m := range b.Markets {
			dm := domain.Market{Key: m.Key, Outcomes: make([]domain.Outcome, 0, len(m.Outcomes))}
			for _, o := range m.Outcomes {
				do := domain.Outcome{Name: o.Name, Price: o.Price}
				if o.Point != nil {
					do.Point = *o.Point
				}
				dm.Outcomes = append(dm.Outcomes, do)
			}
			db.Markets = append(db.Markets, dm)
		}
		g.Bookmakers = append(g.Bookmakers, db)
	}
	return g
}
