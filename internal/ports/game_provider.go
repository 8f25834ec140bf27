package ports

import (
	"context"

	"github.com/alejandrodnm/oddsposter/internal/domain"
)

// GameProvider obtiene los partidos con sus odds, desde la API o un archivo local.
type GameProvider interface {
	// FetchGames devuelve los partidos tal cual los publica la fuente.
	// Los fallos de red o de decode se devuelven como *domain.FetchError.
	FetchGames(ctx context.Context) ([]domain.Game, error)
}
