package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/oddsposter/internal/domain"
)

// PostLog persiste el historial de posts publicados en el board.
type PostLog interface {
	// SavePost registra un post publicado.
	SavePost(ctx context.Context, rec domain.PostRecord) error

	// HasPosted devuelve true si ya se publicó la semana dada de la temporada.
	HasPosted(ctx context.Context, season, week int) (bool, error)

	// GetHistory devuelve los posts publicados en el rango de tiempo dado.
	GetHistory(ctx context.Context, from, to time.Time) ([]domain.PostRecord, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
