package ports

import (
	"context"
	"time"
)

// SeasonProvider devuelve el primer día de la temporada regular.
type SeasonProvider interface {
	FirstGameDay(ctx context.Context) (time.Time, error)
}
