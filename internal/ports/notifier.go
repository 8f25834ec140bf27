package ports

import (
	"context"

	"github.com/alejandrodnm/oddsposter/internal/domain"
)

// Notifier presenta el resumen semanal al usuario.
type Notifier interface {
	// Notify muestra el resumen. En la implementación de consola, imprime el body
	// y opcionalmente una tabla con los partidos.
	Notify(ctx context.Context, summary domain.Summary) error
}
