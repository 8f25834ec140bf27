package ports

import "context"

// BoardPoster publica un mensaje en el message board de la liga.
type BoardPoster interface {
	Post(ctx context.Context, subject, body string) error
}
