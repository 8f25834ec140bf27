// Package retry reintenta operaciones con una política fija: N intentos
// separados por una espera constante, y después falla con el último error.
package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy es una política de reintentos de intentos y espera fijos.
type Policy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultPolicy replica el comportamiento clásico del poster: 3 intentos, 3s entre ellos.
func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Delay: 3 * time.Second}
}

// Permanent marca un error como no reintentable.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do ejecuta fn hasta que devuelva nil, se agoten los intentos, fn devuelva
// un error Permanent o ctx se cancele.
func Do(ctx context.Context, p Policy, op string, fn func() error) error {
	if p.Attempts <= 0 {
		p.Attempts = 1
	}

	var b backoff.BackOff = backoff.NewConstantBackOff(p.Delay)
	b = backoff.WithMaxRetries(b, uint64(p.Attempts-1))
	b = backoff.WithContext(b, ctx)

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		return fn()
	}, b, func(err error, wait time.Duration) {
		slog.Warn("attempt failed, retrying",
			"op", op,
			"attempt", attempt,
			"max_attempts", p.Attempts,
			"wait", wait,
			"err", err,
		)
	})
}
