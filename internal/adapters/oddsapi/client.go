package oddsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alejandrodnm/oddsposter/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultBase = "https://api.the-odds-api.com/v4"

	// the-odds-api cobra por request; no tiene sentido ir más rápido que esto.
	requestsPerSec = 2

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Query son los parámetros de GET /sports/{sport}/odds.
type Query struct {
	Sport      string
	Regions    string
	Markets    string
	Bookmakers string
	APIKey     string
}

// Client es el HTTP client de the-odds-api con rate limiting y retries.
// También sirve para cualquier URL que devuelva el mismo JSON.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	url     string
}

// NewClient crea un Client que consulta la API con la query dada.
// Si base está vacío, usa el URL de producción.
func NewClient(base string, q Query) *Client {
	if base == "" {
		base = defaultBase
	}
	return NewURLClient(buildURL(base, q))
}

// NewURLClient crea un Client que hace GET a un URL ya construido.
func NewURLClient(rawURL string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(requestsPerSec, 1),
		url:     rawURL,
	}
}

// FetchGames implementa ports.GameProvider.
func (c *Client) FetchGames(ctx context.Context) ([]domain.Game, error) {
	var raw []oddsEvent
	if err := c.get(ctx, c.url, &raw); err != nil {
		return nil, &domain.FetchError{Source: redact(c.url), Err: err}
	}

	games := mapEvents(raw)
	slog.Debug("odds fetched", "source", redact(c.url), "games", len(games))
	return games, nil
}

// get hace un GET con rate limiting y retries.
func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	return c.doWithRetry(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		resp, err := c.http.Do(req)
		var ue *url.Error
		if errors.As(err, &ue) {
			// url.Error incluye el URL completo, con apiKey
			return nil, ue.Err
		}
		return resp, err
	}, out)
}

// doWithRetry ejecuta la función con backoff exponencial, reintentando solo
// errores de red, 429 y 5xx.
func (c *Client) doWithRetry(ctx context.Context, fn func() (*http.Response, error), out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := fn()
		if err != nil {
			if errors.Is(err, context.Canceled) || attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", attempt, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("status %d after %d retries", resp.StatusCode, maxRetries)
			}
			slog.Warn("odds api unavailable, retrying", "status", resp.StatusCode, "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return fmt.Errorf("client error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}

func buildURL(base string, q Query) string {
	v := url.Values{}
	v.Set("regions", q.Regions)
	v.Set("markets", q.Markets)
	if q.Bookmakers != "" {
		v.Set("bookmakers", q.Bookmakers)
	}
	v.Set("apiKey", q.APIKey)
	return fmt.Sprintf("%s/sports/%s/odds/?%s", strings.TrimRight(base, "/"), url.PathEscape(q.Sport), v.Encode())
}

// redact oculta el apiKey para que el URL pueda ir a logs y errores.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("apiKey") {
		q.Set("apiKey", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
