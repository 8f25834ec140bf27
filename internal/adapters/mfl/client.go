// Package mfl publica mensajes en el message board de una liga de MyFantasyLeague.
//
// La sesión (cookie MFL_USER_ID) se recibe ya emitida; este paquete no hace login.
package mfl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alejandrodnm/oddsposter/internal/retry"
	"golang.org/x/time/rate"
)

const (
	defaultAPIBase = "https://api.myfantasyleague.com"
	sessionCookie  = "MFL_USER_ID"

	// MFL bloquea clientes que hacen ráfagas; 1 req/s es de sobra para un post semanal.
	requestsPerSec = 1
)

// Config identifica la liga, la franquicia y el hilo donde se publica.
type Config struct {
	APIBase     string
	Year        int
	LeagueID    string
	FranchiseID string
	Thread      string // vacío = hilo nuevo
	Session     string // valor de la cookie MFL_USER_ID
	Retry       retry.Policy
}

// Client implementa ports.BoardPoster sobre la API de import de MFL.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	cfg     Config
}

// NewClient crea un Client. Si APIBase está vacío usa el host público de la API.
func NewClient(cfg Config) *Client {
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")
	if cfg.Year == 0 {
		cfg.Year = time.Now().Year()
	}
	if cfg.Retry.Attempts <= 0 {
		cfg.Retry = retry.DefaultPolicy()
	}
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(requestsPerSec, 5),
		cfg:     cfg,
	}
}

// leagueExport es la parte que nos interesa de export?TYPE=league.
type leagueExport struct {
	League struct {
		BaseURL string `json:"baseURL"`
	} `json:"league"`
}

// importResponse es la respuesta de import; MFL devuelve 200 incluso en errores.
type importResponse struct {
	Error *struct {
		Text string `json:"$t"`
	} `json:"error"`
}

// Host devuelve el servidor asignado a la liga (p.ej. https://www48.myfantasyleague.com).
func (c *Client) Host(ctx context.Context) (string, error) {
	q := url.Values{}
	q.Set("TYPE", "league")
	q.Set("L", c.cfg.LeagueID)
	q.Set("JSON", "1")
	u := fmt.Sprintf("%s/%d/export?%s", c.cfg.APIBase, c.cfg.Year, q.Encode())

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("mfl.Host: rate limiter: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("mfl.Host: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("mfl.Host: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mfl.Host: status %d", resp.StatusCode)
	}
	var exp leagueExport
	if err := json.NewDecoder(resp.Body).Decode(&exp); err != nil {
		return "", fmt.Errorf("mfl.Host: decode: %w", err)
	}
	if exp.League.BaseURL == "" {
		return "", errors.New("mfl.Host: league has no baseURL")
	}
	return strings.TrimRight(exp.League.BaseURL, "/"), nil
}

// Post publica subject/body en el message board. Los fallos HTTP se reintentan
// según cfg.Retry; un error reportado por MFL no se reintenta.
func (c *Client) Post(ctx context.Context, subject, body string) error {
	host, err := c.Host(ctx)
	if err != nil {
		slog.Warn("could not resolve league host, using API base", "err", err, "base", c.cfg.APIBase)
		host = c.cfg.APIBase
	}

	q := url.Values{}
	q.Set("TYPE", "messageBoard")
	q.Set("L", c.cfg.LeagueID)
	q.Set("FRANCHISE_ID", c.cfg.FranchiseID)
	q.Set("THREAD", c.cfg.Thread)
	q.Set("SUBJECT", subject)
	q.Set("BODY", body)
	q.Set("JSON", "1")
	u := fmt.Sprintf("%s/%d/import?%s", host, c.cfg.Year, q.Encode())

	attempt := 0
	err = retry.Do(ctx, c.cfg.Retry, "mfl post", func() error {
		attempt++
		return c.postOnce(ctx, u)
	})
	if err != nil {
		return fmt.Errorf("mfl.Post: %w", err)
	}

	slog.Info("posted to message board",
		"league", c.cfg.LeagueID,
		"subject", subject,
		"attempts", attempt,
	)
	return nil
}

func (c *Client) postOnce(ctx context.Context, u string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return retry.Permanent(fmt.Errorf("rate limiter: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return retry.Permanent(err)
	}
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.cfg.Session})

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var ir importResponse
	if json.Unmarshal(data, &ir) == nil && ir.Error != nil {
		return retry.Permanent(fmt.Errorf("rejected by MFL: %s", ir.Error.Text))
	}
	return nil
}

// String evita que la sesión aparezca en logs si alguien imprime el Client.
func (c *Client) String() string {
	return "mfl.Client{league=" + c.cfg.LeagueID + ", year=" + strconv.Itoa(c.cfg.Year) + "}"
}
