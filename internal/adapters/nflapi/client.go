package nflapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	regularSeasonLabel = "Regular Season"
	week1Label         = "Week 1"
)

// calendarResponse es la respuesta de /nfl-whitelist (calendario de la temporada).
type calendarResponse struct {
	Sections []struct {
		Label   string `json:"label"`
		Entries []struct {
			Label     string `json:"label"`
			StartDate string `json:"startDate"`
			EndDate   string `json:"endDate"`
		} `json:"entries"`
	} `json:"sections"`
}

// Client consulta el calendario NFL en RapidAPI para saber cuándo empieza la temporada.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	url     string
	host    string
	apiKey  string
}

// NewClient crea un Client. host es el valor de la cabecera rapidapi-host.
func NewClient(url, host, apiKey string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		url:     url,
		host:    host,
		apiKey:  apiKey,
	}
}

// FirstGameDay implementa ports.SeasonProvider: startDate de la semana 1 de la temporada regular.
func (c *Client) FirstGameDay(ctx context.Context) (time.Time, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return time.Time{}, fmt.Errorf("nflapi.FirstGameDay: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("nflapi.FirstGameDay: %w", err)
	}
	req.Header.Set("rapidapi-host", c.host)
	req.Header.Set("rapidapi-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("nflapi.FirstGameDay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("nflapi.FirstGameDay: status %d", resp.StatusCode)
	}

	var cal calendarResponse
	if err := json.NewDecoder(resp.Body).Decode(&cal); err != nil {
		return time.Time{}, fmt.Errorf("nflapi.FirstGameDay: decode: %w", err)
	}

	for _, s := range cal.Sections {
		if s.Label != regularSeasonLabel {
			continue
		}
		for _, e := range s.Entries {
			if e.Label == week1Label {
				t, err := parseDate(e.StartDate)
				if err != nil {
					return time.Time{}, fmt.Errorf("nflapi.FirstGameDay: %w", err)
				}
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("nflapi.FirstGameDay: %q / %q not found in calendar", regularSeasonLabel, week1Label)
}

// Fixed es un SeasonProvider con la fecha configurada a mano.
type Fixed time.Time

// FirstGameDay implementa ports.SeasonProvider.
func (f Fixed) FirstGameDay(context.Context) (time.Time, error) {
	return time.Time(f), nil
}

// ParseFixed parsea una fecha YYYY-MM-DD (u otro layout soportado) como Fixed.
func ParseFixed(s string) (Fixed, error) {
	t, err := parseDate(s)
	if err != nil {
		return Fixed{}, err
	}
	return Fixed(t), nil
}

// parseDate acepta los formatos que usa el calendario y la config.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
