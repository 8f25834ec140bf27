package nflapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alejandrodnm/oddsposter/internal/adapters/nflapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calendar = `{
  "sections": [
    {"label": "Preseason", "entries": [{"label": "Week 1", "startDate": "2024-08-01T07:00Z"}]},
    {"label": "Regular Season", "entries": [
      {"label": "Week 1", "startDate": "2024-09-04T07:00Z", "endDate": "2024-09-11T06:59Z"},
      {"label": "Week 2", "startDate": "2024-09-11T07:00Z", "endDate": "2024-09-18T06:59Z"}
    ]}
  ]
}`

func TestFirstGameDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "nfl.example", r.Header.Get("rapidapi-host"))
		assert.Equal(t, "key-1", r.Header.Get("rapidapi-key"))
		w.Write([]byte(calendar))
	}))
	defer srv.Close()

	got, err := nflapi.NewClient(srv.URL, "nfl.example", "key-1").FirstGameDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 4, 7, 0, 0, 0, time.UTC), got)
}

func TestFirstGameDay_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sections":[{"label":"Preseason","entries":[]}]}`))
	}))
	defer srv.Close()

	_, err := nflapi.NewClient(srv.URL, "h", "k").FirstGameDay(context.Background())
	assert.Error(t, err)
}

func TestFirstGameDay_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := nflapi.NewClient(srv.URL, "h", "k").FirstGameDay(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestParseFixed(t *testing.T) {
	f, err := nflapi.ParseFixed("2024-09-05")
	require.NoError(t, err)

	got, err := f.FirstGameDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC), got)

	_, err = nflapi.ParseFixed("5 de septiembre")
	assert.Error(t, err)
}
