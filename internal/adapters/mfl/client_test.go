package mfl_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alejandrodnm/oddsposter/internal/adapters/mfl"
	"github.com/alejandrodnm/oddsposter/internal/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMFL simula export (host lookup) e import (post) en el mismo servidor.
type fakeMFL struct {
	srv          *httptest.Server
	importCalls  int
	importStatus []int // status por intento; el último se repite
	importBody   string
	lastQuery    map[string]string
	lastCookie   string
}

func newFakeMFL(t *testing.T) *fakeMFL {
	f := &fakeMFL{importBody: `{"status":"OK"}`}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/export"):
			assert.Equal(t, "league", r.URL.Query().Get("TYPE"))
			w.Write([]byte(`{"league":{"baseURL":"` + f.srv.URL + `","name":"Test League"}}`))
		case strings.HasSuffix(r.URL.Path, "/import"):
			f.importCalls++
			f.lastQuery = map[string]string{}
			for k := range r.URL.Query() {
				f.lastQuery[k] = r.URL.Query().Get(k)
			}
			if c, err := r.Cookie("MFL_USER_ID"); err == nil {
				f.lastCookie = c.Value
			}
			status := http.StatusOK
			if len(f.importStatus) > 0 {
				i := min(f.importCalls-1, len(f.importStatus)-1)
				status = f.importStatus[i]
			}
			w.WriteHeader(status)
			w.Write([]byte(f.importBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeMFL) client() *mfl.Client {
	return mfl.NewClient(mfl.Config{
		APIBase:     f.srv.URL,
		Year:        2024,
		LeagueID:    "15781",
		FranchiseID: "0008",
		Session:     "cookie-abc",
		Retry:       retry.Policy{Attempts: 3, Delay: time.Millisecond},
	})
}

func TestHost(t *testing.T) {
	f := newFakeMFL(t)
	host, err := f.client().Host(context.Background())
	require.NoError(t, err)
	assert.Equal(t, f.srv.URL, host)
}

func TestPost_Success(t *testing.T) {
	f := newFakeMFL(t)

	err := f.client().Post(context.Background(), "Week 1: Three-Leg Parlay", "<br>*** THURSDAY ***<br><br>")
	require.NoError(t, err)

	assert.Equal(t, 1, f.importCalls)
	assert.Equal(t, "cookie-abc", f.lastCookie)
	assert.Equal(t, "messageBoard", f.lastQuery["TYPE"])
	assert.Equal(t, "15781", f.lastQuery["L"])
	assert.Equal(t, "0008", f.lastQuery["FRANCHISE_ID"])
	assert.Equal(t, "Week 1: Three-Leg Parlay", f.lastQuery["SUBJECT"])
	assert.Equal(t, "<br>*** THURSDAY ***<br><br>", f.lastQuery["BODY"])
	assert.Equal(t, "1", f.lastQuery["JSON"])
}

func TestPost_RetriesThenSucceeds(t *testing.T) {
	f := newFakeMFL(t)
	f.importStatus = []int{http.StatusBadGateway, http.StatusOK}

	require.NoError(t, f.client().Post(context.Background(), "s", "b"))
	assert.Equal(t, 2, f.importCalls)
}

func TestPost_FailsAfterMaxAttempts(t *testing.T) {
	f := newFakeMFL(t)
	f.importStatus = []int{http.StatusInternalServerError}

	err := f.client().Post(context.Background(), "s", "b")
	require.Error(t, err)
	assert.Equal(t, 3, f.importCalls)
	assert.Contains(t, err.Error(), "500")
}

func TestPost_RejectedByMFLIsNotRetried(t *testing.T) {
	f := newFakeMFL(t)
	f.importBody = `{"error":{"$t":"Invalid franchise"}}`

	err := f.client().Post(context.Background(), "s", "b")
	require.Error(t, err)
	assert.Equal(t, 1, f.importCalls)
	assert.Contains(t, err.Error(), "Invalid franchise")
}

func TestPost_FallsBackToAPIBaseWhenHostLookupFails(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/export") {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		calls++
		assert.Equal(t, "/2024/import", r.URL.Path)
		w.Write([]byte(`{"status":"OK"}`))
	}))
	defer srv.Close()

	c := mfl.NewClient(mfl.Config{APIBase: srv.URL, Year: 2024, LeagueID: "1", Session: "x",
		Retry: retry.Policy{Attempts: 1, Delay: time.Millisecond}})
	require.NoError(t, c.Post(context.Background(), "s", "b"))
	assert.Equal(t, 1, calls)
}

func TestClient_StringHidesSession(t *testing.T) {
	f := newFakeMFL(t)
	assert.NotContains(t, f.client().String(), "cookie-abc")
}
