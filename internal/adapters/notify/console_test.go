package notify_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/oddsposter/internal/adapters/notify"
	"github.com/alejandrodnm/oddsposter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSummary() domain.Summary {
	loc := time.FixedZone("PDT", -7*3600)
	return domain.Summary{
		Games: []domain.TransformedGame{
			{
				CommenceTime: time.Date(2024, 9, 5, 17, 20, 0, 0, loc),
				FavoredTeam:  "Kansas City Chiefs",
				HomeTeam:     "Kansas City Chiefs",
				AwayTeam:     "Baltimore Ravens",
				PointSpread:  -3.5,
				TotalsPoint:  46.5,
			},
		},
		Body: "\n*** THURSDAY ***\n\nBaltimore Ravens\nKansas City Chiefs | -3.5 | 46.5\n\n",
	}
}

func TestConsole_Notify_PrintsBody(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false)

	s := makeSummary()
	require.NoError(t, n.Notify(context.Background(), s))
	assert.Equal(t, s.Body, buf.String())
}

func TestConsole_Notify_Table(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	require.NoError(t, n.Notify(context.Background(), makeSummary()))

	out := buf.String()
	assert.Contains(t, out, "*Kansas City Chiefs")
	assert.Contains(t, out, "Thu 17:20 PDT")
	assert.Contains(t, out, "-3.5")
	assert.Contains(t, out, "46.5")
	assert.Contains(t, out, "*** THURSDAY ***")
}

func TestConsole_Notify_EmptyWeek(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	s := domain.Summary{Window: domain.WeekWindow{
		Start: time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 9, 16, 23, 59, 59, 0, time.UTC),
	}}
	require.NoError(t, n.Notify(context.Background(), s))
	assert.Contains(t, buf.String(), "no games between Tue Sep 10 and Mon Sep 16")
}
