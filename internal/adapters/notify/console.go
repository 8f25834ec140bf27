package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alejandrodnm/oddsposter/internal/domain"
	"github.com/olekukonko/tablewriter"
)

const kickoffLayout = "Mon 15:04 MST"

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador que escribe en w (tests).
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify imprime el resumen y, en modo tabla, la tabla de partidos.
func (c *Console) Notify(_ context.Context, summary domain.Summary) error {
	if summary.Empty() {
		fmt.Fprintf(c.out, "no games between %s and %s\n",
			summary.Window.Start.Format("Mon Jan 2"),
			summary.Window.End.Format("Mon Jan 2"),
		)
		return nil
	}

	if c.table {
		if err := c.printTable(summary.Games); err != nil {
			return fmt.Errorf("notify.Console: %w", err)
		}
	}

	fmt.Fprint(c.out, summary.Body)
	if !strings.HasSuffix(summary.Body, "\n") {
		fmt.Fprintln(c.out)
	}
	return nil
}

// printTable imprime una fila por partido con el favorito marcado.
func (c *Console) printTable(games []domain.TransformedGame) error {
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Kickoff", "Away", "Home", "Favorite", "Spread", "Total")

	for i, g := range games {
		away, home := g.AwayTeam, g.HomeTeam
		if g.FavoredIsAway() {
			away = "*" + away
		} else {
			home = "*" + home
		}
		table.Append(
			strconv.Itoa(i+1),
			g.CommenceTime.Format(kickoffLayout),
			away,
			home,
			g.FavoredTeam,
			strconv.FormatFloat(g.PointSpread, 'f', -1, 64),
			strconv.FormatFloat(g.TotalsPoint, 'f', -1, 64),
		)
	}
	return table.Render()
}
