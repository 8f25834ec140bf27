package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/oddsposter/internal/domain"
	"github.com/alejandrodnm/oddsposter/internal/ports"
)

// Config contiene la configuración del pipeline.
type Config struct {
	Location      *time.Location
	WeekStart     domain.Weekday
	Bookmaker     string
	LineBreak     string
	SubjectFormat string
	// Force publica aunque el historial diga que la semana ya se publicó.
	Force bool
	// Now es el reloj de referencia; nil = time.Now.
	Now func() time.Time
}

// DefaultConfig devuelve la configuración de producción: Pacific, semana de martes a lunes.
func DefaultConfig() Config {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		loc = time.UTC
	}
	return Config{
		Location:      loc,
		WeekStart:     domain.Tuesday,
		LineBreak:     LineBreakText,
		SubjectFormat: "Week %d: Three-Leg Parlay",
		Now:           time.Now,
	}
}

// Pipeline es el orquestador: fetch → normalize → transform → format → publish.
type Pipeline struct {
	cfg         Config
	games       ports.GameProvider
	notifier    ports.Notifier
	poster      ports.BoardPoster
	season      ports.SeasonProvider
	postLog     ports.PostLog
	transformer *Transformer
}

// New crea un Pipeline. poster, season y postLog pueden ser nil:
// sin poster solo se imprime el resumen.
func New(
	cfg Config,
	games ports.GameProvider,
	notifier ports.Notifier,
	poster ports.BoardPoster,
	season ports.SeasonProvider,
	postLog ports.PostLog,
) *Pipeline {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Pipeline{
		cfg:         cfg,
		games:       games,
		notifier:    notifier,
		poster:      poster,
		season:      season,
		postLog:     postLog,
		transformer: NewTransformer(cfg.Location, cfg.WeekStart, cfg.Bookmaker),
	}
}

// Build obtiene los partidos y genera el resumen de la semana, sin publicar nada.
func (p *Pipeline) Build(ctx context.Context) (domain.Summary, error) {
	now := p.cfg.Now()

	raw, err := p.games.FetchGames(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("schedule.Build: fetch: %w", err)
	}

	normalized, err := domain.NormalizeGames(raw, p.cfg.Location)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("schedule.Build: %w", err)
	}

	games, err := p.transformer.Transform(normalized, now)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("schedule.Build: %w", err)
	}

	window := p.transformer.Window(now)
	slog.Debug("week built",
		"fetched", len(raw),
		"in_week", len(games),
		"week_start", window.Start.Format(time.DateOnly),
		"week_end", window.End.Format(time.DateOnly),
	)

	return domain.Summary{
		Window:      window,
		Games:       games,
		Body:        Format(games, p.cfg.LineBreak),
		GeneratedAt: now,
	}, nil
}

// Run ejecuta el pipeline completo: construye el resumen, lo notifica y,
// si hay poster, lo publica y lo registra en el historial.
func (p *Pipeline) Run(ctx context.Context) (domain.Summary, error) {
	start := time.Now()

	summary, err := p.Build(ctx)
	if err != nil {
		return domain.Summary{}, err
	}

	if p.notifier != nil {
		if err := p.notifier.Notify(ctx, summary); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	if p.poster != nil {
		if err := p.publish(ctx, summary); err != nil {
			return summary, err
		}
	}

	slog.Info("run complete",
		"games", len(summary.Games),
		"posted", p.poster != nil,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return summary, nil
}

// publish calcula el asunto, evita duplicados y publica el resumen.
func (p *Pipeline) publish(ctx context.Context, summary domain.Summary) error {
	if summary.Empty() {
		slog.Info("no games this week, nothing to post")
		return nil
	}
	if p.season == nil {
		return errors.New("schedule.Run: poster configured without a season provider")
	}

	first, err := p.season.FirstGameDay(ctx)
	if err != nil {
		return fmt.Errorf("schedule.Run: season start: %w", err)
	}
	week := domain.NFLWeek(first, summary.GeneratedAt, p.cfg.WeekStart)
	season := first.Year()
	subject := fmt.Sprintf(p.cfg.SubjectFormat, week)

	if p.postLog != nil && !p.cfg.Force {
		posted, err := p.postLog.HasPosted(ctx, season, week)
		if err != nil {
			return fmt.Errorf("schedule.Run: post log: %w", err)
		}
		if posted {
			slog.Info("week already posted, skipping", "season", season, "week", week)
			return nil
		}
	}

	if err := p.poster.Post(ctx, subject, summary.Body); err != nil {
		return fmt.Errorf("schedule.Run: post: %w", err)
	}

	if p.postLog != nil {
		rec := domain.PostRecord{
			Season:   season,
			Week:     week,
			Subject:  subject,
			Body:     summary.Body,
			Games:    len(summary.Games),
			PostedAt: time.Now(),
		}
		if err := p.postLog.SavePost(ctx, rec); err != nil {
			slog.Warn("storage error", "err", err)
		}
	}
	return nil
}
