package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/oddsposter/config"
	"github.com/alejandrodnm/oddsposter/internal/adapters/mfl"
	"github.com/alejandrodnm/oddsposter/internal/adapters/nflapi"
	"github.com/alejandrodnm/oddsposter/internal/adapters/notify"
	"github.com/alejandrodnm/oddsposter/internal/adapters/oddsapi"
	"github.com/alejandrodnm/oddsposter/internal/adapters/storage"
	"github.com/alejandrodnm/oddsposter/internal/domain"
	"github.com/alejandrodnm/oddsposter/internal/ports"
	"github.com/alejandrodnm/oddsposter/internal/retry"
	"github.com/alejandrodnm/oddsposter/internal/schedule"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	html := flag.Bool("html", false, "use <br> as line break instead of \\n")
	post := flag.Bool("post", false, "post the summary to the MFL message board")
	force := flag.Bool("force", false, "post even if this week was already posted")
	table := flag.Bool("table", false, "print a table of the week's games before the summary")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	dsn := flag.String("db", "", "post log SQLite path (overrides config)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: oddsposter [flags] [source]\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "source is a local JSON file or an http(s) URL; default: the odds API.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *dsn != "" {
		cfg.Storage.DSN = *dsn
	}
	if flag.NArg() > 0 {
		cfg.Odds.Source = flag.Arg(0)
	}
	// stdout es para el resumen
	setupLogger(os.Stderr, cfg.Log)

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid timezone", "err", err)
		os.Exit(1)
	}

	slog.Info("oddsposter starting",
		"config", *configPath,
		"source", sourceLabel(cfg.Odds.Source),
		"timezone", loc.String(),
		"week_start", domain.Weekday(cfg.WeekStart()).String(),
		"post", *post,
	)

	pipeCfg := schedule.DefaultConfig()
	pipeCfg.Location = loc
	pipeCfg.WeekStart = domain.Weekday(cfg.WeekStart())
	pipeCfg.Bookmaker = cfg.Schedule.Bookmaker
	pipeCfg.SubjectFormat = cfg.Board.SubjectFormat
	pipeCfg.Force = *force
	if *html {
		pipeCfg.LineBreak = schedule.LineBreakHTML
	}

	var (
		poster  ports.BoardPoster
		season  ports.SeasonProvider
		postLog ports.PostLog
	)
	if *post {
		if !cfg.BoardEnabled() {
			slog.Error("posting requires board.league_id and MFL_USER_ID")
			os.Exit(1)
		}
		poster = mfl.NewClient(mfl.Config{
			APIBase:     cfg.Board.APIBase,
			Year:        cfg.Board.Year,
			LeagueID:    cfg.Board.LeagueID,
			FranchiseID: cfg.Board.FranchiseID,
			Thread:      cfg.Board.Thread,
			Session:     cfg.Board.Session,
			Retry:       retry.Policy{Attempts: cfg.Retry.Attempts, Delay: cfg.RetryDelay()},
		})

		season, err = seasonProvider(cfg.Season)
		if err != nil {
			slog.Error("invalid season config", "err", err)
			os.Exit(1)
		}

		store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
		postLog = store
	}

	p := schedule.New(pipeCfg, gameProvider(cfg.Odds), notify.NewConsole(*table), poster, season, postLog)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if _, err := p.Run(ctx); err != nil {
		slog.Error("pipeline failed", "err", err)
		cancel()
		os.Exit(1)
	}
}

// gameProvider elige la fuente: archivo/URL explícito o la API con la query configurada.
func gameProvider(cfg config.OddsConfig) ports.GameProvider {
	if cfg.Source != "" {
		return oddsapi.NewSource(cfg.Source)
	}
	return oddsapi.NewClient(cfg.BaseURL, oddsapi.Query{
		Sport:      cfg.Sport,
		Regions:    cfg.Regions,
		Markets:    cfg.Markets,
		Bookmakers: cfg.Bookmakers,
		APIKey:     cfg.APIKey,
	})
}

func seasonProvider(cfg config.SeasonConfig) (ports.SeasonProvider, error) {
	if cfg.Week1Start != "" {
		fixed, err := nflapi.ParseFixed(cfg.Week1Start)
		if err != nil {
			return nil, fmt.Errorf("season.week1_start: %w", err)
		}
		return fixed, nil
	}
	return nflapi.NewClient(cfg.NFLAPIURL, cfg.NFLAPIHost, cfg.NFLAPIKey), nil
}

func sourceLabel(source string) string {
	if source == "" {
		return "odds-api"
	}
	return source
}

func setupLogger(w io.Writer, cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}
