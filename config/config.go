package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultWeekStart = 1

// Config es la configuración completa del poster.
type Config struct {
	Odds     OddsConfig     `yaml:"odds"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Season   SeasonConfig   `yaml:"season"`
	Board    BoardConfig    `yaml:"board"`
	Retry    RetryConfig    `yaml:"retry"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// OddsConfig describe de dónde salen los partidos.
type OddsConfig struct {
	// Source es una ruta local o un URL completo. Vacío = construir el URL de la API.
	Source     string `yaml:"source"`
	BaseURL    string `yaml:"base_url"`
	Sport      string `yaml:"sport"`
	Regions    string `yaml:"regions"`
	Markets    string `yaml:"markets"`
	Bookmakers string `yaml:"bookmakers"`
	APIKey     string `yaml:"-"` // solo desde ODDS_API_KEY
}

// ScheduleConfig controla la ventana semanal y el formato.
type ScheduleConfig struct {
	Timezone  string `yaml:"timezone"`
	WeekStart *int   `yaml:"week_start"` // 0=lunes … 6=domingo; nil = martes
	Bookmaker string `yaml:"bookmaker"`  // vacío = primer bookmaker de cada partido
}

// SeasonConfig indica cómo obtener el primer día de la temporada regular.
type SeasonConfig struct {
	Week1Start string `yaml:"week1_start"` // YYYY-MM-DD; si está vacío se consulta la NFL API
	NFLAPIURL  string `yaml:"nfl_api_url"`
	NFLAPIHost string `yaml:"nfl_api_host"`
	NFLAPIKey  string `yaml:"-"` // solo desde NFL_API_KEY
}

// BoardConfig contiene los datos del message board de MFL.
type BoardConfig struct {
	APIBase       string `yaml:"api_base"`
	Year          int    `yaml:"year"`
	LeagueID      string `yaml:"league_id"`
	FranchiseID   string `yaml:"franchise_id"`
	Thread        string `yaml:"thread"`
	SubjectFormat string `yaml:"subject_format"`
	Session       string `yaml:"-"` // cookie MFL_USER_ID, solo desde env
}

// RetryConfig es la política fija de reintentos para el post.
type RetryConfig struct {
	Attempts     int `yaml:"attempts"`
	DelaySeconds int `yaml:"delay_seconds"`
}

// StorageConfig controla dónde se guarda el historial de posts.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del entorno sobreescriben los del YAML.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// Location resuelve la zona horaria configurada.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Schedule.Timezone, err)
	}
	return loc, nil
}

// RetryDelay devuelve la espera entre reintentos como time.Duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Retry.DelaySeconds) * time.Second
}

// WeekStart devuelve el día de inicio de semana (0=lunes). Por defecto martes,
// el día siguiente al Monday Night Football.
func (c *Config) WeekStart() int {
	if c.Schedule.WeekStart == nil {
		return defaultWeekStart
	}
	return *c.Schedule.WeekStart
}

// BoardEnabled devuelve true si hay datos suficientes para postear.
func (c *Config) BoardEnabled() bool {
	return c.Board.LeagueID != "" && c.Board.Session != ""
}

func (c *Config) validate() error {
	if ws := c.WeekStart(); ws < 0 || ws > 6 {
		return fmt.Errorf("schedule.week_start must be 0..6, got %d", ws)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ODDS_SOURCE"); v != "" {
		cfg.Odds.Source = v
	}
	if v := os.Getenv("ODDS_API_KEY"); v != "" {
		cfg.Odds.APIKey = v
	}
	if v := os.Getenv("NFL_API_KEY"); v != "" {
		cfg.Season.NFLAPIKey = v
	}
	if v := os.Getenv("MFL_USER_ID"); v != "" {
		cfg.Board.Session = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Odds.BaseURL == "" {
		cfg.Odds.BaseURL = "https://api.the-odds-api.com/v4"
	}
	if cfg.Odds.Sport == "" {
		cfg.Odds.Sport = "americanfootball_nfl"
	}
	if cfg.Odds.Regions == "" {
		cfg.Odds.Regions = "us"
	}
	if cfg.Odds.Markets == "" {
		cfg.Odds.Markets = "spreads,totals"
	}
	if cfg.Odds.Bookmakers == "" {
		cfg.Odds.Bookmakers = "draftkings"
	}
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "America/Los_Angeles"
	}
	if cfg.Season.NFLAPIURL == "" {
		cfg.Season.NFLAPIURL = "https://nfl-football-api.p.rapidapi.com/nfl-whitelist"
	}
	if cfg.Season.NFLAPIHost == "" {
		cfg.Season.NFLAPIHost = "nfl-football-api.p.rapidapi.com"
	}
	if cfg.Board.APIBase == "" {
		cfg.Board.APIBase = "https://api.myfantasyleague.com"
	}
	if cfg.Board.Year == 0 {
		cfg.Board.Year = time.Now().Year()
	}
	if cfg.Board.SubjectFormat == "" {
		cfg.Board.SubjectFormat = "Week %d: Three-Leg Parlay"
	}
	if cfg.Retry.Attempts <= 0 {
		cfg.Retry.Attempts = 3
	}
	if cfg.Retry.DelaySeconds <= 0 {
		cfg.Retry.DelaySeconds = 3
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "oddsposter.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
