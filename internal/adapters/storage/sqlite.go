package storage

// sqlite.go: historial de posts publicados.
//
// Una fila por post. Sirve para no publicar dos veces la misma semana
// (HasPosted) y para revisar qué se publicó (GetHistory).
// Prune automático al arrancar: posts de más de 400 días.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/oddsposter/internal/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS posts (
    id        TEXT PRIMARY KEY,
    season    INTEGER  NOT NULL,
    week      INTEGER  NOT NULL,
    subject   TEXT     NOT NULL,
    body      TEXT     NOT NULL,
    games     INTEGER  NOT NULL DEFAULT 0,
    posted_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_posts_week ON posts(season, week);
CREATE INDEX IF NOT EXISTS idx_posts_at   ON posts(posted_at DESC);
`

const retentionPosts = 400 * 24 * time.Hour // algo más de una temporada

// SQLiteStorage implementa ports.PostLog usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada,
// aplica el schema y limpia posts antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SavePost persiste un post. Si rec.ID está vacío se genera un UUID;
// si PostedAt es cero se usa la hora actual.
func (s *SQLiteStorage) SavePost(ctx context.Context, rec domain.PostRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.PostedAt.IsZero() {
		rec.PostedAt = time.Now()
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (id, season, week, subject, body, games, posted_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Season, rec.Week, rec.Subject, rec.Body, rec.Games, rec.PostedAt.UTC(),
	); err != nil {
		return fmt.Errorf("storage.SavePost: insert %s: %w", rec.ID, err)
	}
	return nil
}

// HasPosted devuelve true si ya hay un post para season/week.
func (s *SQLiteStorage) HasPosted(ctx context.Context, season, week int) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE season = ? AND week = ?`, season, week,
	).Scan(&n); err != nil {
		return false, fmt.Errorf("storage.HasPosted: %w", err)
	}
	return n > 0, nil
}

// GetHistory devuelve los posts cuyo posted_at está en el rango dado, más recientes primero.
func (s *SQLiteStorage) GetHistory(ctx context.Context, from, to time.Time) ([]domain.PostRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, season, week, subject, body, games, posted_at
		FROM posts
		WHERE posted_at BETWEEN ? AND ?
		ORDER BY posted_at DESC
	`, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("storage.GetHistory: query: %w", err)
	}
	defer rows.Close()

	var recs []domain.PostRecord
	for rows.Next() {
		var rec domain.PostRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Season,
			&rec.Week,
			&rec.Subject,
			&rec.Body,
			&rec.Games,
			&rec.PostedAt,
		); err != nil {
			return nil, fmt.Errorf("storage.GetHistory: scan row: %w", err)
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina posts antiguos para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionPosts)
	s.db.ExecContext(ctx, `DELETE FROM posts WHERE posted_at < ?`, cutoff)
}
