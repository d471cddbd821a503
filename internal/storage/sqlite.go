package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"accneat/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveChampion(ctx context.Context, champion model.Champion) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	if champion.ID == "" {
		return errors.New("champion id is required")
	}

	champion = Stamp(champion)
	payload, err := EncodeChampion(champion)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO champions (id, schema_version, codec_version, fitness, selected_at_utc, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			fitness = excluded.fitness,
			selected_at_utc = excluded.selected_at_utc,
			payload = excluded.payload
	`, champion.ID, champion.SchemaVersion, champion.CodecVersion, float64(champion.Genome.Fitness()), champion.SelectedAtUTC, payload)
	return err
}

func (s *SQLiteStore) GetChampion(ctx context.Context, id string) (model.Champion, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.Champion{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM champions WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Champion{}, false, nil
	}
	if err != nil {
		return model.Champion{}, false, err
	}

	champion, err := DecodeChampion(payload)
	if err != nil {
		return model.Champion{}, false, fmt.Errorf("decode champion %s: %w", id, err)
	}
	return champion, true, nil
}

func (s *SQLiteStore) ListChampions(ctx context.Context) ([]model.Champion, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, payload FROM champions ORDER BY selected_at_utc DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Champion
	for rows.Next() {
		var (
			id      string
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		champion, err := DecodeChampion(payload)
		if err != nil {
			return nil, fmt.Errorf("decode champion %s: %w", id, err)
		}
		out = append(out, champion)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS champions (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			fitness REAL NOT NULL,
			selected_at_utc TEXT NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	return err
}
