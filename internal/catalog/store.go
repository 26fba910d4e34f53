// Package catalog stores the song catalog and the recommendation history.
//
// It uses SQLite through the pure-Go modernc.org/sqlite driver. A fresh
// database is seeded with the built-in catalog; afterwards songs can be
// added through AddSong. Every recommendation handed out is recorded so
// it can be listed later.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

var (
	// ErrDuplicateSong is returned when a genre already lists the title.
	ErrDuplicateSong = errors.New("song already in catalog")
	// ErrNotFound is returned for unknown recommendation IDs.
	ErrNotFound = errors.New("not found")
)

// ─── Types ───────────────────────────────────────────────────────────────────

// Song is one catalog entry.
type Song struct {
	ID     int64  `json:"id"`
	Genre  string `json:"genre"`
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
}

// String renders the song as "Title - Artist".
func (s Song) String() string {
	if s.Artist == "" {
		return s.Title
	}
	return s.Title + " - " + s.Artist
}

// ParseSong splits "Title - Artist" on the last " - ". A string without
// the separator becomes a title with no artist.
func ParseSong(genre, entry string) Song {
	entry = strings.TrimSpace(entry)
	if i := strings.LastIndex(entry, " - "); i > 0 {
		return Song{Genre: genre, Title: strings.TrimSpace(entry[:i]), Artist: strings.TrimSpace(entry[i+3:])}
	}
	return Song{Genre: genre, Title: entry}
}

// Record is one persisted recommendation.
type Record struct {
	ID            string   `json:"id"`
	Age           float64  `json:"age"`
	Mood          float64  `json:"mood"`
	ListeningTime float64  `json:"listening_time"`
	Tempo         float64  `json:"tempo"`
	Score         float64  `json:"score"`
	Genre         string   `json:"genre"`
	Songs         []string `json:"songs"`
	CreatedAt     string   `json:"created_at"`
}

// GenreCount is the number of songs in one genre.
type GenreCount struct {
	Genre string `json:"genre"`
	Songs int    `json:"songs"`
}

// Stats holds aggregate catalog statistics.
type Stats struct {
	TotalSongs           int            `json:"total_songs"`
	TotalRecommendations int            `json:"total_recommendations"`
	ByGenre              map[string]int `json:"by_genre"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds catalog store configuration.
type Config struct {
	DataDir string
	// SkipSeed leaves a fresh database empty.
	SkipSeed bool
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the SQLite-backed catalog.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New opens (or creates) <DataDir>/cadence.db, applies pragmas, runs
// migrations and seeds an empty catalog.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("catalog: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "cadence.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("catalog: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog: migration: %w", err)
	}
	if !cfg.SkipSeed {
		if err := s.seed(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("catalog: seed: %w", err)
		}
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS songs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			genre      TEXT NOT NULL,
			title      TEXT NOT NULL,
			artist     TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			UNIQUE (genre, title, artist)
		);

		CREATE INDEX IF NOT EXISTS idx_songs_genre ON songs(genre);

		CREATE TABLE IF NOT EXISTS recommendations (
			id             TEXT PRIMARY KEY,
			age            REAL NOT NULL,
			mood           REAL NOT NULL,
			listening_time REAL NOT NULL,
			tempo          REAL NOT NULL,
			score          REAL NOT NULL,
			genre          TEXT NOT NULL,
			songs          TEXT NOT NULL DEFAULT '[]',
			created_at     TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_rec_created ON recommendations(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_rec_genre   ON recommendations(genre);
	`)
	return err
}

// seed fills an empty songs table with the built-in catalog. It is a
// no-op once any song exists, so user edits survive restarts.
func (s *Store) seed() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM songs`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, genre := range seedOrder {
		for _, entry := range defaultSongs[genre] {
			song := ParseSong(genre, entry)
			if _, err := tx.Exec(
				`INSERT INTO songs (genre, title, artist) VALUES (?, ?, ?)`,
				song.Genre, song.Title, song.Artist,
			); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// ─── Songs ───────────────────────────────────────────────────────────────────

// Songs returns every song of a genre in insertion order. An empty genre
// returns the whole catalog.
func (s *Store) Songs(ctx context.Context, genre string) ([]Song, error) {
	query := `SELECT id, genre, title, artist FROM songs ORDER BY genre, id`
	var args []any
	if genre != "" {
		query = `SELECT id, genre, title, artist FROM songs WHERE genre = ? ORDER BY id`
		args = append(args, genre)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing songs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var songs []Song
	for rows.Next() {
		var song Song
		if err := rows.Scan(&song.ID, &song.Genre, &song.Title, &song.Artist); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// AddSong inserts a song and returns its ID.
func (s *Store) AddSong(ctx context.Context, song Song) (int64, error) {
	song.Genre = strings.TrimSpace(song.Genre)
	song.Title = strings.TrimSpace(song.Title)
	if song.Genre == "" || song.Title == "" {
		return 0, fmt.Errorf("adding song: genre and title are required")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO songs (genre, title, artist) VALUES (?, ?, ?)`,
		song.Genre, song.Title, strings.TrimSpace(song.Artist),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s in %s", ErrDuplicateSong, song, song.Genre)
		}
		return 0, fmt.Errorf("adding song: %w", err)
	}
	return res.LastInsertId()
}

// Genres returns the song count per genre, alphabetically.
func (s *Store) Genres(ctx context.Context) ([]GenreCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT genre, COUNT(*) FROM songs GROUP BY genre ORDER BY genre`,
	)
	if err != nil {
		return nil, fmt.Errorf("counting genres: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []GenreCount
	for rows.Next() {
		var g GenreCount
		if err := rows.Scan(&g.Genre, &g.Songs); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ─── Recommendations ─────────────────────────────────────────────────────────

// SaveRecommendation records a recommendation. CreatedAt defaults to now.
func (s *Store) SaveRecommendation(ctx context.Context, r Record) error {
	if r.ID == "" {
		return fmt.Errorf("saving recommendation: id is required")
	}
	if r.CreatedAt == "" {
		r.CreatedAt = Now()
	}
	songs, err := json.Marshal(nonNil(r.Songs))
	if err != nil {
		return fmt.Errorf("encoding songs: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO recommendations
			(id, age, mood, listening_time, tempo, score, genre, songs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Age, r.Mood, r.ListeningTime, r.Tempo, r.Score, r.Genre, string(songs), r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving recommendation: %w", err)
	}
	return nil
}

// GetRecommendation loads one recommendation by ID.
func (s *Store) GetRecommendation(ctx context.Context, id string) (*Record, error) {
	rows, err := s.queryRecords(ctx, recordSelect+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: recommendation %q", ErrNotFound, id)
	}
	return &rows[0], nil
}

// RecentRecommendations returns the newest recommendations first.
func (s *Store) RecentRecommendations(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRecords(ctx, recordSelect+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
}

// Stats returns catalog and history totals.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{ByGenre: map[string]int{}}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM songs`).Scan(&st.TotalSongs); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recommendations`).Scan(&st.TotalRecommendations); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT genre, COUNT(*) FROM recommendations GROUP BY genre`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var genre string
		var n int
		if err := rows.Scan(&genre, &n); err != nil {
			return nil, err
		}
		st.ByGenre[genre] = n
	}
	return st, rows.Err()
}

const recordSelect = `SELECT id, age, mood, listening_time, tempo, score, genre, songs, created_at FROM recommendations`

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recommendations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var r Record
		var songs string
		if err := rows.Scan(
			&r.ID, &r.Age, &r.Mood, &r.ListeningTime, &r.Tempo,
			&r.Score, &r.Genre, &songs, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(songs), &r.Songs); err != nil {
			return nil, fmt.Errorf("decoding songs of %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// isUniqueViolation checks if an error is a SQLite UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Now returns the current time formatted for SQLite.
func Now() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05")
}
