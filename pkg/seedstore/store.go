package seedstore

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

var (
	// ErrSeedNotFound is returned when no seed exists under the requested name.
	ErrSeedNotFound = errors.New("seed not found")
	// ErrSeedExists is returned when inserting a seed under a name already in use.
	ErrSeedExists = errors.New("seed already exists")
	// ErrEmptySeed is returned when inserting a seed with no words.
	ErrEmptySeed = errors.New("seed has no words")
)

// SeedInfo holds the metadata for a stored seed.
type SeedInfo struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Digest    string    `json:"digest"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

// SetupSchema initializes the seed tables in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const (
		schemaSets = `
CREATE TABLE IF NOT EXISTS seed_sets (
    seed_id INTEGER PRIMARY KEY,
    seed_name TEXT NOT NULL UNIQUE,
    digest TEXT NOT NULL,
    word_count INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);
`
		schemaWords = `
CREATE TABLE IF NOT EXISTS seed_words (
    seed_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    word TEXT NOT NULL,
    PRIMARY KEY (seed_id, position)
);
`
		indexDigest = `CREATE INDEX IF NOT EXISTS idx_seed_sets_digest ON seed_sets (digest);`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaSets); err != nil {
		return fmt.Errorf("could not create seed_sets schema: %w", err)
	}
	if _, err = tx.Exec(schemaWords); err != nil {
		return fmt.Errorf("could not create seed_words schema: %w", err)
	}
	if _, err = tx.Exec(indexDigest); err != nil {
		return fmt.Errorf("could not create digest index: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Digest returns the hex BLAKE3 digest of words joined by newlines. Two seeds
// with the same words in the same order share a digest.
func Digest(words []string) string {
	sum := blake3.Sum256([]byte(strings.Join(words, "\n")))
	return hex.EncodeToString(sum[:])
}

// Store reads and writes seeds. It holds the database connection and
// prepared SQL statements for efficient database interaction.
type Store struct {
	db               *sql.DB
	stmtGetInfo      *sql.Stmt
	stmtListInfo     *sql.Stmt
	stmtFindByDigest *sql.Stmt
	stmtGetWords     *sql.Stmt
	logger           *slog.Logger
}

// NewStore creates and returns a new Store. SetupSchema must have been run on
// db. It pre-compiles all necessary SQL statements, returning an error if any
// preparation fails.
func NewStore(db *sql.DB) (*Store, error) {
	stmtGetInfo, err := db.Prepare(`SELECT seed_id, seed_name, digest, word_count, created_at FROM seed_sets WHERE seed_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtListInfo, err := db.Prepare(`SELECT seed_id, seed_name, digest, word_count, created_at FROM seed_sets ORDER BY seed_name;`)
	if err != nil {
		return nil, err
	}

	stmtFindByDigest, err := db.Prepare(`SELECT seed_id, seed_name, digest, word_count, created_at FROM seed_sets WHERE digest = ? ORDER BY seed_name;`)
	if err != nil {
		return nil, err
	}

	stmtGetWords, err := db.Prepare(`SELECT word FROM seed_words WHERE seed_id = ? ORDER BY position;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:               db,
		stmtGetInfo:      stmtGetInfo,
		stmtListInfo:     stmtListInfo,
		stmtFindByDigest: stmtFindByDigest,
		stmtGetWords:     stmtGetWords,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtGetInfo.Close()
	_ = s.stmtListInfo.Close()
	_ = s.stmtFindByDigest.Close()
	_ = s.stmtGetWords.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInfo(row scanner) (SeedInfo, error) {
	var info SeedInfo
	var created int64
	if err := row.Scan(&info.Id, &info.Name, &info.Digest, &info.WordCount, &created); err != nil {
		return SeedInfo{}, err
	}
	info.CreatedAt = time.Unix(created, 0).UTC()
	return info, nil
}

// Insert stores words under name. The words are stored as given, in order.
// The whole operation is performed within a single transaction.
func (s *Store) Insert(ctx context.Context, name string, words []string) (SeedInfo, error) {
	if len(words) == 0 {
		return SeedInfo{}, ErrEmptySeed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SeedInfo{}, fmt.Errorf("could not begin transaction for insert: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var existing int
	err = tx.QueryRowContext(ctx, "SELECT seed_id FROM seed_sets WHERE seed_name = ?", name).Scan(&existing)
	if err == nil {
		return SeedInfo{}, fmt.Errorf("%w: %q", ErrSeedExists, name)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return SeedInfo{}, fmt.Errorf("failed to query for seed '%s': %w", name, err)
	}

	info := SeedInfo{
		Name:      name,
		Digest:    Digest(words),
		WordCount: len(words),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO seed_sets (seed_name, digest, word_count, created_at) VALUES (?, ?, ?, ?)",
		info.Name, info.Digest, info.WordCount, info.CreatedAt.Unix())
	if err != nil {
		return SeedInfo{}, fmt.Errorf("failed to insert seed '%s': %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return SeedInfo{}, fmt.Errorf("failed to read id of seed '%s': %w", name, err)
	}
	info.Id = int(id)

	stmtInsertWord, err := tx.PrepareContext(ctx, `INSERT INTO seed_words (seed_id, position, word) VALUES (?, ?, ?);`)
	if err != nil {
		return SeedInfo{}, fmt.Errorf("failed to prepare word insert statement: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(stmtInsertWord)

	for i, word := range words {
		if _, err = stmtInsertWord.ExecContext(ctx, info.Id, i, word); err != nil {
			return SeedInfo{}, fmt.Errorf("failed to insert word %d of seed '%s': %w", i, name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return SeedInfo{}, fmt.Errorf("could not commit seed '%s': %w", name, err)
	}

	s.logger.InfoContext(ctx, "Seed stored",
		slog.String("seed_name", info.Name),
		slog.Int("seed_id", info.Id),
		slog.Int("word_count", info.WordCount),
		slog.String("digest", info.Digest),
	)
	return info, nil
}

// Info retrieves the metadata for a single seed.
func (s *Store) Info(ctx context.Context, name string) (SeedInfo, error) {
	info, err := scanInfo(s.stmtGetInfo.QueryRowContext(ctx, name))
	if errors.Is(err, sql.ErrNoRows) {
		return SeedInfo{}, fmt.Errorf("%w: %q", ErrSeedNotFound, name)
	}
	return info, err
}

// Get returns the words of a seed in the order they were stored.
func (s *Store) Get(ctx context.Context, name string) ([]string, error) {
	info, err := s.Info(ctx, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.stmtGetWords.QueryContext(ctx, info.Id)
	if err != nil {
		return nil, fmt.Errorf("could not query words of seed '%s': %w", name, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	words := make([]string, 0, info.WordCount)
	for rows.Next() {
		var word string
		if err = rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// List returns the metadata of every stored seed, sorted by name.
func (s *Store) List(ctx context.Context) ([]SeedInfo, error) {
	return s.queryInfos(ctx, s.stmtListInfo)
}

// FindByDigest returns every seed whose words hash to digest.
func (s *Store) FindByDigest(ctx context.Context, digest string) ([]SeedInfo, error) {
	return s.queryInfos(ctx, s.stmtFindByDigest, digest)
}

func (s *Store) queryInfos(ctx context.Context, stmt *sql.Stmt, args ...any) ([]SeedInfo, error) {
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	infos := make([]SeedInfo, 0)
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Remove deletes a seed and all of its words. The operation is performed
// within a transaction.
func (s *Store) Remove(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction for remove: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var id int
	err = tx.QueryRowContext(ctx, "SELECT seed_id FROM seed_sets WHERE seed_name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %q", ErrSeedNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to query for seed '%s': %w", name, err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM seed_words WHERE seed_id = ?", id); err != nil {
		return fmt.Errorf("failed to remove words for seed %d: %w", id, err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM seed_sets WHERE seed_id = ?", id); err != nil {
		return fmt.Errorf("failed to remove seed %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "Seed removed",
		slog.String("seed_name", name),
		slog.Int("seed_id", id),
	)
	return tx.Commit()
}
