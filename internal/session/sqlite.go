package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/evermark-app/vaultcore/internal/logger"
)

const (
	createVerifierTable = `CREATE TABLE IF NOT EXISTS master_secret_verifiers (
		owner_id INTEGER PRIMARY KEY,
		verifier BLOB NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	selectVerifier = `SELECT verifier FROM master_secret_verifiers WHERE owner_id = ?;`

	upsertVerifier = `INSERT INTO master_secret_verifiers (owner_id, verifier)
		VALUES (?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET verifier = excluded.verifier;`

	deleteVerifier = `DELETE FROM master_secret_verifiers WHERE owner_id = ?;`
)

// sqliteVerifierStore is the SQLite-backed implementation of [VerifierStore].
// The database lives on the device (or its server-side device profile);
// verifiers never travel further.
type sqliteVerifierStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteVerifierStore opens (creating if necessary) the device-scoped
// verifier database at dsn and ensures the schema exists.
func NewSQLiteVerifierStore(ctx context.Context, dsn string, log *logger.Logger) (VerifierStore, error) {
	if err := createLocalDBFileIfNotExists(dsn); err != nil {
		log.Err(err).Str("func", "NewSQLiteVerifierStore").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteVerifierStore").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLiteVerifierStore").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err := conn.ExecContext(ctx, createVerifierTable); err != nil {
		return nil, fmt.Errorf("error creating verifier table: %w", err)
	}

	log.Debug().Str("func", "NewSQLiteVerifierStore").Msg("connected to device store successfully")

	return &sqliteVerifierStore{db: conn, logger: log}, nil
}

// LoadVerifier implements [VerifierStore].
func (s *sqliteVerifierStore) LoadVerifier(ctx context.Context, ownerID int64) ([]byte, error) {
	var verifier []byte
	err := s.db.QueryRowContext(ctx, selectVerifier, ownerID).Scan(&verifier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVerifierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load verifier: %w", err)
	}

	return verifier, nil
}

// SaveVerifier implements [VerifierStore].
func (s *sqliteVerifierStore) SaveVerifier(ctx context.Context, ownerID int64, verifier []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertVerifier, ownerID, verifier); err != nil {
		return fmt.Errorf("save verifier: %w", err)
	}
	return nil
}

// DeleteVerifier implements [VerifierStore].
func (s *sqliteVerifierStore) DeleteVerifier(ctx context.Context, ownerID int64) error {
	if _, err := s.db.ExecContext(ctx, deleteVerifier, ownerID); err != nil {
		return fmt.Errorf("delete verifier: %w", err)
	}
	return nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if dbFile == ":memory:" {
		return nil
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
