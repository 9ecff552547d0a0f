// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/models"
)

// vaultConfigRepository is the PostgreSQL-backed implementation of
// [VaultConfigRepository]. One row per owner in the "vault_configs" table.
type vaultConfigRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewVaultConfigRepository constructs a [VaultConfigRepository] backed by the
// provided database connection and logger.
func NewVaultConfigRepository(db *DB, logger *logger.Logger) VaultConfigRepository {
	logger.Debug().Msg("creating vault config repository")
	return &vaultConfigRepository{
		db:     db,
		logger: logger,
	}
}

// Load returns the owner's vault configuration, or [ErrVaultConfigNotFound]
// when setup has never run for this owner.
func (r *vaultConfigRepository) Load(ctx context.Context, ownerID int64) (models.VaultConfig, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, loadVaultConfig, ownerID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*vaultConfigRepository.Load").Msg("error: row is nil")
		return models.VaultConfig{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	cfg, err := scanVaultConfig(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultConfig{}, ErrVaultConfigNotFound
		}
		log.Err(err).Str("func", "*vaultConfigRepository.Load").Msg("error: scanning error")
		return models.VaultConfig{}, errors.Join(ErrScanningRow, err)
	}

	return cfg, nil
}

// Save upserts the owner's vault configuration and returns the stored row.
//
// The Encrypted flag is monotonic. A save that would clear an already-set
// flag fails with [ErrEncryptionDowngrade] before touching the row; the
// upsert's OR-expression on is_encrypted backs this up against racing writers.
func (r *vaultConfigRepository) Save(ctx context.Context, cfg models.VaultConfig) (models.VaultConfig, error) {
	log := logger.FromContext(ctx)

	if !cfg.Encrypted {
		existing, err := r.Load(ctx, cfg.OwnerID)
		switch {
		case err == nil && existing.Encrypted:
			return models.VaultConfig{}, ErrEncryptionDowngrade
		case err != nil && !errors.Is(err, ErrVaultConfigNotFound):
			return models.VaultConfig{}, err
		}
	}

	row := r.db.QueryRowContext(ctx, upsertVaultConfig,
		cfg.OwnerID,
		cfg.Encrypted,
		cfg.AllowAdminAccess,
		cfg.EncryptionSalt,
		cfg.EncryptedDEK,
		cfg.DelegateID,
		cfg.DelegatePublicKey,
		cfg.DelegateSealedKey,
		cfg.GracePeriodDays,
		cfg.RecoveryStatus,
		cfg.RecoveryRequestedAt,
	)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*vaultConfigRepository.Save").Msg("error: row is nil")
		return models.VaultConfig{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	saved, err := scanVaultConfig(row)
	if err != nil {
		log.Err(err).Str("func", "*vaultConfigRepository.Save").Msg("error: scanning error")
		return models.VaultConfig{}, errors.Join(ErrScanningRow, err)
	}

	return saved, nil
}

// SetAdminAccess upserts only the owner's administrator-access toggle. It
// never reads or rewrites the rest of the row, so it cannot revert a
// recovery status changed by a concurrent compare-and-set.
func (r *vaultConfigRepository) SetAdminAccess(ctx context.Context, ownerID int64, allow bool) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, upsertAdminAccess, ownerID, allow); err != nil {
		log.Err(err).Str("func", "*vaultConfigRepository.SetAdminAccess").Msg("error: executing statement")
		return errors.Join(ErrExecutingStatement, err)
	}

	return nil
}

// CompareAndSetRecoveryStatus atomically moves the vault's recovery status
// from expected to next. A false return with nil error means the row's
// current status did not match expected and nothing was written.
func (r *vaultConfigRepository) CompareAndSetRecoveryStatus(ctx context.Context, ownerID int64, expected, next models.RecoveryStatus) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, casVaultRecoveryStatus, ownerID, expected, next)
	if err != nil {
		log.Err(err).Str("func", "*vaultConfigRepository.CompareAndSetRecoveryStatus").Msg("error: executing statement")
		return false, errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*vaultConfigRepository.CompareAndSetRecoveryStatus").Msg("error: reading rows affected")
		return false, errors.Join(ErrExecutingStatement, err)
	}

	return affected == 1, nil
}

// scanVaultConfig scans one vault_configs row in canonical column order.
func scanVaultConfig(row *sql.Row) (models.VaultConfig, error) {
	var cfg models.VaultConfig
	err := row.Scan(
		&cfg.OwnerID,
		&cfg.Encrypted,
		&cfg.AllowAdminAccess,
		&cfg.EncryptionSalt,
		&cfg.EncryptedDEK,
		&cfg.DelegateID,
		&cfg.DelegatePublicKey,
		&cfg.DelegateSealedKey,
		&cfg.GracePeriodDays,
		&cfg.RecoveryStatus,
		&cfg.RecoveryRequestedAt,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	return cfg, err
}
