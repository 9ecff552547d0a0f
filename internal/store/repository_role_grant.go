package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/models"
)

// roleGrantRepository is the PostgreSQL-backed implementation of
// [RoleGrantRepository]. The "role_grants" table keys rows on the
// (owner_id, grantee_id) pair, so upserts keep at most one grant per pair.
type roleGrantRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRoleGrantRepository constructs a [RoleGrantRepository] backed by the
// provided database connection and logger.
func NewRoleGrantRepository(db *DB, logger *logger.Logger) RoleGrantRepository {
	logger.Debug().Msg("creating role grant repository")
	return &roleGrantRepository{
		db:     db,
		logger: logger,
	}
}

// ListByOwner returns every grant the owner has issued, oldest first,
// optionally filtered to the given statuses.
func (r *roleGrantRepository) ListByOwner(ctx context.Context, ownerID int64, statuses ...models.GrantStatus) ([]models.RoleGrant, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRoleGrantsQuery(ownerID, statuses)
	if err != nil {
		log.Err(err).Str("func", "*roleGrantRepository.ListByOwner").Msg("error: building query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*roleGrantRepository.ListByOwner").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var grants []models.RoleGrant
	for rows.Next() {
		var grant models.RoleGrant
		if err := rows.Scan(&grant.OwnerID, &grant.GranteeID, &grant.Role, &grant.Status, &grant.CreatedAt, &grant.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*roleGrantRepository.ListByOwner").Msg("error: scanning error")
			return nil, errors.Join(ErrScanningRows, err)
		}
		grants = append(grants, grant)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*roleGrantRepository.ListByOwner").Msg("error: iterating rows")
		return nil, errors.Join(ErrScanningRows, err)
	}

	return grants, nil
}

// Find returns the grant for an (owner, grantee) pair, or
// [ErrRoleGrantNotFound] when none exists.
func (r *roleGrantRepository) Find(ctx context.Context, ownerID, granteeID int64) (models.RoleGrant, error) {
	log := logger.FromContext(ctx)

	var grant models.RoleGrant
	row := r.db.QueryRowContext(ctx, findRoleGrant, ownerID, granteeID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*roleGrantRepository.Find").Msg("error: row is nil")
		return models.RoleGrant{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&grant.OwnerID, &grant.GranteeID, &grant.Role, &grant.Status, &grant.CreatedAt, &grant.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RoleGrant{}, ErrRoleGrantNotFound
		}
		log.Err(err).Str("func", "*roleGrantRepository.Find").Msg("error: scanning error")
		return models.RoleGrant{}, errors.Join(ErrScanningRow, err)
	}

	return grant, nil
}

// Upsert creates or replaces the grant for its (owner, grantee) pair and
// returns the stored row.
func (r *roleGrantRepository) Upsert(ctx context.Context, grant models.RoleGrant) (models.RoleGrant, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, upsertRoleGrant, grant.OwnerID, grant.GranteeID, grant.Role, grant.Status)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*roleGrantRepository.Upsert").Msg("error: row is nil")
		return models.RoleGrant{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var saved models.RoleGrant
	if err := row.Scan(&saved.OwnerID, &saved.GranteeID, &saved.Role, &saved.Status, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*roleGrantRepository.Upsert").Msg("error: scanning error")
		return models.RoleGrant{}, errors.Join(ErrScanningRow, err)
	}

	return saved, nil
}

// UpdateStatus moves an existing grant to the given status.
// [ErrRoleGrantNotFound] is returned when no grant exists for the pair.
func (r *roleGrantRepository) UpdateStatus(ctx context.Context, ownerID, granteeID int64, status models.GrantStatus) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateRoleGrantStatus, ownerID, granteeID, status)
	if err != nil {
		log.Err(err).Str("func", "*roleGrantRepository.UpdateStatus").Msg("error: executing statement")
		return errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*roleGrantRepository.UpdateStatus").Msg("error: reading rows affected")
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRoleGrantNotFound
	}

	return nil
}

// Delete revokes the grant for an (owner, grantee) pair. Deleting a missing
// grant is a no-op.
func (r *roleGrantRepository) Delete(ctx context.Context, ownerID, granteeID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteRoleGrant, ownerID, granteeID); err != nil {
		log.Err(err).Str("func", "*roleGrantRepository.Delete").Msg("error: executing statement")
		return errors.Join(ErrExecutingStatement, err)
	}

	return nil
}
