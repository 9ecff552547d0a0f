// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/models"
	"github.com/jackc/pgerrcode"
)

// recoveryRequestRepository is the PostgreSQL-backed implementation of
// [RecoveryRequestRepository].
//
// Two invariants live in the schema rather than in application code: the
// partial unique index on (vault_owner_id) WHERE status = 'pending' keeps at
// most one pending request per vault, and every status transition goes
// through a conditional UPDATE so racing writers resolve to exactly one
// winner.
type recoveryRequestRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRecoveryRequestRepository constructs a [RecoveryRequestRepository]
// backed by the provided database connection and logger.
func NewRecoveryRequestRepository(db *DB, logger *logger.Logger) RecoveryRequestRepository {
	logger.Debug().Msg("creating recovery request repository")
	return &recoveryRequestRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new pending request and returns the stored row.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrPendingRequestExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *recoveryRequestRepository) Create(ctx context.Context, request models.RecoveryRequest) (models.RecoveryRequest, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createRecoveryRequest,
		request.ID,
		request.VaultOwnerID,
		request.DelegateID,
		request.Relationship,
		request.Reason,
		request.RequestedAt,
		request.GracePeriodEndsAt,
		request.Status,
	)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*recoveryRequestRepository.Create").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.RecoveryRequest{}, ErrPendingRequestExists
		default:
			return models.RecoveryRequest{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	saved, err := scanRecoveryRequest(row)
	if err != nil {
		log.Err(err).Str("func", "*recoveryRequestRepository.Create").Msg("error: scanning error")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.RecoveryRequest{}, ErrPendingRequestExists
		}
		return models.RecoveryRequest{}, errors.Join(ErrScanningRow, err)
	}

	return saved, nil
}

// Load returns a request by ID, or [ErrRecoveryRequestNotFound].
func (r *recoveryRequestRepository) Load(ctx context.Context, requestID string) (models.RecoveryRequest, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, loadRecoveryRequest, requestID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*recoveryRequestRepository.Load").Msg("error: row is nil")
		return models.RecoveryRequest{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	request, err := scanRecoveryRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RecoveryRequest{}, ErrRecoveryRequestNotFound
		}
		log.Err(err).Str("func", "*recoveryRequestRepository.Load").Msg("error: scanning error")
		return models.RecoveryRequest{}, errors.Join(ErrScanningRow, err)
	}

	return request, nil
}

// LoadPending returns the vault's single pending request, or
// [ErrRecoveryRequestNotFound] when none is pending.
func (r *recoveryRequestRepository) LoadPending(ctx context.Context, vaultOwnerID int64) (models.RecoveryRequest, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectPendingRecoveryRequestQuery(vaultOwnerID)
	if err != nil {
		log.Err(err).Str("func", "*recoveryRequestRepository.LoadPending").Msg("error: building query")
		return models.RecoveryRequest{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*recoveryRequestRepository.LoadPending").Msg("error: row is nil")
		return models.RecoveryRequest{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	request, err := scanRecoveryRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RecoveryRequest{}, ErrRecoveryRequestNotFound
		}
		log.Err(err).Str("func", "*recoveryRequestRepository.LoadPending").Msg("error: scanning error")
		return models.RecoveryRequest{}, errors.Join(ErrScanningRow, err)
	}

	return request, nil
}

// ListDuePending returns every pending request whose grace period ended at or
// before now, oldest deadline first. The sweep worker feeds these through the
// timeout evaluator.
func (r *recoveryRequestRepository) ListDuePending(ctx context.Context, now time.Time) ([]models.RecoveryRequest, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectDuePendingRecoveryRequestsQuery(now)
	if err != nil {
		log.Err(err).Str("func", "*recoveryRequestRepository.ListDuePending").Msg("error: building query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*recoveryRequestRepository.ListDuePending").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var requests []models.RecoveryRequest
	for rows.Next() {
		var request models.RecoveryRequest
		if err := rows.Scan(
			&request.ID,
			&request.VaultOwnerID,
			&request.DelegateID,
			&request.Relationship,
			&request.Reason,
			&request.RequestedAt,
			&request.GracePeriodEndsAt,
			&request.Status,
			&request.DecidedAt,
			&request.ConsumedAt,
		); err != nil {
			log.Err(err).Str("func", "*recoveryRequestRepository.ListDuePending").Msg("error: scanning error")
			return nil, errors.Join(ErrScanningRows, err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*recoveryRequestRepository.ListDuePending").Msg("error: iterating rows")
		return nil, errors.Join(ErrScanningRows, err)
	}

	return requests, nil
}

// CompareAndSetStatus atomically moves the request from expected to next,
// stamping decided_at. A false return with nil error means the row's current
// status did not match expected and nothing was written.
func (r *recoveryRequestRepository) CompareAndSetStatus(ctx context.Context, requestID string, expected, next models.RequestStatus) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, casRecoveryRequestStatus, requestID, expected, next)
	if err != nil {
		log.Err(err).Str("func", "*recoveryRequestRepository.CompareAndSetStatus").Msg("error: executing statement")
		return false, errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*recoveryRequestRepository.CompareAndSetStatus").Msg("error: reading rows affected")
		return false, errors.Join(ErrExecutingStatement, err)
	}

	return affected == 1, nil
}

// MarkConsumed records the single permitted recovery unlock. A false return
// with nil error means the request was already consumed.
func (r *recoveryRequestRepository) MarkConsumed(ctx context.Context, requestID string) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, markRecoveryRequestConsumed, requestID)
	if err != nil {
		log.Err(err).Str("func", "*recoveryRequestRepository.MarkConsumed").Msg("error: executing statement")
		return false, errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*recoveryRequestRepository.MarkConsumed").Msg("error: reading rows affected")
		return false, errors.Join(ErrExecutingStatement, err)
	}

	return affected == 1, nil
}

// scanRecoveryRequest scans one recovery_requests row in canonical column order.
func scanRecoveryRequest(row *sql.Row) (models.RecoveryRequest, error) {
	var request models.RecoveryRequest
	err := row.Scan(
		&request.ID,
		&request.VaultOwnerID,
		&request.DelegateID,
		&request.Relationship,
		&request.Reason,
		&request.RequestedAt,
		&request.GracePeriodEndsAt,
		&request.Status,
		&request.DecidedAt,
		&request.ConsumedAt,
	)
	return request, err
}
