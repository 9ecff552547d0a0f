// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/evermark-app/vaultcore/models"
)

const (
	createUser = `INSERT INTO users (login, auth_hash, name)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, auth_hash, name, second_factor_enrolled, created_at;`

	findUserByLogin = `SELECT user_id, login, auth_hash, name, second_factor_enrolled, created_at
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, auth_hash, name, second_factor_enrolled, created_at
    FROM users
    WHERE user_id = $1;`

	setSecondFactorEnrolled = `UPDATE users
		SET second_factor_enrolled = $2
		WHERE user_id = $1;`

	loadVaultConfig = `SELECT owner_id, is_encrypted, allow_admin_access, encryption_salt, encrypted_dek,
			delegate_id, delegate_public_key, delegate_sealed_key, grace_period_days,
			recovery_status, recovery_requested_at, created_at, updated_at
		FROM vault_configs
		WHERE owner_id = $1;`

	// The is_encrypted expression keeps the flag monotonic at the SQL level:
	// an existing true can never be overwritten with false.
	upsertVaultConfig = `INSERT INTO vault_configs (
			owner_id,
			is_encrypted,
			allow_admin_access,
			encryption_salt,
			encrypted_dek,
			delegate_id,
			delegate_public_key,
			delegate_sealed_key,
			grace_period_days,
			recovery_status,
			recovery_requested_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (owner_id) DO UPDATE SET
			is_encrypted = vault_configs.is_encrypted OR excluded.is_encrypted,
			allow_admin_access = excluded.allow_admin_access,
			encryption_salt = excluded.encryption_salt,
			encrypted_dek = excluded.encrypted_dek,
			delegate_id = excluded.delegate_id,
			delegate_public_key = excluded.delegate_public_key,
			delegate_sealed_key = excluded.delegate_sealed_key,
			grace_period_days = excluded.grace_period_days,
			recovery_status = excluded.recovery_status,
			recovery_requested_at = excluded.recovery_requested_at,
			updated_at = NOW()
		RETURNING owner_id, is_encrypted, allow_admin_access, encryption_salt, encrypted_dek,
			delegate_id, delegate_public_key, delegate_sealed_key, grace_period_days,
			recovery_status, recovery_requested_at, created_at, updated_at;`

	// The toggle write deliberately names a single column; every other
	// column keeps its current (or default) value.
	upsertAdminAccess = `INSERT INTO vault_configs (owner_id, allow_admin_access)
		VALUES ($1, $2)
		ON CONFLICT (owner_id) DO UPDATE SET
			allow_admin_access = excluded.allow_admin_access,
			updated_at = NOW();`

	casVaultRecoveryStatus = `UPDATE vault_configs
		SET recovery_status = $3, updated_at = NOW()
		WHERE owner_id = $1 AND recovery_status = $2;`

	upsertRoleGrant = `INSERT INTO role_grants (owner_id, grantee_id, role, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id, grantee_id) DO UPDATE SET
			role = excluded.role,
			status = excluded.status,
			updated_at = NOW()
		RETURNING owner_id, grantee_id, role, status, created_at, updated_at;`

	findRoleGrant = `SELECT owner_id, grantee_id, role, status, created_at, updated_at
		FROM role_grants
		WHERE owner_id = $1 AND grantee_id = $2;`

	updateRoleGrantStatus = `UPDATE role_grants
		SET status = $3, updated_at = NOW()
		WHERE owner_id = $1 AND grantee_id = $2;`

	deleteRoleGrant = `DELETE FROM role_grants
		WHERE owner_id = $1 AND grantee_id = $2;`

	createRecoveryRequest = `INSERT INTO recovery_requests (
			id,
			vault_owner_id,
			delegate_id,
			relationship,
			reason,
			requested_at,
			grace_period_ends_at,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, vault_owner_id, delegate_id, relationship, reason,
			requested_at, grace_period_ends_at, status, decided_at, consumed_at;`

	loadRecoveryRequest = `SELECT id, vault_owner_id, delegate_id, relationship, reason,
			requested_at, grace_period_ends_at, status, decided_at, consumed_at
		FROM recovery_requests
		WHERE id = $1;`

	// Status transitions are compare-and-sets: the WHERE clause compares the
	// expected prior status in the same statement that writes the new one.
	casRecoveryRequestStatus = `UPDATE recovery_requests
		SET status = $3, decided_at = NOW()
		WHERE id = $1 AND status = $2;`

	markRecoveryRequestConsumed = `UPDATE recovery_requests
		SET consumed_at = NOW()
		WHERE id = $1 AND consumed_at IS NULL;`
)

// psql is the shared squirrel statement builder configured for PostgreSQL
// ($1-style) placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildSelectRoleGrantsQuery builds the SELECT for an owner's grants,
// optionally filtered by status. squirrel generates IN ($2,$3) for a slice.
func buildSelectRoleGrantsQuery(ownerID int64, statuses []models.GrantStatus) (string, []any, error) {
	builder := psql.
		Select("owner_id", "grantee_id", "role", "status", "created_at", "updated_at").
		From(models.RoleGrant{}.TableName()).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at")

	if len(statuses) > 0 {
		builder = builder.Where(sq.Eq{"status": statuses})
	}

	return builder.ToSql()
}

// buildSelectPendingRecoveryRequestQuery builds the SELECT for a vault's
// single pending request.
func buildSelectPendingRecoveryRequestQuery(vaultOwnerID int64) (string, []any, error) {
	return psql.
		Select("id", "vault_owner_id", "delegate_id", "relationship", "reason",
			"requested_at", "grace_period_ends_at", "status", "decided_at", "consumed_at").
		From(models.RecoveryRequest{}.TableName()).
		Where(sq.Eq{"vault_owner_id": vaultOwnerID}).
		Where(sq.Eq{"status": models.RequestStatusPending}).
		ToSql()
}

// buildSelectDuePendingRecoveryRequestsQuery builds the sweep SELECT: every
// pending request whose grace period deadline has passed.
func buildSelectDuePendingRecoveryRequestsQuery(now time.Time) (string, []any, error) {
	return psql.
		Select("id", "vault_owner_id", "delegate_id", "relationship", "reason",
			"requested_at", "grace_period_ends_at", "status", "decided_at", "consumed_at").
		From(models.RecoveryRequest{}.TableName()).
		Where(sq.Eq{"status": models.RequestStatusPending}).
		Where(sq.LtOrEq{"grace_period_ends_at": now}).
		OrderBy("grace_period_ends_at").
		ToSql()
}
