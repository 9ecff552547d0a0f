// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/models"
	"github.com/jackc/pgerrcode"
)

var recoveryRequestColumns = []string{
	"id", "vault_owner_id", "delegate_id", "relationship", "reason",
	"requested_at", "grace_period_ends_at", "status", "decided_at", "consumed_at",
}

func newTestRecoveryRepo(t *testing.T) (*recoveryRequestRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &recoveryRequestRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func recoveryRequestRow(r models.RecoveryRequest) *sqlmock.Rows {
	return sqlmock.NewRows(recoveryRequestColumns).AddRow(
		r.ID, r.VaultOwnerID, r.DelegateID, r.Relationship, r.Reason,
		r.RequestedAt, r.GracePeriodEndsAt, r.Status, r.DecidedAt, r.ConsumedAt,
	)
}

func TestRecoveryRequestCreate_Success(t *testing.T) {
	repo, mock, db := newTestRecoveryRepo(t)
	defer db.Close()

	now := time.Now()
	request := models.RecoveryRequest{
		ID:                "11111111-2222-3333-4444-555555555555",
		VaultOwnerID:      1,
		DelegateID:        2,
		Relationship:      "spouse",
		Reason:            "owner unreachable",
		RequestedAt:       now,
		GracePeriodEndsAt: now.Add(7 * 24 * time.Hour),
		Status:            models.RequestStatusPending,
	}

	mock.ExpectQuery("INSERT INTO recovery_requests").
		WithArgs(request.ID, request.VaultOwnerID, request.DelegateID, request.Relationship,
			request.Reason, request.RequestedAt, request.GracePeriodEndsAt, request.Status).
		WillReturnRows(recoveryRequestRow(request))

	created, err := repo.Create(context.Background(), request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != models.RequestStatusPending {
		t.Errorf("expected pending status, got %s", created.Status)
	}
	if created.Consumed() {
		t.Error("new requests must not be consumed")
	}
}

func TestRecoveryRequestCreate_SecondPendingRejected(t *testing.T) {
	repo, mock, db := newTestRecoveryRepo(t)
	defer db.Close()

	// partial unique index on (vault_owner_id) WHERE status='pending'
	mock.ExpectQuery("INSERT INTO recovery_requests").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.Create(context.Background(), models.RecoveryRequest{VaultOwnerID: 1})
	if !errors.Is(err, ErrPendingRequestExists) {
		t.Fatalf("expected ErrPendingRequestExists, got %v", err)
	}
}

func TestRecoveryRequestLoad_NotFound(t *testing.T) {
	repo, mock, db := newTestRecoveryRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM recovery_requests").
		WithArgs("missing-id").
		WillReturnRows(sqlmock.NewRows(recoveryRequestColumns))

	_, err := repo.Load(context.Background(), "missing-id")
	if !errors.Is(err, ErrRecoveryRequestNotFound) {
		t.Fatalf("expected ErrRecoveryRequestNotFound, got %v", err)
	}
}

func TestRecoveryRequestLoadPending_Success(t *testing.T) {
	repo, mock, db := newTestRecoveryRepo(t)
	defer db.Close()

	now := time.Now()
	pending := models.RecoveryRequest{
		ID:                "req-1",
		VaultOwnerID:      1,
		DelegateID:        2,
		RequestedAt:       now,
		GracePeriodEndsAt: now.Add(24 * time.Hour),
		Status:            models.RequestStatusPending,
	}

	mock.ExpectQuery("SELECT (.+) FROM recovery_requests").
		WithArgs(int64(1), string(models.RequestStatusPending)).
		WillReturnRows(recoveryRequestRow(pending))

	got, err := repo.LoadPending(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "req-1" {
		t.Errorf("unexpected request: %+v", got)
	}
}

func TestCompareAndSetStatus_SingleWinner(t *testing.T) {
	repo, mock, db := newTestRecoveryRepo(t)
	defer db.Close()

	// first transition wins, the replayed one finds the status changed
	mock.ExpectExec("UPDATE recovery_requests").
		WithArgs("req-1", models.RequestStatusPending, models.RequestStatusApproved).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE recovery_requests").
		WithArgs("req-1", models.RequestStatusPending, models.RequestStatusApproved).
		WillReturnResult(sqlmock.NewResult(0, 0))

	won, err := repo.CompareAndSetStatus(context.Background(), "req-1", models.RequestStatusPending, models.RequestStatusApproved)
	if err != nil || !won {
		t.Fatalf("expected first transition to win, got won=%v err=%v", won, err)
	}

	won, err = repo.CompareAndSetStatus(context.Background(), "req-1", models.RequestStatusPending, models.RequestStatusApproved)
	if err != nil {
		t.Fatalf("losing a compare-and-set must not be an error, got %v", err)
	}
	if won {
		t.Error("expected replayed transition to lose")
	}
}

func TestMarkConsumed_OnlyOnce(t *testing.T) {
	repo, mock, db := newTestRecoveryRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE recovery_requests").
		WithArgs("req-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE recovery_requests").
		WithArgs("req-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	won, err := repo.MarkConsumed(context.Background(), "req-1")
	if err != nil || !won {
		t.Fatalf("expected first consume to win, got won=%v err=%v", won, err)
	}

	won, err = repo.MarkConsumed(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if won {
		t.Error("expected second consume to lose")
	}
}

func TestRecoveryRequestListDuePending_Success(t *testing.T) {
	repo, mock, db := newTestRecoveryRepo(t)
	defer db.Close()

	now := time.Now()
	first := models.RecoveryRequest{
		ID:                "11111111-2222-3333-4444-555555555555",
		VaultOwnerID:      1,
		DelegateID:        2,
		Status:            models.RequestStatusPending,
		RequestedAt:       now.Add(-8 * 24 * time.Hour),
		GracePeriodEndsAt: now.Add(-time.Hour),
	}
	second := models.RecoveryRequest{
		ID:                "66666666-7777-8888-9999-000000000000",
		VaultOwnerID:      3,
		DelegateID:        4,
		Status:            models.RequestStatusPending,
		RequestedAt:       now.Add(-7 * 24 * time.Hour),
		GracePeriodEndsAt: now.Add(-time.Minute),
	}

	mock.ExpectQuery("SELECT (.+) FROM recovery_requests").
		WillReturnRows(sqlmock.NewRows(recoveryRequestColumns).
			AddRow(first.ID, first.VaultOwnerID, first.DelegateID, first.Relationship, first.Reason,
				first.RequestedAt, first.GracePeriodEndsAt, first.Status, first.DecidedAt, first.ConsumedAt).
			AddRow(second.ID, second.VaultOwnerID, second.DelegateID, second.Relationship, second.Reason,
				second.RequestedAt, second.GracePeriodEndsAt, second.Status, second.DecidedAt, second.ConsumedAt))

	due, err := repo.ListDuePending(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("expected 2 due requests, got %d", len(due))
	}
	if due[0].ID != first.ID || due[1].ID != second.ID {
		t.Error("expected oldest deadline first")
	}
}

func TestRecoveryRequestListDuePending_Empty(t *testing.T) {
	repo, mock, db := newTestRecoveryRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM recovery_requests").
		WillReturnRows(sqlmock.NewRows(recoveryRequestColumns))

	due, err := repo.ListDuePending(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("expected no due requests, got %d", len(due))
	}
}
