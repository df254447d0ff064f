package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/models"
)

func newTestGiftRepo(t *testing.T) (*giftRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &giftRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func giftRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "sender", "assets", "secret_hash", "recallable_at",
		"serial_number", "status", "opened_at", "recalled_at",
		"created_at", "updated_at",
	})
}

func TestGiftSave_WritesBackGeneratedFields(t *testing.T) {
	repo, mock, db := newTestGiftRepo(t)
	defer db.Close()

	now := time.Now()
	at := now.Add(time.Hour)
	gift := &models.Gift{
		Sender:       "0xaa",
		Assets:       models.AssetList{{FaucetID: "0xcc", Amount: "1000"}},
		SecretHash:   "deadbeef",
		RecallableAt: &at,
		SerialNumber: models.SerialNumber{1, 2, 3, 4},
		Status:       models.StatusPending,
	}

	mock.ExpectQuery("INSERT INTO gifts").
		WithArgs("0xaa", sqlmock.AnyArg(), "deadbeef", sqlmock.AnyArg(), sqlmock.AnyArg(), "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(9), now, now))

	if err := repo.Save(context.Background(), gift); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gift.ID != 9 {
		t.Errorf("expected id 9, got %d", gift.ID)
	}
}

func TestGiftSave_SecretHashCollision(t *testing.T) {
	repo, mock, db := newTestGiftRepo(t)
	defer db.Close()

	gift := &models.Gift{
		Sender:     "0xaa",
		SecretHash: "deadbeef",
		Status:     models.StatusPending,
	}

	mock.ExpectQuery("INSERT INTO gifts").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.Save(context.Background(), gift)
	if !errors.Is(err, ErrDuplicateSecretHash) {
		t.Fatalf("expected ErrDuplicateSecretHash, got %v", err)
	}
}

func TestGiftFindOne_NoMatchIsNilNil(t *testing.T) {
	repo, mock, db := newTestGiftRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM gifts").
		WithArgs("deadbeef").
		WillReturnError(sql.ErrNoRows)

	gift, err := repo.FindOne(context.Background(), GiftFilter{SecretHash: "deadbeef"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gift != nil {
		t.Errorf("expected nil gift, got %+v", gift)
	}
}

func TestGiftFindOne_ScansRow(t *testing.T) {
	repo, mock, db := newTestGiftRepo(t)
	defer db.Close()

	now := time.Now()
	at := now.Add(time.Hour)
	rows := giftRows().
		AddRow(int64(9), "0xaa", []byte(`[{"faucetId":"0xcc","amount":"1000"}]`),
			"deadbeef", at, []byte(`[1,2,3,4]`), "pending", nil, nil, now, now)

	mock.ExpectQuery("SELECT (.+) FROM gifts").
		WithArgs("deadbeef").
		WillReturnRows(rows)

	gift, err := repo.FindOne(context.Background(), GiftFilter{SecretHash: "deadbeef"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gift == nil {
		t.Fatal("expected a gift, got nil")
	}
	if gift.ID != 9 || gift.SecretHash != "deadbeef" {
		t.Errorf("unexpected gift: %+v", gift)
	}
	if gift.RecallableAt == nil || !gift.RecallableAt.Equal(at) {
		t.Errorf("recallable_at not scanned: %v", gift.RecallableAt)
	}
}

func TestGiftFind_ScansAll(t *testing.T) {
	repo, mock, db := newTestGiftRepo(t)
	defer db.Close()

	now := time.Now()
	rows := giftRows().
		AddRow(int64(2), "0xaa", []byte(`[]`), "h2", nil, []byte(`[1,2,3,4]`), "pending", nil, nil, now, now).
		AddRow(int64(1), "0xaa", []byte(`[]`), "h1", nil, []byte(`[1,2,3,4]`), "recalled", nil, now, now, now)

	mock.ExpectQuery("SELECT (.+) FROM gifts").
		WithArgs("0xaa", "pending").
		WillReturnRows(rows)

	gifts, err := repo.Find(context.Background(), GiftFilter{Sender: "0xaa", Status: models.StatusPending})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gifts) != 2 {
		t.Fatalf("expected 2 gifts, got %d", len(gifts))
	}
	if gifts[0].ID != 2 || gifts[1].ID != 1 {
		t.Errorf("unexpected order: %d, %d", gifts[0].ID, gifts[1].ID)
	}
}

func TestGiftTransition_FirstSettlementWins(t *testing.T) {
	repo, mock, db := newTestGiftRepo(t)
	defer db.Close()

	now := time.Now()
	rows := giftRows().
		AddRow(int64(9), "0xaa", []byte(`[]`), "deadbeef", nil, []byte(`[1,2,3,4]`),
			"consumed", now, nil, now, now)

	// set args first (status, stamp), then the pending pin and filter
	mock.ExpectQuery("UPDATE gifts SET").
		WithArgs("consumed", sqlmock.AnyArg(), "pending", "deadbeef").
		WillReturnRows(rows)

	gift, err := repo.Transition(context.Background(), GiftFilter{SecretHash: "deadbeef"}, models.StatusConsumed, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gift.Status != models.StatusConsumed {
		t.Errorf("expected consumed status, got %s", gift.Status)
	}
	if gift.OpenedAt == nil {
		t.Error("expected opened_at to be set")
	}
}

func TestGiftTransition_AlreadySettled(t *testing.T) {
	repo, mock, db := newTestGiftRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE gifts SET").
		WithArgs("recalled", sqlmock.AnyArg(), "pending", int64(9), "0xaa").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Transition(context.Background(), GiftFilter{ID: 9, Sender: "0xaa"}, models.StatusRecalled, time.Now())
	if !errors.Is(err, ErrGiftNoteNotFound) {
		t.Fatalf("expected ErrGiftNoteNotFound, got %v", err)
	}
}

func TestGiftTransition_RejectsPendingTarget(t *testing.T) {
	repo, _, db := newTestGiftRepo(t)
	defer db.Close()

	_, err := repo.Transition(context.Background(), GiftFilter{ID: 9}, models.StatusPending, time.Now())
	if !errors.Is(err, ErrBuildingSQLQuery) {
		t.Fatalf("expected ErrBuildingSQLQuery, got %v", err)
	}
}
