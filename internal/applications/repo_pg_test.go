package applications

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoAppendInsertsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rec := sampleRecord("app-1")
	rec.Intro = "hello"

	mock.ExpectExec("INSERT INTO applications").
		WithArgs(
			rec.ID,
			rec.Date,
			rec.FirstName,
			rec.LastName,
			rec.Email,
			rec.Phone,
			rec.WorkExp,
			rec.ApplyingFor,
			rec.Github,
			rec.Linkedin,
			rec.Intro,
			rec.ResumePath,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Append(context.Background(), rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoAppendWrapsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("INSERT INTO applications").WillReturnError(errors.New("connection refused"))

	err = repo.Append(context.Background(), sampleRecord("app-1"))
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *StoreError, got %v", err)
	}
	if storeErr.Op != "insert" {
		t.Fatalf("expected insert op, got %q", storeErr.Op)
	}
}
