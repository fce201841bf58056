package profile

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsertAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	gpa := 3.6
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	row := StoredProfile{
		UserID: "guest:u1",
		Profile: StoredAcademicProfile{
			GPA:               &gpa,
			ResearchInterests: []string{"robotics"},
		},
		UpdatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO academic_profiles")).
		WithArgs("guest:u1", sqlmock.AnyArg(), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Upsert(context.Background(), row); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, profile, updated_at")).
		WithArgs("guest:u1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "profile", "updated_at"}).
			AddRow("guest:u1", []byte(`{"gpa":3.6,"researchInterests":["robotics"],"preferences":{}}`), now))

	got, err := repo.GetByUser(context.Background(), "guest:u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Profile.GPA == nil || *got.Profile.GPA != 3.6 {
		t.Fatalf("gpa = %v, want 3.6", got.Profile.GPA)
	}
	if len(got.Profile.ResearchInterests) != 1 || got.Profile.ResearchInterests[0] != "robotics" {
		t.Fatalf("interests = %v", got.Profile.ResearchInterests)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, profile, updated_at")).
		WithArgs("guest:absent").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "profile", "updated_at"}))

	_, err = repo.GetByUser(context.Background(), "guest:absent")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
