package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/internal/errs"
	"github.com/Astemirdum/library-loan-service/loan/internal/model"
	"github.com/Astemirdum/library-loan-service/loan/internal/repository"
	"github.com/Astemirdum/library-loan-service/loan/migrations"
	"github.com/Astemirdum/library-loan-service/pkg/sqlite"
)

var base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) repository.Repository {
	t.Helper()
	db := sqlite.NewTestDB(t, migrations.SQLite())
	repo, err := repository.NewSQLiteRepository(db, zap.NewExample().Named("test"))
	require.NoError(t, err)
	return repo
}

func newLoan(userID, bookID int64, borrowedAt time.Time) model.Loan {
	return model.Loan{
		ID:         uuid.NewString(),
		UserID:     userID,
		BookID:     bookID,
		BorrowedAt: borrowedAt,
		DueAt:      model.DueAt(borrowedAt, model.DefaultDurationDays),
		Status:     model.StatusActive,
		Version:    1,
	}
}

func TestRepository_CreateGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	loan := newLoan(1, 10, base.Add(123456*time.Microsecond))
	_, err := repo.Create(ctx, loan)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	require.Equal(t, loan.ID, got.ID)
	require.Equal(t, loan.UserID, got.UserID)
	require.Equal(t, loan.BookID, got.BookID)
	require.True(t, loan.BorrowedAt.Equal(got.BorrowedAt))
	require.True(t, loan.DueAt.Equal(got.DueAt))
	require.Nil(t, got.ReturnedAt)
	require.Equal(t, model.StatusActive, got.Status)
	require.Equal(t, int64(1), got.Version)

	_, err = repo.GetByID(ctx, uuid.NewString())
	require.True(t, errors.Is(err, errs.ErrNotFound))
	require.True(t, errs.IsNotFound(err, errs.EntityLoan))
}

func TestRepository_DuplicateOpenLoan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	first := newLoan(1, 10, base)
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newLoan(1, 10, base))
	require.True(t, errs.IsConflict(err, errs.ReasonAlreadyBorrowed))

	now := base.Add(time.Hour)
	first.Status = model.StatusReturned
	first.ReturnedAt = &now
	_, err = repo.Save(ctx, first)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newLoan(1, 10, base))
	require.NoError(t, err)
}

func TestRepository_SaveVersion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	loan := newLoan(2, 20, base)
	_, err := repo.Create(ctx, loan)
	require.NoError(t, err)

	stale := loan
	loan.Status = model.StatusOverdue
	saved, err := repo.Save(ctx, loan)
	require.NoError(t, err)
	require.Equal(t, int64(2), saved.Version)

	stale.DueAt = stale.DueAt.Add(24 * time.Hour)
	_, err = repo.Save(ctx, stale)
	require.ErrorIs(t, err, errs.ErrVersionConflict)

	got, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusOverdue, got.Status)
	require.Equal(t, int64(2), got.Version)
}

func TestRepository_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	overdue := newLoan(1, 10, base.AddDate(0, 0, -30))
	active := newLoan(1, 11, base.AddDate(0, 0, -1))
	other := newLoan(2, 10, base.AddDate(0, 0, -20))
	other.Status = model.StatusOverdue
	for _, l := range []model.Loan{overdue, active, other} {
		_, err := repo.Create(ctx, l)
		require.NoError(t, err)
	}

	ids := func(loans []model.Loan) []string {
		out := make([]string, 0, len(loans))
		for _, l := range loans {
			out = append(out, l.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter repository.Filter
		want   []string
	}{
		{name: "all", filter: repository.Filter{}, want: []string{overdue.ID, other.ID, active.ID}},
		{name: "by user", filter: repository.Filter{UserID: 1}, want: []string{overdue.ID, active.ID}},
		{name: "by book", filter: repository.Filter{BookID: 10}, want: []string{overdue.ID, other.ID}},
		{name: "by status", filter: repository.Filter{Statuses: []model.Status{model.StatusOverdue}}, want: []string{other.ID}},
		{
			name:   "overdue candidates",
			filter: repository.Filter{Statuses: []model.Status{model.StatusActive}, DueBefore: base},
			want:   []string{overdue.ID},
		},
		{name: "none", filter: repository.Filter{UserID: 3}, want: []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			require.Equal(t, tt.want, ids(got))
		})
	}

	n, err := repo.CountOpenByUser(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	has, err := repo.HasOpen(ctx, 2, 10)
	require.NoError(t, err)
	require.True(t, has)

	has, err = repo.HasOpen(ctx, 2, 11)
	require.NoError(t, err)
	require.False(t, has)
}
