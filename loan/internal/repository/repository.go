package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Astemirdum/library-loan-service/loan/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	Create(ctx context.Context, loan model.Loan) (model.Loan, error)
	GetByID(ctx context.Context, id string) (model.Loan, error)
	// Save writes loan if its version is still current and returns it with the next version.
	Save(ctx context.Context, loan model.Loan) (model.Loan, error)
	List(ctx context.Context, f Filter) ([]model.Loan, error)
	CountOpenByUser(ctx context.Context, userID int64) (int, error)
	HasOpen(ctx context.Context, userID, bookID int64) (bool, error)
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	UserID    int64
	BookID    int64
	Statuses  []model.Status
	DueBefore time.Time
}

const loansTableName = `loans`

var loanColumns = []string{"id", "user_id", "book_id", "borrowed_at", "due_at", "returned_at", "status", "version"}

// dialect holds the parts of a query that differ between storage engines.
type dialect struct {
	qb        sq.StatementBuilderType
	dueBefore func(t time.Time) sq.Sqlizer
	orderBy   string
}

var (
	postgresDialect = dialect{
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		dueBefore: func(t time.Time) sq.Sqlizer {
			return sq.Lt{"due_at": t}
		},
		orderBy: "borrowed_at, id",
	}
	sqliteDialect = dialect{
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		dueBefore: func(t time.Time) sq.Sqlizer {
			return sq.Expr("julianday(due_at) < julianday(?)", t)
		},
		orderBy: "julianday(borrowed_at), id",
	}
)

func statusStrings(ss []model.Status) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, string(s))
	}
	return out
}

func (d dialect) insert(l model.Loan) (string, []any, error) {
	return d.qb.Insert(loansTableName).
		Columns(loanColumns...).
		Values(l.ID, l.UserID, l.BookID, l.BorrowedAt, l.DueAt, l.ReturnedAt, string(l.Status), l.Version).
		ToSql()
}

func (d dialect) getByID(id string) (string, []any, error) {
	return d.qb.Select(loanColumns...).
		From(loansTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
}

func (d dialect) save(l model.Loan) (string, []any, error) {
	return d.qb.Update(loansTableName).
		Set("borrowed_at", l.BorrowedAt).
		Set("due_at", l.DueAt).
		Set("returned_at", l.ReturnedAt).
		Set("status", string(l.Status)).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": l.ID, "version": l.Version}).
		ToSql()
}

func (d dialect) list(f Filter) (string, []any, error) {
	q := d.qb.Select(loanColumns...).From(loansTableName)
	if f.UserID != 0 {
		q = q.Where(sq.Eq{"user_id": f.UserID})
	}
	if f.BookID != 0 {
		q = q.Where(sq.Eq{"book_id": f.BookID})
	}
	if len(f.Statuses) > 0 {
		q = q.Where(sq.Eq{"status": statusStrings(f.Statuses)})
	}
	if !f.DueBefore.IsZero() {
		q = q.Where(d.dueBefore(f.DueBefore))
	}
	return q.OrderBy(d.orderBy).ToSql()
}

func (d dialect) countOpen(userID int64, bookID int64) (string, []any, error) {
	q := d.qb.Select("count(*)").
		From(loansTableName).
		Where(sq.Eq{"user_id": userID, "status": statusStrings(model.OpenStatuses)})
	if bookID != 0 {
		q = q.Where(sq.Eq{"book_id": bookID})
	}
	return q.ToSql()
}

func normalize(l model.Loan) model.Loan {
	l.BorrowedAt = l.BorrowedAt.UTC()
	l.DueAt = l.DueAt.UTC()
	if l.ReturnedAt != nil {
		t := l.ReturnedAt.UTC()
		l.ReturnedAt = &t
	}
	return l
}
