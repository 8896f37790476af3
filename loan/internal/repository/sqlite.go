package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Astemirdum/library-loan-service/loan/internal/errs"
	"github.com/Astemirdum/library-loan-service/loan/internal/model"
)

type sqliteRepository struct {
	db  *sqlx.DB
	log *zap.Logger
	d   dialect
}

func NewSQLiteRepository(db *sqlx.DB, log *zap.Logger) (*sqliteRepository, error) {
	return &sqliteRepository{
		db:  db,
		log: log.Named("repo"),
		d:   sqliteDialect,
	}, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE")
}

func (r *sqliteRepository) Create(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query, args, err := r.d.insert(loan)
	if err != nil {
		return model.Loan{}, err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return model.Loan{}, errs.Conflict(errs.ReasonAlreadyBorrowed, nil)
		}
		r.log.Error("Create", zap.String("q", query), zap.Error(err))
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *sqliteRepository) GetByID(ctx context.Context, id string) (model.Loan, error) {
	query, args, err := r.d.getByID(id)
	if err != nil {
		return model.Loan{}, err
	}
	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.NotFound(errs.EntityLoan, id)
		}
		return model.Loan{}, err
	}
	return normalize(loan), nil
}

func (r *sqliteRepository) Save(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query, args, err := r.d.save(loan)
	if err != nil {
		return model.Loan{}, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Loan{}, errs.Conflict(errs.ReasonAlreadyBorrowed, nil)
		}
		return model.Loan{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Loan{}, err
	}
	if n == 0 {
		return model.Loan{}, errs.ErrVersionConflict
	}
	loan.Version++
	return loan, nil
}

func (r *sqliteRepository) List(ctx context.Context, f Filter) ([]model.Loan, error) {
	query, args, err := r.d.list(f)
	if err != nil {
		return nil, err
	}
	r.log.Debug("List", zap.String("query", query), zap.Any("args", args))

	var loans []model.Loan
	if err := r.db.SelectContext(ctx, &loans, query, args...); err != nil {
		return nil, err
	}
	for i := range loans {
		loans[i] = normalize(loans[i])
	}
	return loans, nil
}

func (r *sqliteRepository) CountOpenByUser(ctx context.Context, userID int64) (int, error) {
	return r.countOpen(ctx, userID, 0)
}

func (r *sqliteRepository) HasOpen(ctx context.Context, userID, bookID int64) (bool, error) {
	n, err := r.countOpen(ctx, userID, bookID)
	return n > 0, err
}

func (r *sqliteRepository) countOpen(ctx context.Context, userID, bookID int64) (int, error) {
	query, args, err := r.d.countOpen(userID, bookID)
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
