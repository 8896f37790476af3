package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/internal/errs"
	"github.com/Astemirdum/library-loan-service/loan/internal/model"
)

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
	d   dialect
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
		d:   postgresDialect,
	}, nil
}

func (r *repository) Create(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query, args, err := r.d.insert(loan)
	if err != nil {
		return model.Loan{}, err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Loan{}, errs.Conflict(errs.ReasonAlreadyBorrowed, nil)
		}
		r.log.Error("Create", zap.String("q", query), zap.Error(err))
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (model.Loan, error) {
	query, args, err := r.d.getByID(id)
	if err != nil {
		return model.Loan{}, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Loan{}, err
	}
	defer rows.Close()

	loan, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, errs.NotFound(errs.EntityLoan, id)
		}
		return model.Loan{}, err
	}
	return normalize(loan), nil
}

func (r *repository) Save(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query, args, err := r.d.save(loan)
	if err != nil {
		return model.Loan{}, err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Loan{}, errs.Conflict(errs.ReasonAlreadyBorrowed, nil)
		}
		return model.Loan{}, err
	}
	if tag.RowsAffected() == 0 {
		return model.Loan{}, errs.ErrVersionConflict
	}
	loan.Version++
	return loan, nil
}

func (r *repository) List(ctx context.Context, f Filter) ([]model.Loan, error) {
	query, args, err := r.d.list(f)
	if err != nil {
		return nil, err
	}
	r.log.Debug("List", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	for i := range loans {
		loans[i] = normalize(loans[i])
	}
	return loans, nil
}

func (r *repository) CountOpenByUser(ctx context.Context, userID int64) (int, error) {
	return r.countOpen(ctx, userID, 0)
}

func (r *repository) HasOpen(ctx context.Context, userID, bookID int64) (bool, error) {
	n, err := r.countOpen(ctx, userID, bookID)
	return n > 0, err
}

func (r *repository) countOpen(ctx context.Context, userID, bookID int64) (int, error) {
	query, args, err := r.d.countOpen(userID, bookID)
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
