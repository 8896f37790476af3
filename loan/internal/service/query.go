package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/internal/errs"
	"github.com/Astemirdum/library-loan-service/loan/internal/model"
	"github.com/Astemirdum/library-loan-service/loan/internal/repository"
)

func (s *Service) list(ctx context.Context, f repository.Filter, snap *snapshots) (model.ListLoans, error) {
	loans, err := s.repo.List(ctx, f)
	if err != nil {
		return model.ListLoans{}, errors.Wrap(err, "repo.List")
	}
	items := s.enrich(ctx, loans, snap)
	return model.ListLoans{
		TotalElements: len(items),
		Items:         items,
	}, nil
}

// ListLoans lists every loan, or only those in status when it is set.
func (s *Service) ListLoans(ctx context.Context, status model.Status) (model.ListLoans, error) {
	var f repository.Filter
	if status != "" {
		f.Statuses = []model.Status{status}
	}
	return s.list(ctx, f, newSnapshots())
}

func (s *Service) ListActive(ctx context.Context) (model.ListLoans, error) {
	return s.list(ctx, repository.Filter{Statuses: []model.Status{model.StatusActive}}, newSnapshots())
}

// ListByUser fails with a not found error only when the identity owner says the user
// does not exist. If it cannot be reached the loans are listed anyway.
func (s *Service) ListByUser(ctx context.Context, userID int64) (model.ListLoans, error) {
	ok, err := s.identity.Exists(ctx, userID)
	switch {
	case err != nil:
		s.log.Warn("user existence not verified", zap.Int64("userId", userID), zap.Error(err))
	case !ok:
		return model.ListLoans{}, errs.NotFound(errs.EntityUser, userID)
	}
	return s.list(ctx, repository.Filter{UserID: userID}, newSnapshots())
}

// ListByBook behaves like ListByUser against the inventory owner.
func (s *Service) ListByBook(ctx context.Context, bookID int64) (model.ListLoans, error) {
	snap := newSnapshots()
	book, err := s.inventory.Lookup(ctx, bookID)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return model.ListLoans{}, errs.NotFound(errs.EntityBook, bookID)
	case err != nil:
		s.log.Warn("book existence not verified", zap.Int64("bookId", bookID), zap.Error(err))
	default:
		snap.books[bookID] = &book
	}
	return s.list(ctx, repository.Filter{BookID: bookID}, snap)
}

// ListOverdue moves the ACTIVE loans past their due date to OVERDUE and returns
// exactly those. Loans already OVERDUE are listed with ListLoans(StatusOverdue).
func (s *Service) ListOverdue(ctx context.Context) (model.ListLoans, error) {
	_, loans, err := s.sweep(ctx)
	if err != nil {
		return model.ListLoans{}, err
	}
	items := s.enrich(ctx, loans, newSnapshots())
	return model.ListLoans{
		TotalElements: len(items),
		Items:         items,
	}, nil
}
