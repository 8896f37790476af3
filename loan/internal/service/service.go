package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/moby/locker"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/internal/errs"
	"github.com/Astemirdum/library-loan-service/loan/internal/model"
	"github.com/Astemirdum/library-loan-service/loan/internal/repository"
	"github.com/Astemirdum/library-loan-service/pkg/kafka"
)

type Policy struct {
	DefaultDurationDays int
	MaxOpen             int
}

var DefaultPolicy = Policy{
	DefaultDurationDays: model.DefaultDurationDays,
	MaxOpen:             3,
}

// Service serializes per-loan and per-user mutations inside one process only.
// Running several replicas against the same postgres database is not supported:
// two replicas could both release the copy of the same loan.
type Service struct {
	log       *zap.Logger
	repo      repository.Repository
	identity  IdentityAccessor
	inventory InventoryAccessor
	events    EventPublisher
	locks     *locker.Locker
	policy    Policy
	now       func() time.Time
}

type Option func(s *Service)

func WithPolicy(p Policy) Option {
	return func(s *Service) {
		if p.DefaultDurationDays > 0 {
			s.policy.DefaultDurationDays = p.DefaultDurationDays
		}
		if p.MaxOpen > 0 {
			s.policy.MaxOpen = p.MaxOpen
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	repo repository.Repository,
	identity IdentityAccessor,
	inventory InventoryAccessor,
	events EventPublisher,
	log *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		log:       log,
		repo:      repo,
		identity:  identity,
		inventory: inventory,
		events:    events,
		locks:     locker.New(),
		policy:    DefaultPolicy,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func userKey(id int64) string  { return fmt.Sprintf("user:%d", id) }
func loanKey(id string) string { return "loan:" + id }

func (s *Service) lock(key string) (unlock func()) {
	s.locks.Lock(key)
	return func() {
		_ = s.locks.Unlock(key) //nolint:errcheck
	}
}

// timestamp is the current time as stored: UTC with microsecond precision.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// CreateLoan runs the checks in a fixed order and stops at the first failure.
// Nothing is persisted unless the inventory owner reserved a copy.
func (s *Service) CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.LoanResponse, error) {
	days := s.policy.DefaultDurationDays
	if req.DurationDays != nil {
		if *req.DurationDays <= 0 {
			return model.LoanResponse{}, errors.Wrap(errs.ErrValidation, "durationDays must be positive")
		}
		days = *req.DurationDays
	}

	user, err := s.identity.Lookup(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.LoanResponse{}, errs.NotFound(errs.EntityUser, req.UserID)
		}
		return model.LoanResponse{}, err
	}
	book, err := s.inventory.Lookup(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.LoanResponse{}, errs.NotFound(errs.EntityBook, req.BookID)
		}
		return model.LoanResponse{}, err
	}
	if book.Available <= 0 {
		return model.LoanResponse{}, errs.Conflict(errs.ReasonNoCopyAvailable, nil)
	}

	unlock := s.lock(userKey(req.UserID))
	defer unlock()

	open, err := s.repo.CountOpenByUser(ctx, req.UserID)
	if err != nil {
		return model.LoanResponse{}, errors.Wrap(err, "repo.CountOpenByUser")
	}
	if open >= s.policy.MaxOpen {
		return model.LoanResponse{}, errs.Conflict(errs.ReasonLoanLimit, nil)
	}
	has, err := s.repo.HasOpen(ctx, req.UserID, req.BookID)
	if err != nil {
		return model.LoanResponse{}, errors.Wrap(err, "repo.HasOpen")
	}
	if has {
		return model.LoanResponse{}, errs.Conflict(errs.ReasonAlreadyBorrowed, nil)
	}

	res, err := s.inventory.ReserveCopy(ctx, req.BookID)
	if err != nil {
		return model.LoanResponse{}, errs.Conflict(errs.ReasonReserveFailed, err)
	}
	if !res.OK {
		return model.LoanResponse{}, errs.Conflict(errs.ReasonReserveFailed, nil)
	}

	now := s.timestamp()
	loan := model.Loan{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		BookID:     req.BookID,
		BorrowedAt: now,
		DueAt:      model.DueAt(now, days),
		Status:     model.StatusActive,
		Version:    1,
	}
	if _, err := s.repo.Create(ctx, loan); err != nil {
		s.compensateReserve(ctx, loan)
		if errors.Is(err, errs.ErrConflict) {
			return model.LoanResponse{}, err
		}
		return model.LoanResponse{}, errors.Wrap(err, "repo.Create")
	}
	s.log.Info("loan created",
		zap.String("loanId", loan.ID), zap.Int64("userId", loan.UserID), zap.Int64("bookId", loan.BookID))
	s.events.Publish(ctx, kafka.EventLoanCreated, loan)

	snap := newSnapshots()
	snap.users[req.UserID] = &user
	snap.books[req.BookID] = bookAfter(book, res)
	return s.enrichOne(ctx, loan, snap), nil
}

// compensateReserve gives the copy back when the loan could not be stored.
func (s *Service) compensateReserve(ctx context.Context, loan model.Loan) {
	ctx = context.WithoutCancel(ctx)
	res, err := s.inventory.ReleaseCopy(ctx, loan.BookID)
	if err != nil || !res.OK {
		s.log.Error("orphaned reservation",
			zap.Int64("bookId", loan.BookID), zap.Int64("userId", loan.UserID), zap.Bool("ok", res.OK), zap.Error(err))
		return
	}
	s.log.Warn("reservation released after failed persist", zap.Int64("bookId", loan.BookID))
}

func bookAfter(book model.BookSummary, res model.CopyResult) *model.BookSummary {
	if res.Book != nil {
		b := *res.Book
		return &b
	}
	book.Available = res.AvailableAfter
	return &book
}

// ReturnLoan closes an open loan. The loan is untouched unless the copy was released.
func (s *Service) ReturnLoan(ctx context.Context, loanID string) (model.LoanResponse, error) {
	unlock := s.lock(loanKey(loanID))
	defer unlock()

	loan, err := s.repo.GetByID(ctx, loanID)
	if err != nil {
		return model.LoanResponse{}, err
	}
	if !loan.IsOpen() {
		return model.LoanResponse{}, errs.Conflict(errs.ReasonAlreadyReturned, nil)
	}

	res, err := s.inventory.ReleaseCopy(ctx, loan.BookID)
	if err != nil {
		return model.LoanResponse{}, errs.Conflict(errs.ReasonReleaseFailed, err)
	}
	if !res.OK {
		return model.LoanResponse{}, errs.Conflict(errs.ReasonReleaseFailed, nil)
	}

	// once the copy is released the loan is closed even if the caller goes away
	closeCtx := context.WithoutCancel(ctx)
	now := s.timestamp()
	saved, err := s.update(closeCtx, loan, func(l *model.Loan) error {
		if !l.IsOpen() {
			return errs.Conflict(errs.ReasonAlreadyReturned, nil)
		}
		l.Status = model.StatusReturned
		l.ReturnedAt = &now
		return nil
	})
	if err != nil {
		s.log.Error("copy released but loan not closed",
			zap.String("loanId", loan.ID), zap.Int64("bookId", loan.BookID), zap.Error(err))
		return model.LoanResponse{}, err
	}
	s.log.Info("loan returned", zap.String("loanId", saved.ID))
	s.events.Publish(closeCtx, kafka.EventLoanReturned, saved)

	snap := newSnapshots()
	if res.Book != nil {
		snap.books[saved.BookID] = res.Book
	}
	return s.enrichOne(ctx, saved, snap), nil
}

// ModifyLoan moves borrowedAt and/or changes the duration. dueAt is always recomputed
// from the resulting pair. No remote side effects.
func (s *Service) ModifyLoan(ctx context.Context, loanID string, req model.ModifyLoanRequest) (model.LoanResponse, error) {
	if req.DurationDays != nil && *req.DurationDays <= 0 {
		return model.LoanResponse{}, errors.Wrap(errs.ErrValidation, "durationDays must be positive")
	}

	unlock := s.lock(loanKey(loanID))
	defer unlock()

	loan, err := s.repo.GetByID(ctx, loanID)
	if err != nil {
		return model.LoanResponse{}, err
	}
	if req.BorrowedAt == nil && req.DurationDays == nil {
		return s.enrichOne(ctx, loan, newSnapshots()), nil
	}

	saved, err := s.update(ctx, loan, func(l *model.Loan) error {
		if !l.IsOpen() {
			return errs.Conflict(errs.ReasonAlreadyReturned, nil)
		}
		days := durationDays(*l)
		if req.DurationDays != nil {
			days = *req.DurationDays
		}
		if req.BorrowedAt != nil {
			l.BorrowedAt = req.BorrowedAt.UTC().Truncate(time.Microsecond)
		}
		l.DueAt = model.DueAt(l.BorrowedAt, days)
		return nil
	})
	if err != nil {
		return model.LoanResponse{}, err
	}
	s.log.Info("loan modified", zap.String("loanId", saved.ID), zap.Time("dueAt", saved.DueAt))
	return s.enrichOne(ctx, saved, newSnapshots()), nil
}

func durationDays(l model.Loan) int {
	return int(math.Round(l.DueAt.Sub(l.BorrowedAt).Hours() / 24))
}

func versionBackoff() retry.Backoff {
	return retry.WithMaxRetries(3, retry.WithJitterPercent(30, retry.NewExponential(10*time.Millisecond)))
}

// update applies fn and saves. On a version conflict the loan is reloaded and fn applied again.
func (s *Service) update(ctx context.Context, loan model.Loan, fn func(l *model.Loan) error) (model.Loan, error) {
	var (
		saved  model.Loan
		reload bool
	)
	err := retry.Do(ctx, versionBackoff(), func(ctx context.Context) error {
		if reload {
			fresh, err := s.repo.GetByID(ctx, loan.ID)
			if err != nil {
				return err
			}
			loan = fresh
		}
		reload = true

		next := loan
		if err := fn(&next); err != nil {
			return err
		}
		var err error
		saved, err = s.repo.Save(ctx, next)
		if errors.Is(err, errs.ErrVersionConflict) {
			return retry.RetryableError(err)
		}
		return err
	})
	return saved, err
}

func (s *Service) GetLoan(ctx context.Context, loanID string) (model.LoanResponse, error) {
	loan, err := s.repo.GetByID(ctx, loanID)
	if err != nil {
		return model.LoanResponse{}, err
	}
	return s.enrichOne(ctx, loan, newSnapshots()), nil
}
