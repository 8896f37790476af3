package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/internal/errs"
	"github.com/Astemirdum/library-loan-service/loan/internal/model"
	"github.com/Astemirdum/library-loan-service/loan/internal/repository"
	"github.com/Astemirdum/library-loan-service/pkg/kafka"
)

var errNotStale = errors.New("loan is no longer active and past due")

// SweepOverdue marks every ACTIVE loan whose due date has passed as OVERDUE.
// A failure on one loan is recorded in the report and the rest are still processed.
// Inventory is never touched.
func (s *Service) SweepOverdue(ctx context.Context) (model.SweepReport, error) {
	report, _, err := s.sweep(ctx)
	return report, err
}

// sweep also returns the loans it moved to OVERDUE.
func (s *Service) sweep(ctx context.Context) (model.SweepReport, []model.Loan, error) {
	now := s.timestamp()
	report := model.SweepReport{
		StartedAt:    now,
		Transitioned: []string{},
		Skipped:      []string{},
		Failed:       []model.SweepFailure{},
	}

	candidates, err := s.repo.List(ctx, repository.Filter{
		Statuses:  []model.Status{model.StatusActive},
		DueBefore: now,
	})
	if err != nil {
		return report, nil, errors.Wrap(err, "repo.List")
	}
	report.Candidates = len(candidates)

	transitioned := make([]model.Loan, 0, len(candidates))

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return report, transitioned, err
		}
		loan, err := s.markOverdue(ctx, c)
		switch {
		case errors.Is(err, errNotStale):
			report.Skipped = append(report.Skipped, c.ID)
		case err != nil:
			s.log.Error("sweep: mark overdue", zap.String("loanId", c.ID), zap.Error(err))
			report.Failed = append(report.Failed, model.SweepFailure{LoanID: c.ID, Error: err.Error()})
		default:
			report.Transitioned = append(report.Transitioned, loan.ID)
			transitioned = append(transitioned, loan)
			s.events.Publish(ctx, kafka.EventLoanOverdue, loan)
		}
	}

	if len(report.Transitioned) > 0 || len(report.Failed) > 0 {
		s.log.Info("sweep done",
			zap.Int("candidates", report.Candidates),
			zap.Int("transitioned", len(report.Transitioned)),
			zap.Int("failed", len(report.Failed)))
	}
	return report, transitioned, nil
}

func (s *Service) markOverdue(ctx context.Context, candidate model.Loan) (model.Loan, error) {
	unlock := s.lock(loanKey(candidate.ID))
	defer unlock()

	now := s.timestamp()
	loan, err := s.repo.GetByID(ctx, candidate.ID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Loan{}, errNotStale
		}
		return model.Loan{}, err
	}
	return s.update(ctx, loan, func(l *model.Loan) error {
		if !l.IsOverdueAt(now) {
			return errNotStale
		}
		l.Status = model.StatusOverdue
		return nil
	})
}
