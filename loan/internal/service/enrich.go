package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/library-loan-service/loan/internal/model"
)

const enrichConcurrency = 8

// snapshots caches the user and book summaries read while serving one request.
// A nil entry means the lookup failed and the field stays absent.
type snapshots struct {
	mu    sync.Mutex
	users map[int64]*model.UserSummary
	books map[int64]*model.BookSummary
}

func newSnapshots() *snapshots {
	return &snapshots{
		users: make(map[int64]*model.UserSummary),
		books: make(map[int64]*model.BookSummary),
	}
}

func (s *Service) enrichOne(ctx context.Context, loan model.Loan, snap *snapshots) model.LoanResponse {
	return s.enrich(ctx, []model.Loan{loan}, snap)[0]
}

// enrich attaches user and book snapshots to every loan. Lookups run in parallel,
// once per distinct id, and their failures are swallowed.
func (s *Service) enrich(ctx context.Context, loans []model.Loan, snap *snapshots) []model.LoanResponse {
	userIDs := make(map[int64]struct{})
	bookIDs := make(map[int64]struct{})
	for _, l := range loans {
		if _, ok := snap.users[l.UserID]; !ok {
			userIDs[l.UserID] = struct{}{}
		}
		if _, ok := snap.books[l.BookID]; !ok {
			bookIDs[l.BookID] = struct{}{}
		}
	}

	var g errgroup.Group
	g.SetLimit(enrichConcurrency)
	for id := range userIDs {
		id := id
		g.Go(func() error {
			user, err := s.identity.Lookup(ctx, id)
			snap.mu.Lock()
			defer snap.mu.Unlock()
			if err != nil {
				s.log.Debug("user enrichment skipped", zap.Int64("userId", id), zap.Error(err))
				snap.users[id] = nil
				return nil
			}
			snap.users[id] = &user
			return nil
		})
	}
	for id := range bookIDs {
		id := id
		g.Go(func() error {
			book, err := s.inventory.Lookup(ctx, id)
			snap.mu.Lock()
			defer snap.mu.Unlock()
			if err != nil {
				s.log.Debug("book enrichment skipped", zap.Int64("bookId", id), zap.Error(err))
				snap.books[id] = nil
				return nil
			}
			snap.books[id] = &book
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck

	out := make([]model.LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, model.LoanResponse{
			Loan: l,
			User: snap.users[l.UserID],
			Book: snap.books[l.BookID],
		})
	}
	return out
}
