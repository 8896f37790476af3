package service

import (
	"context"

	"github.com/Astemirdum/library-loan-service/loan/internal/model"
	"github.com/Astemirdum/library-loan-service/pkg/kafka"
)

//go:generate go run github.com/golang/mock/mockgen -source=accessors.go -destination=mocks/mock.go

// IdentityAccessor reads users from the service that owns them.
type IdentityAccessor interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	Lookup(ctx context.Context, userID int64) (model.UserSummary, error)
}

// InventoryAccessor reads books and moves copies on the service that owns the counters.
// ReserveCopy and ReleaseCopy are atomic at the owner.
type InventoryAccessor interface {
	Lookup(ctx context.Context, bookID int64) (model.BookSummary, error)
	ReserveCopy(ctx context.Context, bookID int64) (model.CopyResult, error)
	ReleaseCopy(ctx context.Context, bookID int64) (model.CopyResult, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, et kafka.EventType, loan model.Loan)
}
