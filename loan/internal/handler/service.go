package handler

import (
	"context"

	"github.com/Astemirdum/library-loan-service/loan/internal/model"
	"github.com/Astemirdum/library-loan-service/loan/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LoanService interface {
	CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.LoanResponse, error)
	ReturnLoan(ctx context.Context, loanID string) (model.LoanResponse, error)
	ModifyLoan(ctx context.Context, loanID string, req model.ModifyLoanRequest) (model.LoanResponse, error)
	GetLoan(ctx context.Context, loanID string) (model.LoanResponse, error)
	ListLoans(ctx context.Context, status model.Status) (model.ListLoans, error)
	ListActive(ctx context.Context) (model.ListLoans, error)
	ListOverdue(ctx context.Context) (model.ListLoans, error)
	ListByUser(ctx context.Context, userID int64) (model.ListLoans, error)
	ListByBook(ctx context.Context, bookID int64) (model.ListLoans, error)
	SweepOverdue(ctx context.Context) (model.SweepReport, error)
}

var _ LoanService = (*service.Service)(nil)
