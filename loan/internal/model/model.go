package model

import (
	"strings"
	"time"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusOverdue  Status = "OVERDUE"
	StatusReturned Status = "RETURNED"
)

// OpenStatuses are the statuses of a loan that still holds a copy.
var OpenStatuses = []Status{StatusActive, StatusOverdue}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusOverdue, StatusReturned:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.Valid()
}

const DefaultDurationDays = 14

type Loan struct {
	ID         string     `json:"id" db:"id"`
	UserID     int64      `json:"userId" db:"user_id"`
	BookID     int64      `json:"bookId" db:"book_id"`
	BorrowedAt time.Time  `json:"borrowedAt" db:"borrowed_at"`
	DueAt      time.Time  `json:"dueAt" db:"due_at"`
	ReturnedAt *time.Time `json:"returnedAt" db:"returned_at"`
	Status     Status     `json:"status" db:"status"`
	Version    int64      `json:"-" db:"version"`
}

func (l Loan) IsOpen() bool {
	return l.Status == StatusActive || l.Status == StatusOverdue
}

// IsOverdueAt reports whether an ACTIVE loan is past due at now.
func (l Loan) IsOverdueAt(now time.Time) bool {
	return l.Status == StatusActive && l.DueAt.Before(now)
}

func DueAt(borrowedAt time.Time, durationDays int) time.Time {
	return borrowedAt.AddDate(0, 0, durationDays)
}

type UserSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type BookSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Category  string `json:"category,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Borrowed  int    `json:"borrowed"`
}

// CopyResult is the outcome of a reserve or release call on the inventory owner.
type CopyResult struct {
	OK             bool
	AvailableAfter int
	Book           *BookSummary
}

type LoanResponse struct {
	Loan
	User *UserSummary `json:"user"`
	Book *BookSummary `json:"book"`
}

type ListLoans struct {
	TotalElements int            `json:"totalElements"`
	Items         []LoanResponse `json:"items"`
}

type CreateLoanRequest struct {
	UserID       int64 `json:"userId" validate:"required,gt=0"`
	BookID       int64 `json:"bookId" validate:"required,gt=0"`
	DurationDays *int  `json:"durationDays" validate:"omitempty,gt=0"`
}

type ModifyLoanRequest struct {
	BorrowedAt   *time.Time `json:"borrowedAt"`
	DurationDays *int       `json:"durationDays" validate:"omitempty,gt=0"`
}

type SweepFailure struct {
	LoanID string `json:"loanId"`
	Error  string `json:"error"`
}

type SweepReport struct {
	StartedAt    time.Time      `json:"startedAt"`
	Candidates   int            `json:"candidates"`
	Transitioned []string       `json:"transitioned"`
	Skipped      []string       `json:"skipped"`
	Failed       []SweepFailure `json:"failed"`
}
