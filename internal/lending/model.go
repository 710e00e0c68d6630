package lending

import (
	"database/sql"
	"time"
)

// RecordStatus is the administrative enabled/disabled flag on a loan row.
// It is independent of the loan's lifecycle state: disabling a loan does
// not return the copy or touch any counter.
type RecordStatus string

const (
	RecordActive   RecordStatus = "active"
	RecordDisabled RecordStatus = "disabled"
)

// LoanState is derived from the return date, never stored.
type LoanState string

const (
	StateOut      LoanState = "out"
	StateReturned LoanState = "returned"
)

// Loan is one book-copy lending transaction tied to one customer.
type Loan struct {
	ID           string
	IssueDate    time.Time
	ReturnDate   sql.NullTime
	RecordStatus RecordStatus
	BookID       string
	CustomerID   string
	Version      int64
}

// State reports whether the copy is still out.
func (l Loan) State() LoanState {
	if l.ReturnDate.Valid {
		return StateReturned
	}
	return StateOut
}

// LoanFilter narrows List results.
type LoanFilter struct {
	CustomerID string
	BookID     string
	State      LoanState
}
