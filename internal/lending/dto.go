package lending

import "time"

type IssueLoanRequest struct {
	BookID     string `json:"book_id" binding:"required"`
	CustomerID string `json:"customer_id" binding:"required"`
}

type ModifyLoanRequest struct {
	BookID     string `json:"book_id" binding:"required"`
	CustomerID string `json:"customer_id" binding:"required"`
}

type LoanResponse struct {
	ID           string       `json:"id"`
	IssueDate    time.Time    `json:"issue_date"`
	ReturnDate   *time.Time   `json:"return_date,omitempty"`
	State        LoanState    `json:"state"`
	RecordStatus RecordStatus `json:"record_status"`
	BookID       string       `json:"book_id"`
	CustomerID   string       `json:"customer_id"`
}

func toResponse(l *Loan) *LoanResponse {
	resp := &LoanResponse{
		ID:           l.ID,
		IssueDate:    l.IssueDate,
		State:        l.State(),
		RecordStatus: l.RecordStatus,
		BookID:       l.BookID,
		CustomerID:   l.CustomerID,
	}
	if l.ReturnDate.Valid {
		val := l.ReturnDate.Time
		resp.ReturnDate = &val
	}
	return resp
}
