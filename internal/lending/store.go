package lending

import (
	"context"
	"database/sql"
	"strings"

	"libreria-backend/internal/platform/apperr"
	"libreria-backend/internal/platform/db"
)

// Store persists loans in MySQL. Writes are compare-and-swap on the
// version column; a missed swap surfaces CONFLICT and nothing is retried.
type Store struct {
	conn db.DBTX
}

func NewStore(conn db.DBTX) *Store { return &Store{conn: conn} }

const loanColumns = `id, issue_date, return_date, record_status, book_id, customer_id, version`

func (s *Store) FindByID(ctx context.Context, id string) (*Loan, error) {
	const q = `SELECT ` + loanColumns + ` FROM loans WHERE id = ?`
	var l Loan
	err := s.conn.QueryRowContext(ctx, q, id).Scan(
		&l.ID, &l.IssueDate, &l.ReturnDate, &l.RecordStatus, &l.BookID, &l.CustomerID, &l.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrNotFound("loan", "loan not found")
		}
		return nil, err
	}
	return &l, nil
}

func (s *Store) Insert(ctx context.Context, l *Loan) error {
	const q = `
	INSERT INTO loans (id, issue_date, return_date, record_status, book_id, customer_id, version)
	VALUES (?, ?, ?, ?, ?, ?, 1)`
	_, err := s.conn.ExecContext(ctx, q,
		l.ID, l.IssueDate, l.ReturnDate, l.RecordStatus, l.BookID, l.CustomerID,
	)
	if err != nil {
		return err
	}
	l.Version = 1
	return nil
}

// Update writes the mutable loan fields. issue_date is immutable and
// never part of the SET list.
func (s *Store) Update(ctx context.Context, l *Loan) error {
	const q = `
	UPDATE loans
	SET return_date = ?, record_status = ?, book_id = ?, customer_id = ?, version = version + 1
	WHERE id = ? AND version = ?`
	res, err := s.conn.ExecContext(ctx, q,
		l.ReturnDate, l.RecordStatus, l.BookID, l.CustomerID, l.ID, l.Version,
	)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff != 1 {
		return apperr.ErrConflict("loan", "loan was modified concurrently")
	}
	l.Version++
	return nil
}

func (s *Store) List(ctx context.Context, f LoanFilter) ([]Loan, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + loanColumns + ` FROM loans WHERE 1=1`)

	args := []any{}
	if f.CustomerID != "" {
		sb.WriteString(` AND customer_id = ?`)
		args = append(args, f.CustomerID)
	}
	if f.BookID != "" {
		sb.WriteString(` AND book_id = ?`)
		args = append(args, f.BookID)
	}
	switch f.State {
	case StateOut:
		sb.WriteString(` AND return_date IS NULL`)
	case StateReturned:
		sb.WriteString(` AND return_date IS NOT NULL`)
	}
	sb.WriteString(` ORDER BY issue_date DESC`)

	rows, err := s.conn.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		var l Loan
		if err := rows.Scan(
			&l.ID, &l.IssueDate, &l.ReturnDate, &l.RecordStatus, &l.BookID, &l.CustomerID, &l.Version,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
