package books

import (
	"context"
	"database/sql"

	"libreria-backend/internal/platform/apperr"
	"libreria-backend/internal/platform/db"
)

type Store struct {
	conn db.DBTX
}

func NewStore(conn db.DBTX) *Store { return &Store{conn: conn} }

const bookColumns = `id, isbn, title, publication_year, total_copies, loaned_copies, available_copies, enabled, author_id, publisher_id, version`

func (s *Store) scanRow(row *sql.Row) (*Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.ISBN, &b.Title, &b.Year, &b.TotalCopies, &b.LoanedCopies,
		&b.AvailableCopies, &b.Enabled, &b.AuthorID, &b.PublisherID, &b.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrNotFound("book", "book not found")
		}
		return nil, err
	}
	return &b, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*Book, error) {
	const q = `SELECT ` + bookColumns + ` FROM books WHERE id = ?`
	return s.scanRow(s.conn.QueryRowContext(ctx, q, id))
}

// FindByISBN returns nil without error when no book carries the ISBN,
// so uniqueness checks can tell "free" from "lookup failed".
func (s *Store) FindByISBN(ctx context.Context, isbn int64) (*Book, error) {
	const q = `SELECT ` + bookColumns + ` FROM books WHERE isbn = ?`
	b, err := s.scanRow(s.conn.QueryRowContext(ctx, q, isbn))
	if apperr.IsCode(err, apperr.CodeNotFound) {
		return nil, nil
	}
	return b, err
}

func (s *Store) FindByTitle(ctx context.Context, title string) (*Book, error) {
	const q = `SELECT ` + bookColumns + ` FROM books WHERE title = ?`
	b, err := s.scanRow(s.conn.QueryRowContext(ctx, q, title))
	if apperr.IsCode(err, apperr.CodeNotFound) {
		return nil, nil
	}
	return b, err
}

func (s *Store) Insert(ctx context.Context, b *Book) error {
	const q = `
	INSERT INTO books
	(id, isbn, title, publication_year, total_copies, loaned_copies, available_copies, enabled, author_id, publisher_id, version)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`
	_, err := s.conn.ExecContext(ctx, q,
		b.ID, b.ISBN, b.Title, b.Year, b.TotalCopies, b.LoanedCopies,
		b.AvailableCopies, b.Enabled, b.AuthorID, b.PublisherID,
	)
	if err != nil {
		return err
	}
	b.Version = 1
	return nil
}

// Update writes the catalog-owned fields, counters included, guarded by
// the version column.
func (s *Store) Update(ctx context.Context, b *Book) error {
	const q = `
	UPDATE books
	SET isbn = ?, title = ?, publication_year = ?, total_copies = ?, loaned_copies = ?,
	    available_copies = ?, enabled = ?, author_id = ?, publisher_id = ?, version = version + 1
	WHERE id = ? AND version = ?`
	res, err := s.conn.ExecContext(ctx, q,
		b.ISBN, b.Title, b.Year, b.TotalCopies, b.LoanedCopies,
		b.AvailableCopies, b.Enabled, b.AuthorID, b.PublisherID, b.ID, b.Version,
	)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff != 1 {
		return apperr.ErrConflict("book", "book was modified concurrently")
	}
	b.Version++
	return nil
}

// SaveCounters moves only the two loan counters. This is the single write
// the lending core is allowed to make against a book row.
func (s *Store) SaveCounters(ctx context.Context, b *Book) error {
	const q = `
	UPDATE books
	SET loaned_copies = ?, available_copies = ?, version = version + 1
	WHERE id = ? AND version = ?`
	res, err := s.conn.ExecContext(ctx, q, b.LoanedCopies, b.AvailableCopies, b.ID, b.Version)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff != 1 {
		return apperr.ErrConflict("book", "book was modified concurrently")
	}
	b.Version++
	return nil
}

func (s *Store) List(ctx context.Context, enabledOnly bool) ([]Book, error) {
	q := `SELECT ` + bookColumns + ` FROM books`
	if enabledOnly {
		q += ` WHERE enabled = 1`
	}
	rows, err := s.conn.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID, &b.ISBN, &b.Title, &b.Year, &b.TotalCopies, &b.LoanedCopies,
			&b.AvailableCopies, &b.Enabled, &b.AuthorID, &b.PublisherID, &b.Version,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
