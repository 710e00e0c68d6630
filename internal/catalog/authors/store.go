package authors

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

func (s *Store) FindByID(ctx context.Context, id string) (*Author, error) {
	const q = `SELECT id, name, enabled, version FROM authors WHERE id = ?`
	var a Author
	err := s.conn.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Name, &a.Enabled, &a.Version)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrNotFound("author", "author not found")
		}
		return nil, err
	}
	return &a, nil
}

// FindByName returns nil without error when the name is unused.
func (s *Store) FindByName(ctx context.Context, name string) (*Author, error) {
	const q = `SELECT id, name, enabled, version FROM authors WHERE name = ?`
	var a Author
	err := s.conn.QueryRowContext(ctx, q, name).Scan(&a.ID, &a.Name, &a.Enabled, &a.Version)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) Insert(ctx context.Context, a *Author) error {
	const q = `INSERT INTO authors (id, name, enabled, version) VALUES (?, ?, ?, 1)`
	_, err := s.conn.ExecContext(ctx, q, a.ID, a.Name, a.Enabled)
	if err != nil {
		return err
	}
	a.Version = 1
	return nil
}

func (s *Store) Update(ctx context.Context, a *Author) error {
	const q = `UPDATE authors SET name = ?, enabled = ?, version = version + 1 WHERE id = ? AND version = ?`
	res, err := s.conn.ExecContext(ctx, q, a.Name, a.Enabled, a.ID, a.Version)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff != 1 {
		return apperr.ErrConflict("author", "author was modified concurrently")
	}
	a.Version++
	return nil
}

func (s *Store) List(ctx context.Context, enabledOnly bool) ([]Author, error) {
	q := `SELECT id, name, enabled, version FROM authors`
	if enabledOnly {
		q += ` WHERE enabled = 1`
	}
	q += ` ORDER BY name`
	rows, err := s.conn.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Enabled, &a.Version); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
