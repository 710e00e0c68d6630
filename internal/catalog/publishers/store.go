package publishers

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

func (s *Store) FindByID(ctx context.Context, id string) (*Publisher, error) {
	const q = `SELECT id, name, enabled, version FROM publishers WHERE id = ?`
	var p Publisher
	err := s.conn.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.Enabled, &p.Version)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrNotFound("publisher", "publisher not found")
		}
		return nil, err
	}
	return &p, nil
}

// FindByName returns nil without error when the name is unused.
func (s *Store) FindByName(ctx context.Context, name string) (*Publisher, error) {
	const q = `SELECT id, name, enabled, version FROM publishers WHERE name = ?`
	var p Publisher
	err := s.conn.QueryRowContext(ctx, q, name).Scan(&p.ID, &p.Name, &p.Enabled, &p.Version)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) Insert(ctx context.Context, p *Publisher) error {
	const q = `INSERT INTO publishers (id, name, enabled, version) VALUES (?, ?, ?, 1)`
	_, err := s.conn.ExecContext(ctx, q, p.ID, p.Name, p.Enabled)
	if err != nil {
		return err
	}
	p.Version = 1
	return nil
}

func (s *Store) Update(ctx context.Context, p *Publisher) error {
	const q = `UPDATE publishers SET name = ?, enabled = ?, version = version + 1 WHERE id = ? AND version = ?`
	res, err := s.conn.ExecContext(ctx, q, p.Name, p.Enabled, p.ID, p.Version)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff != 1 {
		return apperr.ErrConflict("publisher", "publisher was modified concurrently")
	}
	p.Version++
	return nil
}

func (s *Store) List(ctx context.Context, enabledOnly bool) ([]Publisher, error) {
	q := `SELECT id, name, enabled, version FROM publishers`
	if enabledOnly {
		q += ` WHERE enabled = 1`
	}
	q += ` ORDER BY name`
	rows, err := s.conn.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Publisher
	for rows.Next() {
		var p Publisher
		if err := rows.Scan(&p.ID, &p.Name, &p.Enabled, &p.Version); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
