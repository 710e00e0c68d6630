package customers

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

const customerColumns = `id, dni, name, surname, phone, enabled, active_loans, version`

func (s *Store) scanRow(row *sql.Row) (*Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.DNI, &c.Name, &c.Surname, &c.Phone, &c.Enabled, &c.ActiveLoans, &c.Version)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrNotFound("customer", "customer not found")
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	return s.scanRow(s.conn.QueryRowContext(ctx, q, id))
}

// FindByDNI returns nil without error when no customer carries the DNI.
func (s *Store) FindByDNI(ctx context.Context, dni int64) (*Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE dni = ?`
	c, err := s.scanRow(s.conn.QueryRowContext(ctx, q, dni))
	if apperr.IsCode(err, apperr.CodeNotFound) {
		return nil, nil
	}
	return c, err
}

func (s *Store) Insert(ctx context.Context, c *Customer) error {
	const q = `
	INSERT INTO customers (id, dni, name, surname, phone, enabled, active_loans, version)
	VALUES (?, ?, ?, ?, ?, ?, ?, 1)`
	_, err := s.conn.ExecContext(ctx, q, c.ID, c.DNI, c.Name, c.Surname, c.Phone, c.Enabled, c.ActiveLoans)
	if err != nil {
		return err
	}
	c.Version = 1
	return nil
}

func (s *Store) Update(ctx context.Context, c *Customer) error {
	const q = `
	UPDATE customers
	SET dni = ?, name = ?, surname = ?, phone = ?, enabled = ?, active_loans = ?, version = version + 1
	WHERE id = ? AND version = ?`
	res, err := s.conn.ExecContext(ctx, q, c.DNI, c.Name, c.Surname, c.Phone, c.Enabled, c.ActiveLoans, c.ID, c.Version)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff != 1 {
		return apperr.ErrConflict("customer", "customer was modified concurrently")
	}
	c.Version++
	return nil
}

// SaveLoanCount moves only the active-loan counter. This is the single
// write the lending core is allowed to make against a customer row.
func (s *Store) SaveLoanCount(ctx context.Context, c *Customer) error {
	const q = `UPDATE customers SET active_loans = ?, version = version + 1 WHERE id = ? AND version = ?`
	res, err := s.conn.ExecContext(ctx, q, c.ActiveLoans, c.ID, c.Version)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff != 1 {
		return apperr.ErrConflict("customer", "customer was modified concurrently")
	}
	c.Version++
	return nil
}

func (s *Store) List(ctx context.Context, enabledOnly bool) ([]Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers`
	if enabledOnly {
		q += ` WHERE enabled = 1`
	}
	rows, err := s.conn.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.DNI, &c.Name, &c.Surname, &c.Phone, &c.Enabled, &c.ActiveLoans, &c.Version); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
