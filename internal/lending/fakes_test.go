package lending

import (
	"context"
	"fmt"
	"time"

	"libreria-backend/internal/catalog/books"
	"libreria-backend/internal/customers"
	"libreria-backend/internal/platform/apperr"
)

// In-memory stores with the same contract as the MySQL ones: rows are
// copied in and out, and every save is a compare-and-swap on Version.

type fakeBookStore struct {
	rows map[string]books.Book
}

func newFakeBookStore(list ...books.Book) *fakeBookStore {
	f := &fakeBookStore{rows: make(map[string]books.Book)}
	for _, b := range list {
		f.rows[b.ID] = b
	}
	return f
}

func (f *fakeBookStore) FindByID(_ context.Context, id string) (*books.Book, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, apperr.ErrNotFound("book", "book not found")
	}
	cp := row
	return &cp, nil
}

func (f *fakeBookStore) SaveCounters(_ context.Context, b *books.Book) error {
	row, ok := f.rows[b.ID]
	if !ok {
		return apperr.ErrNotFound("book", "book not found")
	}
	if row.Version != b.Version {
		return apperr.ErrConflict("book", "book was modified concurrently")
	}
	row.LoanedCopies = b.LoanedCopies
	row.AvailableCopies = b.AvailableCopies
	row.Version++
	f.rows[b.ID] = row
	b.Version++
	return nil
}

type fakeCustomerStore struct {
	rows map[string]customers.Customer
}

func newFakeCustomerStore(list ...customers.Customer) *fakeCustomerStore {
	f := &fakeCustomerStore{rows: make(map[string]customers.Customer)}
	for _, c := range list {
		f.rows[c.ID] = c
	}
	return f
}

func (f *fakeCustomerStore) FindByID(_ context.Context, id string) (*customers.Customer, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, apperr.ErrNotFound("customer", "customer not found")
	}
	cp := row
	return &cp, nil
}

func (f *fakeCustomerStore) SaveLoanCount(_ context.Context, c *customers.Customer) error {
	row, ok := f.rows[c.ID]
	if !ok {
		return apperr.ErrNotFound("customer", "customer not found")
	}
	if row.Version != c.Version {
		return apperr.ErrConflict("customer", "customer was modified concurrently")
	}
	row.ActiveLoans = c.ActiveLoans
	row.Version++
	f.rows[c.ID] = row
	c.Version++
	return nil
}

type fakeLoanStore struct {
	rows map[string]Loan
}

func newFakeLoanStore(list ...Loan) *fakeLoanStore {
	f := &fakeLoanStore{rows: make(map[string]Loan)}
	for _, l := range list {
		f.rows[l.ID] = l
	}
	return f
}

func (f *fakeLoanStore) FindByID(_ context.Context, id string) (*Loan, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, apperr.ErrNotFound("loan", "loan not found")
	}
	cp := row
	return &cp, nil
}

func (f *fakeLoanStore) Insert(_ context.Context, l *Loan) error {
	l.Version = 1
	f.rows[l.ID] = *l
	return nil
}

func (f *fakeLoanStore) Update(_ context.Context, l *Loan) error {
	row, ok := f.rows[l.ID]
	if !ok {
		return apperr.ErrNotFound("loan", "loan not found")
	}
	if row.Version != l.Version {
		return apperr.ErrConflict("loan", "loan was modified concurrently")
	}
	l.Version++
	f.rows[l.ID] = *l
	return nil
}

func (f *fakeLoanStore) List(_ context.Context, filter LoanFilter) ([]Loan, error) {
	var out []Loan
	for _, l := range f.rows {
		if filter.CustomerID != "" && l.CustomerID != filter.CustomerID {
			continue
		}
		if filter.BookID != "" && l.BookID != filter.BookID {
			continue
		}
		if filter.State != "" && l.State() != filter.State {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// conflictingBookStore simulates a concurrent writer winning the version
// race: every counter save misses its compare-and-swap.
type conflictingBookStore struct {
	*fakeBookStore
}

func (f *conflictingBookStore) SaveCounters(_ context.Context, _ *books.Book) error {
	return apperr.ErrConflict("book", "book was modified concurrently")
}

// ===== Deterministic seams =====

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDs struct{ n int }

func (g *seqIDs) New() (string, error) {
	g.n++
	return fmt.Sprintf("loan-%d", g.n), nil
}
