package lending

import (
	"context"
	"database/sql"
	"time"

	"libreria-backend/internal/catalog/books"
	"libreria-backend/internal/customers"
	"libreria-backend/internal/platform/apperr"
	"libreria-backend/internal/platform/db"
	"libreria-backend/internal/platform/ids"
)

// ===== Seams =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	return ids.NewULID()
}

// ===== Collaborators =====

// The lifecycle manager never writes catalog-owned fields: the book and
// customer stores expose counter-only saves.

type BookStore interface {
	FindByID(ctx context.Context, id string) (*books.Book, error)
	SaveCounters(ctx context.Context, b *books.Book) error
}

type CustomerStore interface {
	FindByID(ctx context.Context, id string) (*customers.Customer, error)
	SaveLoanCount(ctx context.Context, c *customers.Customer) error
}

type LoanStore interface {
	FindByID(ctx context.Context, id string) (*Loan, error)
	Insert(ctx context.Context, l *Loan) error
	Update(ctx context.Context, l *Loan) error
	List(ctx context.Context, f LoanFilter) ([]Loan, error)
}

// ===== Service =====

// stores bundles everything a lifecycle operation touches. In production
// all three are bound to the same transaction.
type stores struct {
	books     BookStore
	customers CustomerStore
	loans     LoanStore
}

type runner func(ctx context.Context, fn func(st stores) error) error

// Service drives the loan lifecycle: issue, modify, return, reactivate.
// Every operation reads current state, validates all preconditions, and
// only then mutates, inside one transaction, so a failure leaves book,
// customer and loan exactly as they were.
type Service struct {
	run    runner
	view   runner
	ledger Ledger
	clock  Clock
	id     IDGen
}

func NewService(conn *sql.DB) *Service {
	svc := &Service{clock: realClock{}, id: ulidGen{}}
	svc.run = func(ctx context.Context, fn func(st stores) error) error {
		return db.RunInTx(ctx, conn, nil, func(ctx context.Context, tx db.DBTX) error {
			return fn(txStores(tx))
		})
	}
	svc.view = func(ctx context.Context, fn func(st stores) error) error {
		return db.ReadOnly(ctx, conn, func(ctx context.Context, tx db.DBTX) error {
			return fn(txStores(tx))
		})
	}
	return svc
}

func txStores(tx db.DBTX) stores {
	return stores{
		books:     books.NewStore(tx),
		customers: customers.NewStore(tx),
		loans:     NewStore(tx),
	}
}

// newService binds every operation directly to the given stores, with no
// transaction around them.
func newService(bs BookStore, cs CustomerStore, ls LoanStore) *Service {
	direct := func(_ context.Context, fn func(st stores) error) error {
		return fn(stores{books: bs, customers: cs, loans: ls})
	}
	return &Service{run: direct, view: direct, clock: realClock{}, id: ulidGen{}}
}

// Issue lends one copy of a book to a customer and opens a new loan.
func (s *Service) Issue(ctx context.Context, req IssueLoanRequest) (*LoanResponse, error) {
	var out *LoanResponse
	err := s.run(ctx, func(st stores) error {
		book, err := st.books.FindByID(ctx, req.BookID)
		if err != nil {
			return err
		}
		customer, err := st.customers.FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if !book.Enabled {
			return apperr.ErrConflict("book", "book is disabled and cannot be loaned")
		}
		if !customer.Enabled {
			return apperr.ErrConflict("customer", "customer is disabled and cannot receive loans")
		}

		id, err := s.id.New()
		if err != nil {
			return err
		}

		if err := s.ledger.ReserveCopy(book); err != nil {
			return err
		}
		customer.ActiveLoans++

		if err := st.books.SaveCounters(ctx, book); err != nil {
			return err
		}
		if err := st.customers.SaveLoanCount(ctx, customer); err != nil {
			return err
		}

		loan := &Loan{
			ID:           id,
			IssueDate:    s.clock.Now(),
			RecordStatus: RecordActive,
			BookID:       book.ID,
			CustomerID:   customer.ID,
		}
		if err := st.loans.Insert(ctx, loan); err != nil {
			return err
		}
		out = toResponse(loan)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Modify re-points a loan at a different book and/or customer. While the
// loan is out the counters follow it; once returned only the references
// move, since the loan is not holding a copy.
func (s *Service) Modify(ctx context.Context, loanID string, req ModifyLoanRequest) (*LoanResponse, error) {
	var out *LoanResponse
	err := s.run(ctx, func(st stores) error {
		loan, err := st.loans.FindByID(ctx, loanID)
		if err != nil {
			return err
		}
		newBook, err := st.books.FindByID(ctx, req.BookID)
		if err != nil {
			return err
		}
		newCustomer, err := st.customers.FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}

		sameBook := newBook.ID == loan.BookID
		sameCustomer := newCustomer.ID == loan.CustomerID
		if sameBook && sameCustomer {
			return apperr.ErrNoChange("loan already references that book and customer")
		}

		var dirtyBooks []*books.Book
		var dirtyCustomers []*customers.Customer

		if loan.State() == StateOut {
			if !sameBook {
				oldBook, err := st.books.FindByID(ctx, loan.BookID)
				if err != nil {
					return err
				}
				// Stock check on the target book before anything moves.
				if newBook.AvailableCopies < 1 {
					return apperr.ErrOutOfStock("no copies of the new book left to lend")
				}
				if err := s.ledger.ReleaseCopy(oldBook); err != nil {
					return err
				}
				if err := s.ledger.ReserveCopy(newBook); err != nil {
					return err
				}
				dirtyBooks = append(dirtyBooks, oldBook, newBook)
			}
			if !sameCustomer {
				oldCustomer, err := st.customers.FindByID(ctx, loan.CustomerID)
				if err != nil {
					return err
				}
				if oldCustomer.ActiveLoans <= 0 {
					return apperr.ErrInternal("customer " + oldCustomer.ID + " has no active loans to release")
				}
				oldCustomer.ActiveLoans--
				newCustomer.ActiveLoans++
				dirtyCustomers = append(dirtyCustomers, oldCustomer, newCustomer)
			}
		}

		loan.BookID = newBook.ID
		loan.CustomerID = newCustomer.ID

		for _, b := range dirtyBooks {
			if err := st.books.SaveCounters(ctx, b); err != nil {
				return err
			}
		}
		for _, c := range dirtyCustomers {
			if err := st.customers.SaveLoanCount(ctx, c); err != nil {
				return err
			}
		}
		if err := st.loans.Update(ctx, loan); err != nil {
			return err
		}
		out = toResponse(loan)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Retire marks an out loan as returned and puts the copy back.
func (s *Service) Retire(ctx context.Context, loanID string) (*LoanResponse, error) {
	var out *LoanResponse
	err := s.run(ctx, func(st stores) error {
		loan, err := st.loans.FindByID(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.State() == StateReturned {
			return apperr.ErrInvalidTransition("loan is already returned")
		}

		book, err := st.books.FindByID(ctx, loan.BookID)
		if err != nil {
			return err
		}
		customer, err := st.customers.FindByID(ctx, loan.CustomerID)
		if err != nil {
			return err
		}
		if customer.ActiveLoans <= 0 {
			return apperr.ErrInternal("customer " + customer.ID + " has no active loans to release")
		}

		if err := s.ledger.ReleaseCopy(book); err != nil {
			return err
		}
		customer.ActiveLoans--
		loan.ReturnDate = sql.NullTime{Time: s.clock.Now(), Valid: true}

		if err := st.books.SaveCounters(ctx, book); err != nil {
			return err
		}
		if err := st.customers.SaveLoanCount(ctx, customer); err != nil {
			return err
		}
		if err := st.loans.Update(ctx, loan); err != nil {
			return err
		}
		out = toResponse(loan)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reactivate puts a returned loan back out, taking a copy again.
func (s *Service) Reactivate(ctx context.Context, loanID string) (*LoanResponse, error) {
	var out *LoanResponse
	err := s.run(ctx, func(st stores) error {
		loan, err := st.loans.FindByID(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.State() == StateOut {
			return apperr.ErrInvalidTransition("loan is still out")
		}

		book, err := st.books.FindByID(ctx, loan.BookID)
		if err != nil {
			return err
		}
		customer, err := st.customers.FindByID(ctx, loan.CustomerID)
		if err != nil {
			return err
		}

		if err := s.ledger.ReserveCopy(book); err != nil {
			return err
		}
		customer.ActiveLoans++
		loan.ReturnDate = sql.NullTime{}

		if err := st.books.SaveCounters(ctx, book); err != nil {
			return err
		}
		if err := st.customers.SaveLoanCount(ctx, customer); err != nil {
			return err
		}
		if err := st.loans.Update(ctx, loan); err != nil {
			return err
		}
		out = toResponse(loan)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetRecordStatus toggles the administrative flag only. No counters move;
// the loan keeps whatever lifecycle state it had.
func (s *Service) SetRecordStatus(ctx context.Context, loanID string, status RecordStatus) (*LoanResponse, error) {
	var out *LoanResponse
	err := s.run(ctx, func(st stores) error {
		loan, err := st.loans.FindByID(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.RecordStatus == status {
			return apperr.ErrNoChange("loan record is already " + string(status))
		}
		loan.RecordStatus = status
		if err := st.loans.Update(ctx, loan); err != nil {
			return err
		}
		out = toResponse(loan)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, loanID string) (*LoanResponse, error) {
	var out *LoanResponse
	err := s.view(ctx, func(st stores) error {
		loan, err := st.loans.FindByID(ctx, loanID)
		if err != nil {
			return err
		}
		out = toResponse(loan)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, f LoanFilter) ([]LoanResponse, error) {
	var out []LoanResponse
	err := s.view(ctx, func(st stores) error {
		loans, err := st.loans.List(ctx, f)
		if err != nil {
			return err
		}
		out = make([]LoanResponse, 0, len(loans))
		for i := range loans {
			out = append(out, *toResponse(&loans[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
