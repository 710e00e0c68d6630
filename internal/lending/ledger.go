package lending

import (
	"fmt"

	"libreria-backend/internal/catalog/books"
	"libreria-backend/internal/platform/apperr"
)

// Ledger enforces the copy-count invariant on a single book:
// available + loaned == total, both counters >= 0. It mutates only the
// two loan counters and only on success; persisting the book is the
// caller's job.
type Ledger struct{}

// ReserveCopy takes one available copy out of circulation.
func (Ledger) ReserveCopy(b *books.Book) error {
	if b.AvailableCopies <= 0 {
		return apperr.ErrOutOfStock(fmt.Sprintf("no copies of %q left to lend", b.Title))
	}
	b.AvailableCopies--
	b.LoanedCopies++
	return nil
}

// ReleaseCopy puts a loaned copy back. A book with zero loaned copies
// cannot have one returned; that means the counters are corrupted and the
// operation must abort without persisting anything.
func (Ledger) ReleaseCopy(b *books.Book) error {
	if b.LoanedCopies <= 0 {
		return apperr.ErrInternal(fmt.Sprintf("book %s has no loaned copies to release", b.ID))
	}
	b.LoanedCopies--
	b.AvailableCopies++
	return nil
}
