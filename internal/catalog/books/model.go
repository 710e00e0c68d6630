package books

// Book is one row of the books table. The three copy counters always
// satisfy AvailableCopies + LoanedCopies == TotalCopies; the catalog owns
// every field, the lending core may only move the two loan counters.
type Book struct {
	ID              string
	ISBN            int64
	Title           string
	Year            int
	TotalCopies     int
	LoanedCopies    int
	AvailableCopies int
	Enabled         bool
	AuthorID        string
	PublisherID     string
	Version         int64
}
