package customers

// Customer is one row of the customers table. ActiveLoans mirrors the
// number of this customer's loans whose return date is unset; only the
// lending core moves it.
type Customer struct {
	ID          string
	DNI         int64
	Name        string
	Surname     string
	Phone       string
	Enabled     bool
	ActiveLoans int
	Version     int64
}
