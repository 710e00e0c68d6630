package customers

type CustomerRequest struct {
	DNI     int64  `json:"dni" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

type CustomerResponse struct {
	ID          string `json:"id"`
	DNI         int64  `json:"dni"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Phone       string `json:"phone"`
	Enabled     bool   `json:"enabled"`
	ActiveLoans int    `json:"active_loans"`
}

func toResponse(c *Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		DNI:         c.DNI,
		Name:        c.Name,
		Surname:     c.Surname,
		Phone:       c.Phone,
		Enabled:     c.Enabled,
		ActiveLoans: c.ActiveLoans,
	}
}
