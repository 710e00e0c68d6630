package books

type CreateBookRequest struct {
	ISBN        int64  `json:"isbn" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Year        int    `json:"year" binding:"required"`
	Copies      int    `json:"copies" binding:"required"`
	AuthorID    string `json:"author_id" binding:"required"`
	PublisherID string `json:"publisher_id" binding:"required"`
}

type BookResponse struct {
	ID              string `json:"id"`
	ISBN            int64  `json:"isbn"`
	Title           string `json:"title"`
	Year            int    `json:"year"`
	TotalCopies     int    `json:"total_copies"`
	LoanedCopies    int    `json:"loaned_copies"`
	AvailableCopies int    `json:"available_copies"`
	Enabled         bool   `json:"enabled"`
	AuthorID        string `json:"author_id"`
	PublisherID     string `json:"publisher_id"`
}

func toResponse(b *Book) *BookResponse {
	return &BookResponse{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Year:            b.Year,
		TotalCopies:     b.TotalCopies,
		LoanedCopies:    b.LoanedCopies,
		AvailableCopies: b.AvailableCopies,
		Enabled:         b.Enabled,
		AuthorID:        b.AuthorID,
		PublisherID:     b.PublisherID,
	}
}
