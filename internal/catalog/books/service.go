package books

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"libreria-backend/internal/platform/apperr"
	"libreria-backend/internal/platform/ids"
)

// Repo is what the service needs from the books table.
type Repo interface {
	FindByID(ctx context.Context, id string) (*Book, error)
	FindByISBN(ctx context.Context, isbn int64) (*Book, error)
	FindByTitle(ctx context.Context, title string) (*Book, error)
	Insert(ctx context.Context, b *Book) error
	Update(ctx context.Context, b *Book) error
	List(ctx context.Context, enabledOnly bool) ([]Book, error)
}

// ReferenceChecker resolves whether an author or publisher id exists.
// Books only ever reference already-resolved ids; creating or renaming
// those entities happens in their own services.
type ReferenceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo       Repo
	authors    ReferenceChecker
	publishers ReferenceChecker
	collator   *collate.Collator
}

func NewService(conn *sql.DB, authors, publishers ReferenceChecker) *Service {
	return newService(NewStore(conn), authors, publishers)
}

func newService(repo Repo, authors, publishers ReferenceChecker) *Service {
	return &Service{
		repo:       repo,
		authors:    authors,
		publishers: publishers,
		collator:   collate.New(language.Spanish),
	}
}

func (s *Service) Create(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validate(ctx, &req); err != nil {
		return nil, err
	}

	if dup, err := s.repo.FindByISBN(ctx, req.ISBN); err != nil {
		return nil, err
	} else if dup != nil {
		return nil, apperr.ErrConflict("book", "the ISBN already belongs to another book")
	}
	if dup, err := s.repo.FindByTitle(ctx, req.Title); err != nil {
		return nil, err
	} else if dup != nil {
		return nil, apperr.ErrConflict("book", "a book with that title already exists")
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, err
	}
	book := &Book{
		ID:              id,
		ISBN:            req.ISBN,
		Title:           req.Title,
		Year:            req.Year,
		TotalCopies:     req.Copies,
		LoanedCopies:    0,
		AvailableCopies: req.Copies,
		Enabled:         true,
		AuthorID:        req.AuthorID,
		PublisherID:     req.PublisherID,
	}
	if err := s.repo.Insert(ctx, book); err != nil {
		return nil, err
	}
	return toResponse(book), nil
}

func (s *Service) Update(ctx context.Context, id string, req CreateBookRequest) (*BookResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validate(ctx, &req); err != nil {
		return nil, err
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if book.ISBN == req.ISBN && book.Title == req.Title && book.Year == req.Year &&
		book.TotalCopies == req.Copies && book.AuthorID == req.AuthorID && book.PublisherID == req.PublisherID {
		return nil, apperr.ErrNoChange("no book field was changed")
	}
	if req.Copies < book.LoanedCopies {
		return nil, apperr.ErrInvalid("total copies cannot drop below the copies currently loaned")
	}
	if dup, err := s.repo.FindByISBN(ctx, req.ISBN); err != nil {
		return nil, err
	} else if dup != nil && dup.ID != book.ID {
		return nil, apperr.ErrConflict("book", "the ISBN already belongs to another book")
	}
	if dup, err := s.repo.FindByTitle(ctx, req.Title); err != nil {
		return nil, err
	} else if dup != nil && dup.ID != book.ID {
		return nil, apperr.ErrConflict("book", "a book with that title already exists")
	}

	book.ISBN = req.ISBN
	book.Title = req.Title
	book.Year = req.Year
	book.TotalCopies = req.Copies
	book.AvailableCopies = req.Copies - book.LoanedCopies
	// Editing a record re-enables it, as the original catalog did.
	book.Enabled = true
	book.AuthorID = req.AuthorID
	book.PublisherID = req.PublisherID

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return toResponse(book), nil
}

func (s *Service) SetEnabled(ctx context.Context, id string, enabled bool) (*BookResponse, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	book.Enabled = enabled
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return toResponse(book), nil
}

func (s *Service) Get(ctx context.Context, id string) (*BookResponse, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(book), nil
}

// List returns books ordered by title under Spanish collation rules.
func (s *Service) List(ctx context.Context, enabledOnly bool) ([]BookResponse, error) {
	list, err := s.repo.List(ctx, enabledOnly)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		return s.collator.CompareString(list[i].Title, list[j].Title) < 0
	})
	out := make([]BookResponse, 0, len(list))
	for i := range list {
		out = append(out, *toResponse(&list[i]))
	}
	return out, nil
}

func (s *Service) validate(ctx context.Context, req *CreateBookRequest) error {
	if req.ISBN <= 0 {
		return apperr.ErrInvalid("isbn must not be empty")
	}
	if req.Title == "" {
		return apperr.ErrInvalid("title must not be empty")
	}
	if req.Year <= 0 || req.Year > time.Now().Year() {
		return apperr.ErrInvalid("publication year is invalid")
	}
	if req.Copies < 1 {
		return apperr.ErrInvalid("a book needs at least one copy")
	}
	if req.AuthorID == "" {
		return apperr.ErrInvalid("author id must not be empty")
	}
	if req.PublisherID == "" {
		return apperr.ErrInvalid("publisher id must not be empty")
	}

	ok, err := s.authors.Exists(ctx, req.AuthorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound("author", "author not found")
	}
	ok, err = s.publishers.Exists(ctx, req.PublisherID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound("publisher", "publisher not found")
	}
	return nil
}
