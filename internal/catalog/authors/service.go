package authors

import (
	"context"
	"database/sql"
	"strings"

	"libreria-backend/internal/platform/apperr"
	"libreria-backend/internal/platform/ids"
)

// Repo is what the service needs from the authors table.
type Repo interface {
	FindByID(ctx context.Context, id string) (*Author, error)
	FindByName(ctx context.Context, name string) (*Author, error)
	Insert(ctx context.Context, a *Author) error
	Update(ctx context.Context, a *Author) error
	List(ctx context.Context, enabledOnly bool) ([]Author, error)
}

type Service struct {
	store Repo
}

func NewService(conn *sql.DB) *Service {
	return &Service{store: NewStore(conn)}
}

func (s *Service) Create(ctx context.Context, name string) (*Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.ErrInvalid("author name must not be empty")
	}
	existing, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrConflict("author", "an author with that name already exists")
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, err
	}
	author := &Author{ID: id, Name: name, Enabled: true}
	if err := s.store.Insert(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// ResolveOrCreate returns the author with the given name, creating it
// when absent. Callers reference the returned id; nothing here is ever
// upserted as a side effect of saving some other entity.
func (s *Service) ResolveOrCreate(ctx context.Context, name string) (*Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.ErrInvalid("author name must not be empty")
	}
	existing, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return s.Create(ctx, name)
}

func (s *Service) Rename(ctx context.Context, id, name string) (*Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.ErrInvalid("author name must not be empty")
	}
	author, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if author.Name == name {
		return nil, apperr.ErrNoChange("author already has that name")
	}
	taken, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, apperr.ErrConflict("author", "an author with that name already exists")
	}

	author.Name = name
	if err := s.store.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *Service) SetEnabled(ctx context.Context, id string, enabled bool) (*Author, error) {
	author, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	author.Enabled = enabled
	if err := s.store.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Author, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, enabledOnly bool) ([]Author, error) {
	return s.store.List(ctx, enabledOnly)
}

// Exists backs the catalog's reference checks.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.store.FindByID(ctx, id)
	if apperr.IsCode(err, apperr.CodeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
