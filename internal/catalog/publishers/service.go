package publishers

import (
	"context"
	"database/sql"
	"strings"

	"libreria-backend/internal/platform/apperr"
	"libreria-backend/internal/platform/ids"
)

// Repo is what the service needs from the publishers table.
type Repo interface {
	FindByID(ctx context.Context, id string) (*Publisher, error)
	FindByName(ctx context.Context, name string) (*Publisher, error)
	Insert(ctx context.Context, p *Publisher) error
	Update(ctx context.Context, p *Publisher) error
	List(ctx context.Context, enabledOnly bool) ([]Publisher, error)
}

type Service struct {
	store Repo
}

func NewService(conn *sql.DB) *Service {
	return &Service{store: NewStore(conn)}
}

func (s *Service) Create(ctx context.Context, name string) (*Publisher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.ErrInvalid("publisher name must not be empty")
	}
	existing, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrConflict("publisher", "a publisher with that name already exists")
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, err
	}
	publisher := &Publisher{ID: id, Name: name, Enabled: true}
	if err := s.store.Insert(ctx, publisher); err != nil {
		return nil, err
	}
	return publisher, nil
}

// ResolveOrCreate returns the publisher with the given name, creating it
// when absent.
func (s *Service) ResolveOrCreate(ctx context.Context, name string) (*Publisher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.ErrInvalid("publisher name must not be empty")
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

func (s *Service) Rename(ctx context.Context, id, name string) (*Publisher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.ErrInvalid("publisher name must not be empty")
	}
	publisher, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if publisher.Name == name {
		return nil, apperr.ErrNoChange("publisher already has that name")
	}
	taken, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, apperr.ErrConflict("publisher", "a publisher with that name already exists")
	}

	publisher.Name = name
	if err := s.store.Update(ctx, publisher); err != nil {
		return nil, err
	}
	return publisher, nil
}

func (s *Service) SetEnabled(ctx context.Context, id string, enabled bool) (*Publisher, error) {
	publisher, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	publisher.Enabled = enabled
	if err := s.store.Update(ctx, publisher); err != nil {
		return nil, err
	}
	return publisher, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Publisher, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, enabledOnly bool) ([]Publisher, error) {
	return s.store.List(ctx, enabledOnly)
}

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
