package customers

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"libreria-backend/internal/platform/apperr"
	"libreria-backend/internal/platform/ids"
)

// Repo is what the service needs from the customers table.
type Repo interface {
	FindByID(ctx context.Context, id string) (*Customer, error)
	FindByDNI(ctx context.Context, dni int64) (*Customer, error)
	Insert(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	List(ctx context.Context, enabledOnly bool) ([]Customer, error)
}

type Service struct {
	repo     Repo
	collator *collate.Collator
}

func NewService(conn *sql.DB) *Service {
	return newService(NewStore(conn))
}

func newService(repo Repo) *Service {
	return &Service{repo: repo, collator: collate.New(language.Spanish)}
}

func (s *Service) Create(ctx context.Context, req CustomerRequest) (*CustomerResponse, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	if dup, err := s.repo.FindByDNI(ctx, req.DNI); err != nil {
		return nil, err
	} else if dup != nil {
		return nil, apperr.ErrConflict("customer", "the DNI already belongs to another customer")
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, err
	}
	customer := &Customer{
		ID:      id,
		DNI:     req.DNI,
		Name:    req.Name,
		Surname: req.Surname,
		Phone:   req.Phone,
		Enabled: true,
	}
	if err := s.repo.Insert(ctx, customer); err != nil {
		return nil, err
	}
	return toResponse(customer), nil
}

func (s *Service) Update(ctx context.Context, id string, req CustomerRequest) (*CustomerResponse, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer.DNI == req.DNI && customer.Name == req.Name &&
		customer.Surname == req.Surname && customer.Phone == req.Phone {
		return nil, apperr.ErrNoChange("no customer field was changed")
	}
	if dup, err := s.repo.FindByDNI(ctx, req.DNI); err != nil {
		return nil, err
	} else if dup != nil && dup.ID != customer.ID {
		return nil, apperr.ErrConflict("customer", "the DNI already belongs to another customer")
	}

	customer.DNI = req.DNI
	customer.Name = req.Name
	customer.Surname = req.Surname
	customer.Phone = req.Phone

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toResponse(customer), nil
}

func (s *Service) SetEnabled(ctx context.Context, id string, enabled bool) (*CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Enabled = enabled
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toResponse(customer), nil
}

func (s *Service) Get(ctx context.Context, id string) (*CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(customer), nil
}

// List returns customers ordered by surname under Spanish collation rules.
func (s *Service) List(ctx context.Context, enabledOnly bool) ([]CustomerResponse, error) {
	list, err := s.repo.List(ctx, enabledOnly)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		return s.collator.CompareString(list[i].Surname, list[j].Surname) < 0
	})
	out := make([]CustomerResponse, 0, len(list))
	for i := range list {
		out = append(out, *toResponse(&list[i]))
	}
	return out, nil
}

func validate(req *CustomerRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.DNI <= 0 {
		return apperr.ErrInvalid("dni must not be empty")
	}
	if req.Name == "" {
		return apperr.ErrInvalid("name must not be empty")
	}
	if req.Surname == "" {
		return apperr.ErrInvalid("surname must not be empty")
	}
	if req.Phone == "" {
		return apperr.ErrInvalid("phone must not be empty")
	}
	return nil
}
