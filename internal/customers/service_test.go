package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libreria-backend/internal/platform/apperr"
)

type fakeRepo struct {
	rows map[string]Customer
}

func newFakeRepo(list ...Customer) *fakeRepo {
	f := &fakeRepo{rows: make(map[string]Customer)}
	for _, c := range list {
		f.rows[c.ID] = c
	}
	return f
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*Customer, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, apperr.ErrNotFound("customer", "customer not found")
	}
	cp := row
	return &cp, nil
}

func (f *fakeRepo) FindByDNI(_ context.Context, dni int64) (*Customer, error) {
	for _, c := range f.rows {
		if c.DNI == dni {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Insert(_ context.Context, c *Customer) error {
	c.Version = 1
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeRepo) Update(_ context.Context, c *Customer) error {
	row, ok := f.rows[c.ID]
	if !ok {
		return apperr.ErrNotFound("customer", "customer not found")
	}
	if row.Version != c.Version {
		return apperr.ErrConflict("customer", "customer was modified concurrently")
	}
	c.Version++
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeRepo) List(_ context.Context, enabledOnly bool) ([]Customer, error) {
	var out []Customer
	for _, c := range f.rows {
		if enabledOnly && !c.Enabled {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func validRequest() CustomerRequest {
	return CustomerRequest{DNI: 30123456, Name: "Ana", Surname: "García", Phone: "555-0100"}
}

func TestCreateCustomer(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	res, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.True(t, res.Enabled)
	assert.Equal(t, 0, res.ActiveLoans)
	assert.Len(t, repo.rows, 1)
}

func TestCreateCustomer_Validation(t *testing.T) {
	svc := newService(newFakeRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CustomerRequest)
	}{
		{"zero dni", func(r *CustomerRequest) { r.DNI = 0 }},
		{"blank name", func(r *CustomerRequest) { r.Name = "  " }},
		{"blank surname", func(r *CustomerRequest) { r.Surname = "" }},
		{"blank phone", func(r *CustomerRequest) { r.Phone = " " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
		})
	}
}

func TestCreateCustomer_DuplicateDNI(t *testing.T) {
	svc := newService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Name = "Otra"
	_, err = svc.Create(ctx, req)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestUpdateCustomer(t *testing.T) {
	repo := newFakeRepo(Customer{
		ID: "c1", DNI: 30123456, Name: "Ana", Surname: "García",
		Phone: "555-0100", Enabled: true, ActiveLoans: 2, Version: 1,
	})
	svc := newService(repo)

	req := validRequest()
	req.Phone = "555-0199"
	res, err := svc.Update(context.Background(), "c1", req)
	require.NoError(t, err)

	assert.Equal(t, "555-0199", res.Phone)
	// Loan bookkeeping is untouched by profile edits.
	assert.Equal(t, 2, res.ActiveLoans)
}

func TestUpdateCustomer_NoChange(t *testing.T) {
	repo := newFakeRepo(Customer{
		ID: "c1", DNI: 30123456, Name: "Ana", Surname: "García",
		Phone: "555-0100", Enabled: true, Version: 1,
	})
	svc := newService(repo)

	_, err := svc.Update(context.Background(), "c1", validRequest())
	assert.True(t, apperr.IsCode(err, apperr.CodeNoChange))
}

func TestUpdateCustomer_DNITaken(t *testing.T) {
	repo := newFakeRepo(
		Customer{ID: "c1", DNI: 30123456, Name: "Ana", Surname: "García", Phone: "555-0100", Enabled: true, Version: 1},
		Customer{ID: "c2", DNI: 40123456, Name: "Luis", Surname: "Borges", Phone: "555-0200", Enabled: true, Version: 1},
	)
	svc := newService(repo)

	req := validRequest()
	req.DNI = 40123456
	_, err := svc.Update(context.Background(), "c1", req)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestListCustomers_SurnameOrder(t *testing.T) {
	repo := newFakeRepo(
		Customer{ID: "c1", DNI: 1, Surname: "Núñez", Name: "A", Phone: "1", Enabled: true, Version: 1},
		Customer{ID: "c2", DNI: 2, Surname: "Navarro", Name: "B", Phone: "2", Enabled: true, Version: 1},
		Customer{ID: "c3", DNI: 3, Surname: "Zárate", Name: "C", Phone: "3", Enabled: false, Version: 1},
	)
	svc := newService(repo)

	all, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Navarro", all[0].Surname)
	assert.Equal(t, "Núñez", all[1].Surname)

	enabled, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, enabled, 2)
}
