package books

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libreria-backend/internal/platform/apperr"
)

type fakeRepo struct {
	rows map[string]Book
}

func newFakeRepo(list ...Book) *fakeRepo {
	f := &fakeRepo{rows: make(map[string]Book)}
	for _, b := range list {
		f.rows[b.ID] = b
	}
	return f
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*Book, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, apperr.ErrNotFound("book", "book not found")
	}
	cp := row
	return &cp, nil
}

func (f *fakeRepo) FindByISBN(_ context.Context, isbn int64) (*Book, error) {
	for _, b := range f.rows {
		if b.ISBN == isbn {
			cp := b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindByTitle(_ context.Context, title string) (*Book, error) {
	for _, b := range f.rows {
		if b.Title == title {
			cp := b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Insert(_ context.Context, b *Book) error {
	b.Version = 1
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeRepo) Update(_ context.Context, b *Book) error {
	row, ok := f.rows[b.ID]
	if !ok {
		return apperr.ErrNotFound("book", "book not found")
	}
	if row.Version != b.Version {
		return apperr.ErrConflict("book", "book was modified concurrently")
	}
	b.Version++
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeRepo) List(_ context.Context, enabledOnly bool) ([]Book, error) {
	var out []Book
	for _, b := range f.rows {
		if enabledOnly && !b.Enabled {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type allowAll struct{}

func (allowAll) Exists(context.Context, string) (bool, error) { return true, nil }

type allowNone struct{}

func (allowNone) Exists(context.Context, string) (bool, error) { return false, nil }

func validCreate() CreateBookRequest {
	return CreateBookRequest{
		ISBN:        9788437604947,
		Title:       "Rayuela",
		Year:        1963,
		Copies:      3,
		AuthorID:    "a1",
		PublisherID: "p1",
	}
}

func TestCreateBook(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, allowAll{}, allowAll{})

	res, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, 3, res.TotalCopies)
	assert.Equal(t, 3, res.AvailableCopies)
	assert.Equal(t, 0, res.LoanedCopies)
	assert.True(t, res.Enabled)
	assert.Len(t, repo.rows, 1)
}

func TestCreateBook_Validation(t *testing.T) {
	svc := newService(newFakeRepo(), allowAll{}, allowAll{})
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateBookRequest)
	}{
		{"zero isbn", func(r *CreateBookRequest) { r.ISBN = 0 }},
		{"blank title", func(r *CreateBookRequest) { r.Title = "   " }},
		{"future year", func(r *CreateBookRequest) { r.Year = 3000 }},
		{"zero copies", func(r *CreateBookRequest) { r.Copies = 0 }},
		{"no author", func(r *CreateBookRequest) { r.AuthorID = "" }},
		{"no publisher", func(r *CreateBookRequest) { r.PublisherID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
		})
	}
}

func TestCreateBook_UnknownReferences(t *testing.T) {
	svc := newService(newFakeRepo(), allowNone{}, allowAll{})
	_, err := svc.Create(context.Background(), validCreate())
	require.Error(t, err)
	var api *apperr.APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, apperr.CodeNotFound, api.Code)
	assert.Equal(t, "author", api.Entity)

	svc = newService(newFakeRepo(), allowAll{}, allowNone{})
	_, err = svc.Create(context.Background(), validCreate())
	require.ErrorAs(t, err, &api)
	assert.Equal(t, "publisher", api.Entity)
}

func TestCreateBook_Duplicates(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, allowAll{}, allowAll{})
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	// Same ISBN, different title.
	req := validCreate()
	req.Title = "Bestiario"
	_, err = svc.Create(ctx, req)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	// Same title, different ISBN.
	req = validCreate()
	req.ISBN = 9788420406862
	_, err = svc.Create(ctx, req)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	assert.Len(t, repo.rows, 1)
}

func TestUpdateBook(t *testing.T) {
	seed := Book{
		ID: "b1", ISBN: 100, Title: "Rayuela", Year: 1963,
		TotalCopies: 3, LoanedCopies: 2, AvailableCopies: 1,
		Enabled: false, AuthorID: "a1", PublisherID: "p1", Version: 1,
	}
	repo := newFakeRepo(seed)
	svc := newService(repo, allowAll{}, allowAll{})

	req := validCreate()
	req.ISBN = 100
	req.Copies = 5
	res, err := svc.Update(context.Background(), "b1", req)
	require.NoError(t, err)

	assert.Equal(t, 5, res.TotalCopies)
	// Loaned copies never move from here; available absorbs the change.
	assert.Equal(t, 2, res.LoanedCopies)
	assert.Equal(t, 3, res.AvailableCopies)
	assert.True(t, res.Enabled, "an edit re-enables the record")
}

func TestUpdateBook_NoChange(t *testing.T) {
	seed := Book{
		ID: "b1", ISBN: 9788437604947, Title: "Rayuela", Year: 1963,
		TotalCopies: 3, LoanedCopies: 0, AvailableCopies: 3,
		Enabled: true, AuthorID: "a1", PublisherID: "p1", Version: 1,
	}
	svc := newService(newFakeRepo(seed), allowAll{}, allowAll{})

	_, err := svc.Update(context.Background(), "b1", validCreate())
	assert.True(t, apperr.IsCode(err, apperr.CodeNoChange))
}

func TestUpdateBook_TotalBelowLoaned(t *testing.T) {
	seed := Book{
		ID: "b1", ISBN: 9788437604947, Title: "Rayuela", Year: 1963,
		TotalCopies: 3, LoanedCopies: 2, AvailableCopies: 1,
		Enabled: true, AuthorID: "a1", PublisherID: "p1", Version: 1,
	}
	repo := newFakeRepo(seed)
	svc := newService(repo, allowAll{}, allowAll{})

	req := validCreate()
	req.Copies = 1
	_, err := svc.Update(context.Background(), "b1", req)

	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
	assert.Equal(t, 3, repo.rows["b1"].TotalCopies)
}

func TestListBooks_SpanishOrder(t *testing.T) {
	repo := newFakeRepo(
		Book{ID: "b1", ISBN: 1, Title: "Ñoños", Enabled: true, Version: 1},
		Book{ID: "b2", ISBN: 2, Title: "Niebla", Enabled: true, Version: 1},
		Book{ID: "b3", ISBN: 3, Title: "Océano", Enabled: false, Version: 1},
	)
	svc := newService(repo, allowAll{}, allowAll{})

	all, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Under Spanish collation ñ sorts after n.
	assert.Equal(t, "Niebla", all[0].Title)
	assert.Equal(t, "Ñoños", all[1].Title)

	enabled, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, enabled, 2)
}
