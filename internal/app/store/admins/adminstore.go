// internal/app/store/admins/adminstore.go
package adminstore

import (
	"context"

	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/inputval"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

const Collection = "admins"

var (
	ErrExists   = apperr.Invalid("an admin with this email already exists")
	ErrNotFound = apperr.Missing("admin not found")

	ErrInvalidEmail = apperr.Invalid("a valid email address is required")
)

// Store keeps admin accounts keyed by lowercased email.
type Store struct {
	repo *crud.Repository[models.AdminAccount]
}

func New(ds docstore.Store) *Store {
	return &Store{repo: crud.New(ds, crud.Schema[models.AdminAccount]{
		Collection: Collection,
		Sort:       []docstore.Sort{docstore.Asc("email")},
		Immutable:  []string{"email"},
		Defaults: func(a *models.AdminAccount) {
			if a.Role == "" {
				a.Role = models.RoleAdmin
			}
		},
		Prepare: func(a *models.AdminAccount) error {
			a.Email = normalize.Email(a.Email)
			a.Name = normalize.Name(a.Name)
			a.Role = normalize.Role(a.Role)
			return nil
		},
	})}
}

func notFound(err error) error {
	if apperr.Is(err, apperr.NotFound) {
		return ErrNotFound
	}
	return err
}

// Get returns the account for email, or ErrNotFound.
func (s *Store) Get(ctx context.Context, email string) (models.AdminAccount, error) {
	a, err := s.repo.GetByID(ctx, normalize.Email(email))
	return a, notFound(err)
}

// List returns every account ordered by email.
func (s *Store) List(ctx context.Context) ([]models.AdminAccount, error) {
	return s.repo.GetAll(ctx)
}

// Create adds an account. It fails with ErrExists when the email is taken.
func (s *Store) Create(ctx context.Context, a models.AdminAccount, by string) (models.AdminAccount, error) {
	a.Email = normalize.Email(a.Email)
	if !inputval.IsValidEmail(a.Email) {
		return models.AdminAccount{}, ErrInvalidEmail
	}
	if _, err := s.Get(ctx, a.Email); err == nil {
		return models.AdminAccount{}, ErrExists
	} else if !apperr.Is(err, apperr.NotFound) {
		return models.AdminAccount{}, err
	}
	if a.Active == nil {
		a.Active = models.BoolPtr(true)
	}
	return s.repo.Upsert(ctx, a.Email, a, by)
}

// Update applies a patch of role, active and name.
func (s *Store) Update(ctx context.Context, email string, patch crud.Patch, by string) (models.AdminAccount, error) {
	a, err := s.repo.Update(ctx, normalize.Email(email), patch, by)
	return a, notFound(err)
}

// Delete removes an account.
func (s *Store) Delete(ctx context.Context, email string) error {
	return notFound(s.repo.Delete(ctx, normalize.Email(email)))
}
