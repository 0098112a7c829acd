// internal/app/store/admissions/admissionstore.go
package admissionstore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

const Collection = "admissions"

type Store struct {
	*crud.Repository[models.Admission]
}

func New(ds docstore.Store) *Store {
	return &Store{crud.New(ds, crud.Schema[models.Admission]{
		Collection: Collection,
		Sort:       []docstore.Sort{docstore.Desc("createdAt")},
		Defaults: func(a *models.Admission) {
			if a.Status == "" {
				a.Status = models.AdmissionPending
			}
		},
		Prepare: func(a *models.Admission) error {
			a.StudentName = normalize.Name(a.StudentName)
			a.GuardianName = normalize.Name(a.GuardianName)
			a.GuardianEmail = normalize.Email(a.GuardianEmail)
			a.GuardianPhone = strings.TrimSpace(a.GuardianPhone)
			a.Gender = strings.ToLower(strings.TrimSpace(a.Gender))
			a.Status = strings.ToLower(strings.TrimSpace(a.Status))
			return nil
		},
	})}
}

// Create stores an application. New applications always start pending,
// whatever status the caller sent.
func (s *Store) Create(ctx context.Context, a models.Admission, creatorEmail string) (models.Admission, error) {
	a.Status = models.AdmissionPending
	return s.Repository.Create(ctx, a, creatorEmail)
}

// Submit stores an application from the public form. Admin notes cannot be
// set this way.
func (s *Store) Submit(ctx context.Context, a models.Admission) (models.Admission, error) {
	a.Notes = ""
	return s.Create(ctx, a, "")
}

// ByStatus returns applications with status, newest first.
func (s *Store) ByStatus(ctx context.Context, status string) ([]models.Admission, error) {
	return s.Find(ctx, docstore.Query{Filters: []docstore.Filter{docstore.Where("status", docstore.Eq, status)}})
}

// SetStatus moves an application to status.
func (s *Store) SetStatus(ctx context.Context, id, status, updaterEmail string) (models.Admission, error) {
	raw, _ := json.Marshal(status)
	return s.Update(ctx, id, crud.Patch{"status": raw}, updaterEmail)
}
