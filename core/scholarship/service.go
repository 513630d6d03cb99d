package scholarship

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
)

var (
	// errors
	ErrNotFound = errors.New("scholarship not found")
	ErrExists   = errors.New("a scholarship with this name already exists")
)

type (
	Repository interface {
		CheckScholarshipUniqueness(ctx context.Context, slug string, excludedScholarships ...Scholarship) error
		CreateScholarship(ctx context.Context, sch Scholarship) (Scholarship, error)
		QueryScholarships(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Scholarship, error)
		GetScholarshipByID(ctx context.Context, id string) (Scholarship, error)
		GetScholarshipBySlug(ctx context.Context, slug string) (Scholarship, error)
		UpdateScholarship(ctx context.Context, sch Scholarship, isActive *bool) (Scholarship, error)
		DeleteScholarshipsByID(ctx context.Context, ids ...string) error
	}

	ServiceInterface interface {
		CheckUniqueness(name string, year int, excludedScholarships ...Scholarship) error
		Create(ns NewScholarship) (Scholarship, error)
		Query(filter *QueryFilter, ordering ...core.DBOrdering) ([]Scholarship, error)
		GetByID(id string) (Scholarship, error)
		GetBySlug(slug string) (Scholarship, error)
		Update(id string, us UpdateScholarship) (Scholarship, error)
		Delete(ids ...string) error
		CheckDuplicate(c Candidate) (CheckResult, error)
	}

	service struct {
		repo Repository
		conf *core.Config
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, conf *core.Config) *service {
	return &service{repo: repo, conf: conf}
}

func slugify(name string, year int) string {
	if year > 0 {
		return core.Slugify(name, strconv.Itoa(year))
	}
	return core.Slugify(name)
}

func (svc *service) CheckUniqueness(name string, year int, excludedScholarships ...Scholarship) error {
	if err := svc.repo.CheckScholarshipUniqueness(context.Background(), slugify(name, year), excludedScholarships...); err != nil {
		if err == ErrExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) Create(ns NewScholarship) (Scholarship, error) {
	now := time.Now().UTC()
	sch := Scholarship{
		Slug:      slugify(ns.Name, ns.Year),
		Name:      ns.Name,
		Provider:  ns.Provider,
		Website:   ns.Website,
		Amount:    ns.Amount,
		Year:      ns.Year,
		Deadline:  ns.Deadline,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateScholarship(context.Background(), sch)
}

func (svc *service) Query(filter *QueryFilter, ordering ...core.DBOrdering) ([]Scholarship, error) {
	return svc.repo.QueryScholarships(context.Background(), filter, ordering)
}

func (svc *service) GetByID(id string) (Scholarship, error) {
	return svc.repo.GetScholarshipByID(context.Background(), id)
}

func (svc *service) GetBySlug(slug string) (Scholarship, error) {
	return svc.repo.GetScholarshipBySlug(context.Background(), core.CleanString(slug, true /* lower */))
}

func (svc *service) Update(id string, us UpdateScholarship) (Scholarship, error) {
	sch := Scholarship{
		ID:        id,
		Slug:      slugify(us.Name, us.Year),
		Name:      us.Name,
		Provider:  us.Provider,
		Website:   us.Website,
		Amount:    us.Amount,
		Year:      us.Year,
		Deadline:  us.Deadline,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateScholarship(context.Background(), sch, us.IsActive)
}

func (svc *service) Delete(ids ...string) error {
	return svc.repo.DeleteScholarshipsByID(context.Background(), ids...)
}

// CheckDuplicate compares the candidate against the whole catalog, active or
// not. A stale entry is exactly what the check is meant to surface.
func (svc *service) CheckDuplicate(c Candidate) (CheckResult, error) {
	existing, err := svc.repo.QueryScholarships(context.Background(), nil, nil)
	if err != nil {
		return CheckResult{}, err
	}
	return CheckDuplicate(c, existing), nil
}
