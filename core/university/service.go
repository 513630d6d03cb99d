package university

import (
	"context"
	"errors"
	"time"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
)

var (
	// errors
	ErrNotFound = errors.New("university not found")
	ErrExists   = errors.New("a university with this name already exists")
)

type (
	Repository interface {
		CheckUniversityUniqueness(ctx context.Context, slug string, excludedUniversities ...University) error
		CreateUniversity(ctx context.Context, uni University) (University, error)
		// QueryUniversities returns universities with their rating aggregates.
		// QueryFilter.Search does a case-insensitive match on name; City an exact one.
		QueryUniversities(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]University, error)
		GetUniversityByID(ctx context.Context, id string) (University, error)
		GetUniversityBySlug(ctx context.Context, slug string) (University, error)
		UpdateUniversity(ctx context.Context, uni University) (University, error)
		DeleteUniversitiesByID(ctx context.Context, ids ...string) error

		// UpsertRating inserts the student's rating or replaces their previous one.
		UpsertRating(ctx context.Context, rating Rating) (Rating, error)
		QueryRatings(ctx context.Context, universityID string) ([]Rating, error)
	}

	ServiceInterface interface {
		CheckUniqueness(name string, excludedUniversities ...University) error
		Create(nu NewUniversity) (University, error)
		Query(filter *QueryFilter, ordering ...core.DBOrdering) ([]University, error)
		GetByID(id string) (University, error)
		GetBySlug(slug string) (University, error)
		Update(id string, uu UpdateUniversity) (University, error)
		Delete(ids ...string) error
		Rate(universityID, studentID string, nr NewRating) (Rating, error)
		QueryRatings(universityID string) ([]Rating, error)
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

func (svc *service) CheckUniqueness(name string, excludedUniversities ...University) error {
	if err := svc.repo.CheckUniversityUniqueness(context.Background(), core.Slugify(name), excludedUniversities...); err != nil {
		if err == ErrExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) Create(nu NewUniversity) (University, error) {
	now := time.Now().UTC()
	uni := University{
		Slug:        core.Slugify(nu.Name),
		Name:        nu.Name,
		City:        nu.City,
		Website:     nu.Website,
		Established: nu.Established,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateUniversity(context.Background(), uni)
}

func (svc *service) Query(filter *QueryFilter, ordering ...core.DBOrdering) ([]University, error) {
	return svc.repo.QueryUniversities(context.Background(), filter, ordering)
}

func (svc *service) GetByID(id string) (University, error) {
	return svc.repo.GetUniversityByID(context.Background(), id)
}

func (svc *service) GetBySlug(slug string) (University, error) {
	return svc.repo.GetUniversityBySlug(context.Background(), core.CleanString(slug, true /* lower */))
}

func (svc *service) Update(id string, uu UpdateUniversity) (University, error) {
	uni := University{
		ID:          id,
		Slug:        core.Slugify(uu.Name),
		Name:        uu.Name,
		City:        uu.City,
		Website:     uu.Website,
		Established: uu.Established,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateUniversity(context.Background(), uni)
}

func (svc *service) Delete(ids ...string) error {
	return svc.repo.DeleteUniversitiesByID(context.Background(), ids...)
}

func (svc *service) Rate(universityID, studentID string, nr NewRating) (Rating, error) {
	// rating a missing university must 404, not insert an orphan
	uni, err := svc.repo.GetUniversityByID(context.Background(), universityID)
	if err != nil {
		return Rating{}, err
	}

	now := time.Now().UTC()
	rating := Rating{
		UniversityID: uni.ID,
		StudentID:    studentID,
		Stars:        nr.Stars,
		Comment:      nr.Comment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.UpsertRating(context.Background(), rating)
}

func (svc *service) QueryRatings(universityID string) ([]Rating, error) {
	return svc.repo.QueryRatings(context.Background(), universityID)
}
