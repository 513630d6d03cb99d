package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/university"
)

type universityRepository struct {
	db *universityTable
}

var _ university.Repository = (*universityRepository)(nil) // interface compliance check

func NewUniversityRepository(db *DB) university.Repository {
	return &universityRepository{db: db.university}
}

// query returns universities with their rating aggregates applied.
func (repo *universityRepository) query() []university.University {
	unis := make([]university.University, 0, len(repo.db.table))
	for _, u := range repo.db.table {
		uni := *u
		var sum, count int
		for _, r := range repo.db.ratings {
			if r.UniversityID == uni.ID {
				sum += r.Stars
				count++
			}
		}
		if count > 0 {
			uni.RatingAverage = float64(sum) / float64(count)
			uni.RatingCount = count
		}
		unis = append(unis, uni)
	}
	sort.Slice(unis, func(i, j int) bool { return unis[i].Name < unis[j].Name })
	return unis
}

func (repo *universityRepository) CheckUniversityUniqueness(ctx context.Context, slug string, excludedUniversities ...university.University) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	excludedIDs := make([]string, 0, len(excludedUniversities))
	for _, uni := range excludedUniversities {
		excludedIDs = append(excludedIDs, uni.ID)
	}
	for _, uni := range repo.query() {
		if uni.Slug == slug && !isExcluded(uni.ID, excludedIDs) {
			return university.ErrExists
		}
	}
	return nil
}

func (repo *universityRepository) CreateUniversity(ctx context.Context, uni university.University) (university.University, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	uni.ID = uuid.NewString()
	repo.db.table[uni.ID] = &uni
	return uni, nil
}

func (repo *universityRepository) QueryUniversities(ctx context.Context, filter *university.QueryFilter, ordering []core.DBOrdering) ([]university.University, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	unis := repo.query()
	if filter == nil {
		return unis, nil
	}

	if filter.Search != "" {
		var filtered []university.University
		search := strings.ToLower(filter.Search)
		for _, uni := range unis {
			if strings.Contains(strings.ToLower(uni.Name), search) {
				filtered = append(filtered, uni)
			}
		}
		unis = filtered
	}
	if unis != nil && filter.City != "" {
		var filtered []university.University
		for _, uni := range unis {
			if uni.City == filter.City {
				filtered = append(filtered, uni)
			}
		}
		unis = filtered
	}
	return unis, nil
}

func (repo *universityRepository) GetUniversityByID(ctx context.Context, id string) (university.University, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, uni := range repo.query() {
		if uni.ID == id {
			return uni, nil
		}
	}
	return university.University{}, university.ErrNotFound
}

func (repo *universityRepository) GetUniversityBySlug(ctx context.Context, slug string) (university.University, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, uni := range repo.query() {
		if uni.Slug == slug {
			return uni, nil
		}
	}
	return university.University{}, university.ErrNotFound
}

func (repo *universityRepository) UpdateUniversity(ctx context.Context, uni university.University) (university.University, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[uni.ID]
	if !ok {
		return university.University{}, university.ErrNotFound
	}
	orig.Slug = uni.Slug
	orig.Name = uni.Name
	orig.City = uni.City
	orig.Website = uni.Website
	orig.Established = uni.Established
	orig.UpdatedAt = uni.UpdatedAt
	return *orig, nil
}

func (repo *universityRepository) DeleteUniversitiesByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func (repo *universityRepository) UpsertRating(ctx context.Context, rating university.Rating) (university.Rating, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// replace the student's previous rating if any
	for _, r := range repo.db.ratings {
		if r.UniversityID == rating.UniversityID && r.StudentID == rating.StudentID {
			r.Stars = rating.Stars
			r.Comment = rating.Comment
			r.UpdatedAt = rating.UpdatedAt
			return *r, nil
		}
	}

	rating.ID = uuid.NewString()
	repo.db.ratings[rating.ID] = &rating
	return rating, nil
}

func (repo *universityRepository) QueryRatings(ctx context.Context, universityID string) ([]university.Rating, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	ratings := make([]university.Rating, 0)
	for _, r := range repo.db.ratings {
		if r.UniversityID == universityID {
			ratings = append(ratings, *r)
		}
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].CreatedAt.After(ratings[j].CreatedAt) })
	return ratings, nil
}
