package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/scholarship"
)

type scholarshipRepository struct {
	db *scholarshipTable
}

var _ scholarship.Repository = (*scholarshipRepository)(nil) // interface compliance check

func NewScholarshipRepository(db *DB) scholarship.Repository {
	return &scholarshipRepository{db: db.scholarship}
}

func (repo *scholarshipRepository) query() []scholarship.Scholarship {
	schols := make([]scholarship.Scholarship, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		schols = append(schols, *s)
	}
	sort.Slice(schols, func(i, j int) bool { return schols[i].Name < schols[j].Name })
	return schols
}

func (repo *scholarshipRepository) CheckScholarshipUniqueness(ctx context.Context, slug string, excludedScholarships ...scholarship.Scholarship) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	excludedIDs := make([]string, 0, len(excludedScholarships))
	for _, sch := range excludedScholarships {
		excludedIDs = append(excludedIDs, sch.ID)
	}
	for _, sch := range repo.query() {
		if sch.Slug == slug && !isExcluded(sch.ID, excludedIDs) {
			return scholarship.ErrExists
		}
	}
	return nil
}

func (repo *scholarshipRepository) CreateScholarship(ctx context.Context, sch scholarship.Scholarship) (scholarship.Scholarship, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sch.ID = uuid.NewString()
	repo.db.table[sch.ID] = &sch
	return sch, nil
}

func (repo *scholarshipRepository) QueryScholarships(ctx context.Context, filter *scholarship.QueryFilter, ordering []core.DBOrdering) ([]scholarship.Scholarship, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	schols := repo.query()
	if filter == nil {
		return schols, nil
	}

	if filter.Search != "" {
		var filtered []scholarship.Scholarship
		search := strings.ToLower(filter.Search)
		for _, sch := range schols {
			if strings.Contains(strings.ToLower(sch.Name), search) ||
				strings.Contains(strings.ToLower(sch.Provider), search) {
				filtered = append(filtered, sch)
			}
		}
		schols = filtered
	}
	if schols != nil && filter.Provider != "" {
		var filtered []scholarship.Scholarship
		for _, sch := range schols {
			if sch.Provider == filter.Provider {
				filtered = append(filtered, sch)
			}
		}
		schols = filtered
	}
	if schols != nil && filter.Year != 0 {
		var filtered []scholarship.Scholarship
		for _, sch := range schols {
			if sch.Year == filter.Year {
				filtered = append(filtered, sch)
			}
		}
		schols = filtered
	}
	if schols != nil && filter.IsActive != nil {
		var filtered []scholarship.Scholarship
		for _, sch := range schols {
			if sch.IsActive == *filter.IsActive {
				filtered = append(filtered, sch)
			}
		}
		schols = filtered
	}
	return schols, nil
}

func (repo *scholarshipRepository) GetScholarshipByID(ctx context.Context, id string) (scholarship.Scholarship, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sch, ok := repo.db.table[id]; ok {
		return *sch, nil
	}
	return scholarship.Scholarship{}, scholarship.ErrNotFound
}

func (repo *scholarshipRepository) GetScholarshipBySlug(ctx context.Context, slug string) (scholarship.Scholarship, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, sch := range repo.query() {
		if sch.Slug == slug {
			return sch, nil
		}
	}
	return scholarship.Scholarship{}, scholarship.ErrNotFound
}

func (repo *scholarshipRepository) UpdateScholarship(ctx context.Context, sch scholarship.Scholarship, isActive *bool) (scholarship.Scholarship, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[sch.ID]
	if !ok {
		return scholarship.Scholarship{}, scholarship.ErrNotFound
	}
	orig.Slug = sch.Slug
	orig.Name = sch.Name
	orig.Provider = sch.Provider
	orig.Website = sch.Website
	orig.Amount = sch.Amount
	orig.Year = sch.Year
	orig.Deadline = sch.Deadline
	orig.UpdatedAt = sch.UpdatedAt
	if isActive != nil {
		orig.IsActive = *isActive
	}
	return *orig, nil
}

func (repo *scholarshipRepository) DeleteScholarshipsByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
