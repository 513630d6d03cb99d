package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/university"
)

type universityRow struct {
	ID            string    `db:"id"`
	Slug          string    `db:"slug"`
	Name          string    `db:"name"`
	City          string    `db:"city"`
	Website       string    `db:"website"`
	Established   int       `db:"established"`
	RatingAverage float64   `db:"rating_average"`
	RatingCount   int       `db:"rating_count"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (row universityRow) model() university.University {
	return university.University{
		ID:            row.ID,
		Slug:          row.Slug,
		Name:          row.Name,
		City:          row.City,
		Website:       row.Website,
		Established:   row.Established,
		RatingAverage: row.RatingAverage,
		RatingCount:   row.RatingCount,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

type ratingRow struct {
	ID           string    `db:"id"`
	UniversityID string    `db:"university_id"`
	StudentID    string    `db:"student_id"`
	Stars        int       `db:"stars"`
	Comment      string    `db:"comment"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (row ratingRow) model() university.Rating {
	return university.Rating(row)
}

// universityQuery joins each university with its rating aggregates.
const universityQuery = `
	SELECT u.*,
	       COALESCE(AVG(r.stars), 0) AS rating_average,
	       COUNT(r.id)               AS rating_count
	FROM university u
	LEFT JOIN university_rating r ON r.university_id = u.id`

type universityRepository struct {
	db *sqlx.DB
}

var _ university.Repository = (*universityRepository)(nil) // interface compliance check

func NewUniversityRepository(db *sqlx.DB) university.Repository {
	return &universityRepository{db: db}
}

func (repo *universityRepository) CheckUniversityUniqueness(ctx context.Context, slug string, excludedUniversities ...university.University) error {
	excludedIDs := make([]string, 0, len(excludedUniversities))
	for _, uni := range excludedUniversities {
		excludedIDs = append(excludedIDs, uni.ID)
	}

	var taken string
	query := `SELECT slug FROM university WHERE slug = $1 AND id <> ALL($2) LIMIT 1`
	err := repo.db.GetContext(ctx, &taken, query, slug, pq.Array(excludedIDs))
	if err == nil {
		return university.ErrExists
	} else if err != sql.ErrNoRows {
		return errors.Wrap(err, "checking university uniqueness")
	}
	return nil
}

func (repo *universityRepository) CreateUniversity(ctx context.Context, uni university.University) (university.University, error) {
	uni.ID = uuid.NewString()
	query := `
		INSERT INTO university (id, slug, name, city, website, established, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.ExecContext(
		ctx, query,
		uni.ID, uni.Slug, uni.Name, uni.City, uni.Website, uni.Established, uni.CreatedAt, uni.UpdatedAt,
	)
	if err != nil {
		return university.University{}, errors.Wrap(err, "creating university")
	}
	return uni, nil
}

func (repo *universityRepository) QueryUniversities(ctx context.Context, filter *university.QueryFilter, ordering []core.DBOrdering) ([]university.University, error) {
	query := universityQuery + ` WHERE true`
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter != nil {
		if filter.Search != "" {
			query += " AND u.name ILIKE " + arg("%"+filter.Search+"%")
		}
		if filter.City != "" {
			query += " AND u.city = " + arg(filter.City)
		}
	}
	query += " GROUP BY u.id" + orderBy(ordering, "u.name ASC", "name", "city", "established", "created_at")

	var rows []universityRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying universities")
	}

	unis := make([]university.University, 0, len(rows))
	for _, row := range rows {
		unis = append(unis, row.model())
	}
	return unis, nil
}

func (repo *universityRepository) GetUniversityByID(ctx context.Context, id string) (university.University, error) {
	return repo.get(ctx, universityQuery+` WHERE u.id = $1 GROUP BY u.id`, id)
}

func (repo *universityRepository) GetUniversityBySlug(ctx context.Context, slug string) (university.University, error) {
	return repo.get(ctx, universityQuery+` WHERE u.slug = $1 GROUP BY u.id`, slug)
}

func (repo *universityRepository) get(ctx context.Context, query string, args ...interface{}) (university.University, error) {
	var row universityRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return university.University{}, university.ErrNotFound
		}
		return university.University{}, errors.Wrap(err, "getting university")
	}
	return row.model(), nil
}

func (repo *universityRepository) UpdateUniversity(ctx context.Context, uni university.University) (university.University, error) {
	query := `
		UPDATE university
		SET slug = $2, name = $3, city = $4, website = $5, established = $6, updated_at = $7
		WHERE id = $1`
	res, err := repo.db.ExecContext(
		ctx, query,
		uni.ID, uni.Slug, uni.Name, uni.City, uni.Website, uni.Established, uni.UpdatedAt,
	)
	if err != nil {
		return university.University{}, errors.Wrap(err, "updating university")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return university.University{}, university.ErrNotFound
	}
	return repo.GetUniversityByID(ctx, uni.ID)
}

func (repo *universityRepository) DeleteUniversitiesByID(ctx context.Context, ids ...string) error {
	query := `DELETE FROM university WHERE id = ANY($1)`
	if _, err := repo.db.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting universities")
	}
	return nil
}

func (repo *universityRepository) UpsertRating(ctx context.Context, rating university.Rating) (university.Rating, error) {
	rating.ID = uuid.NewString()
	query := `
		INSERT INTO university_rating (id, university_id, student_id, stars, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (university_id, student_id)
		DO UPDATE SET stars = EXCLUDED.stars, comment = EXCLUDED.comment, updated_at = EXCLUDED.updated_at
		RETURNING *`
	var row ratingRow
	err := repo.db.GetContext(
		ctx, &row, query,
		rating.ID, rating.UniversityID, rating.StudentID, rating.Stars, rating.Comment,
		rating.CreatedAt, rating.UpdatedAt,
	)
	if err != nil {
		return university.Rating{}, errors.Wrap(err, "saving rating")
	}
	return row.model(), nil
}

func (repo *universityRepository) QueryRatings(ctx context.Context, universityID string) ([]university.Rating, error) {
	var rows []ratingRow
	query := `SELECT * FROM university_rating WHERE university_id = $1 ORDER BY created_at DESC`
	if err := repo.db.SelectContext(ctx, &rows, query, universityID); err != nil {
		return nil, errors.Wrap(err, "querying ratings")
	}

	ratings := make([]university.Rating, 0, len(rows))
	for _, row := range rows {
		ratings = append(ratings, row.model())
	}
	return ratings, nil
}
