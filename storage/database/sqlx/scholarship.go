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
	"github.com/Shrest4647/ioe-student-utils-sub001/core/scholarship"
)

type scholarshipRow struct {
	ID        string       `db:"id"`
	Slug      string       `db:"slug"`
	Name      string       `db:"name"`
	Provider  string       `db:"provider"`
	Website   string       `db:"website"`
	Amount    string       `db:"amount"`
	Year      int          `db:"year"`
	Deadline  sql.NullTime `db:"deadline"`
	IsActive  bool         `db:"is_active"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

func (row scholarshipRow) model() scholarship.Scholarship {
	sch := scholarship.Scholarship{
		ID:        row.ID,
		Slug:      row.Slug,
		Name:      row.Name,
		Provider:  row.Provider,
		Website:   row.Website,
		Amount:    row.Amount,
		Year:      row.Year,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Deadline.Valid {
		sch.Deadline = row.Deadline.Time
	}
	return sch
}

type scholarshipRepository struct {
	db *sqlx.DB
}

var _ scholarship.Repository = (*scholarshipRepository)(nil) // interface compliance check

func NewScholarshipRepository(db *sqlx.DB) scholarship.Repository {
	return &scholarshipRepository{db: db}
}

func (repo *scholarshipRepository) CheckScholarshipUniqueness(ctx context.Context, slug string, excludedScholarships ...scholarship.Scholarship) error {
	excludedIDs := make([]string, 0, len(excludedScholarships))
	for _, sch := range excludedScholarships {
		excludedIDs = append(excludedIDs, sch.ID)
	}

	var taken string
	query := `SELECT slug FROM scholarship WHERE slug = $1 AND id <> ALL($2) LIMIT 1`
	err := repo.db.GetContext(ctx, &taken, query, slug, pq.Array(excludedIDs))
	if err == nil {
		return scholarship.ErrExists
	} else if err != sql.ErrNoRows {
		return errors.Wrap(err, "checking scholarship uniqueness")
	}
	return nil
}

func (repo *scholarshipRepository) CreateScholarship(ctx context.Context, sch scholarship.Scholarship) (scholarship.Scholarship, error) {
	sch.ID = uuid.NewString()
	query := `
		INSERT INTO scholarship (id, slug, name, provider, website, amount, year, deadline, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := repo.db.ExecContext(
		ctx, query,
		sch.ID, sch.Slug, sch.Name, sch.Provider, sch.Website, sch.Amount, sch.Year,
		nullTime(sch.Deadline), sch.IsActive, sch.CreatedAt, sch.UpdatedAt,
	)
	if err != nil {
		return scholarship.Scholarship{}, errors.Wrap(err, "creating scholarship")
	}
	return sch, nil
}

func (repo *scholarshipRepository) QueryScholarships(ctx context.Context, filter *scholarship.QueryFilter, ordering []core.DBOrdering) ([]scholarship.Scholarship, error) {
	query := `SELECT * FROM scholarship WHERE true`
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter != nil {
		if filter.Search != "" {
			p := arg("%" + filter.Search + "%")
			query += fmt.Sprintf(" AND (name ILIKE %[1]s OR provider ILIKE %[1]s)", p)
		}
		if filter.Provider != "" {
			query += " AND provider = " + arg(filter.Provider)
		}
		if filter.Year != 0 {
			query += " AND year = " + arg(filter.Year)
		}
		if filter.IsActive != nil {
			query += " AND is_active = " + arg(*filter.IsActive)
		}
	}
	query += orderBy(ordering, "name ASC", "name", "provider", "year", "created_at")

	var rows []scholarshipRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying scholarships")
	}

	schols := make([]scholarship.Scholarship, 0, len(rows))
	for _, row := range rows {
		schols = append(schols, row.model())
	}
	return schols, nil
}

func (repo *scholarshipRepository) GetScholarshipByID(ctx context.Context, id string) (scholarship.Scholarship, error) {
	return repo.get(ctx, `SELECT * FROM scholarship WHERE id = $1`, id)
}

func (repo *scholarshipRepository) GetScholarshipBySlug(ctx context.Context, slug string) (scholarship.Scholarship, error) {
	return repo.get(ctx, `SELECT * FROM scholarship WHERE slug = $1`, slug)
}

func (repo *scholarshipRepository) get(ctx context.Context, query string, args ...interface{}) (scholarship.Scholarship, error) {
	var row scholarshipRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return scholarship.Scholarship{}, scholarship.ErrNotFound
		}
		return scholarship.Scholarship{}, errors.Wrap(err, "getting scholarship")
	}
	return row.model(), nil
}

func (repo *scholarshipRepository) UpdateScholarship(ctx context.Context, sch scholarship.Scholarship, isActive *bool) (scholarship.Scholarship, error) {
	query := `
		UPDATE scholarship
		SET slug = $2, name = $3, provider = $4, website = $5, amount = $6, year = $7, deadline = $8, updated_at = $9`
	args := []interface{}{
		sch.ID, sch.Slug, sch.Name, sch.Provider, sch.Website, sch.Amount, sch.Year,
		nullTime(sch.Deadline), sch.UpdatedAt,
	}
	if isActive != nil {
		args = append(args, *isActive)
		query += fmt.Sprintf(", is_active = $%d", len(args))
	}
	query += " WHERE id = $1"

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return scholarship.Scholarship{}, errors.Wrap(err, "updating scholarship")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return scholarship.Scholarship{}, scholarship.ErrNotFound
	}
	return repo.GetScholarshipByID(ctx, sch.ID)
}

func (repo *scholarshipRepository) DeleteScholarshipsByID(ctx context.Context, ids ...string) error {
	query := `DELETE FROM scholarship WHERE id = ANY($1)`
	if _, err := repo.db.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting scholarships")
	}
	return nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
