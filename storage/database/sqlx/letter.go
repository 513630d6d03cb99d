package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/letter"
)

type templateRow struct {
	ID          string          `db:"id"`
	Slug        string          `db:"slug"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Content     string          `db:"content"`
	Variables   json.RawMessage `db:"variables"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (row templateRow) model() (letter.Template, error) {
	tmpl := letter.Template{
		ID:          row.ID,
		Slug:        row.Slug,
		Name:        row.Name,
		Description: row.Description,
		Content:     row.Content,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if len(row.Variables) > 0 {
		if err := json.Unmarshal(row.Variables, &tmpl.Variables); err != nil {
			return letter.Template{}, errors.Wrap(err, "decoding template variables")
		}
	}
	return tmpl, nil
}

type letterRow struct {
	ID             string          `db:"id"`
	TemplateID     string          `db:"template_id"`
	AuthorID       string          `db:"author_id"`
	Subject        string          `db:"subject"`
	RecipientEmail string          `db:"recipient_email"`
	Values         json.RawMessage `db:"values"`
	Body           string          `db:"body"`
	SentAt         sql.NullTime    `db:"sent_at"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (row letterRow) model() (letter.Letter, error) {
	ltr := letter.Letter{
		ID:             row.ID,
		TemplateID:     row.TemplateID,
		AuthorID:       row.AuthorID,
		Subject:        row.Subject,
		RecipientEmail: row.RecipientEmail,
		Body:           row.Body,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.SentAt.Valid {
		ltr.SentAt = row.SentAt.Time
	}
	if len(row.Values) > 0 {
		if err := json.Unmarshal(row.Values, &ltr.Values); err != nil {
			return letter.Letter{}, errors.Wrap(err, "decoding letter values")
		}
	}
	return ltr, nil
}

type letterRepository struct {
	db *sqlx.DB
}

var _ letter.Repository = (*letterRepository)(nil) // interface compliance check

func NewLetterRepository(db *sqlx.DB) letter.Repository {
	return &letterRepository{db: db}
}

func (repo *letterRepository) CheckTemplateUniqueness(ctx context.Context, slug string, excludedTemplates ...letter.Template) error {
	excludedIDs := make([]string, 0, len(excludedTemplates))
	for _, tmpl := range excludedTemplates {
		excludedIDs = append(excludedIDs, tmpl.ID)
	}

	var taken string
	query := `SELECT slug FROM letter_template WHERE slug = $1 AND id <> ALL($2) LIMIT 1`
	err := repo.db.GetContext(ctx, &taken, query, slug, pq.Array(excludedIDs))
	if err == nil {
		return letter.ErrTemplateExists
	} else if err != sql.ErrNoRows {
		return errors.Wrap(err, "checking template uniqueness")
	}
	return nil
}

func (repo *letterRepository) CreateTemplate(ctx context.Context, tmpl letter.Template) (letter.Template, error) {
	tmpl.ID = uuid.NewString()
	vars, err := json.Marshal(tmpl.Variables)
	if err != nil {
		return letter.Template{}, errors.Wrap(err, "encoding template variables")
	}

	query := `
		INSERT INTO letter_template (id, slug, name, description, content, variables, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = repo.db.ExecContext(
		ctx, query,
		tmpl.ID, tmpl.Slug, tmpl.Name, tmpl.Description, tmpl.Content, vars, tmpl.CreatedAt, tmpl.UpdatedAt,
	)
	if err != nil {
		return letter.Template{}, errors.Wrap(err, "creating template")
	}
	return tmpl, nil
}

func (repo *letterRepository) QueryTemplates(ctx context.Context, filter *letter.TemplateQueryFilter, ordering []core.DBOrdering) ([]letter.Template, error) {
	query := `SELECT * FROM letter_template WHERE true`
	var args []interface{}

	if filter != nil && filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += " AND (name ILIKE $1 OR description ILIKE $1)"
	}
	query += orderBy(ordering, "name ASC", "name", "created_at", "updated_at")

	var rows []templateRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying templates")
	}

	tmpls := make([]letter.Template, 0, len(rows))
	for _, row := range rows {
		tmpl, err := row.model()
		if err != nil {
			return nil, err
		}
		tmpls = append(tmpls, tmpl)
	}
	return tmpls, nil
}

func (repo *letterRepository) GetTemplateByID(ctx context.Context, id string) (letter.Template, error) {
	return repo.getTemplate(ctx, `SELECT * FROM letter_template WHERE id = $1`, id)
}

func (repo *letterRepository) GetTemplateBySlug(ctx context.Context, slug string) (letter.Template, error) {
	return repo.getTemplate(ctx, `SELECT * FROM letter_template WHERE slug = $1`, slug)
}

func (repo *letterRepository) getTemplate(ctx context.Context, query string, args ...interface{}) (letter.Template, error) {
	var row templateRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return letter.Template{}, letter.ErrTemplateNotFound
		}
		return letter.Template{}, errors.Wrap(err, "getting template")
	}
	return row.model()
}

func (repo *letterRepository) UpdateTemplate(ctx context.Context, tmpl letter.Template) (letter.Template, error) {
	vars, err := json.Marshal(tmpl.Variables)
	if err != nil {
		return letter.Template{}, errors.Wrap(err, "encoding template variables")
	}

	query := `
		UPDATE letter_template
		SET slug = $2, name = $3, description = $4, content = $5, variables = $6, updated_at = $7
		WHERE id = $1`
	res, err := repo.db.ExecContext(
		ctx, query,
		tmpl.ID, tmpl.Slug, tmpl.Name, tmpl.Description, tmpl.Content, vars, tmpl.UpdatedAt,
	)
	if err != nil {
		return letter.Template{}, errors.Wrap(err, "updating template")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return letter.Template{}, letter.ErrTemplateNotFound
	}
	return repo.GetTemplateByID(ctx, tmpl.ID)
}

func (repo *letterRepository) DeleteTemplatesByID(ctx context.Context, ids ...string) error {
	query := `DELETE FROM letter_template WHERE id = ANY($1)`
	if _, err := repo.db.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting templates")
	}
	return nil
}

func (repo *letterRepository) CreateLetter(ctx context.Context, ltr letter.Letter) (letter.Letter, error) {
	ltr.ID = uuid.NewString()
	vals, err := json.Marshal(ltr.Values)
	if err != nil {
		return letter.Letter{}, errors.Wrap(err, "encoding letter values")
	}

	query := `
		INSERT INTO letter (id, template_id, author_id, subject, recipient_email, "values", body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = repo.db.ExecContext(
		ctx, query,
		ltr.ID, ltr.TemplateID, ltr.AuthorID, ltr.Subject, ltr.RecipientEmail, vals, ltr.Body, ltr.CreatedAt, ltr.UpdatedAt,
	)
	if err != nil {
		return letter.Letter{}, errors.Wrap(err, "creating letter")
	}
	return ltr, nil
}

func (repo *letterRepository) QueryLetters(ctx context.Context, filter *letter.LetterQueryFilter, ordering []core.DBOrdering) ([]letter.Letter, error) {
	query := `SELECT * FROM letter WHERE true`
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter != nil {
		if filter.AuthorID != "" {
			query += " AND author_id = " + arg(filter.AuthorID)
		}
		if filter.TemplateID != "" {
			query += " AND template_id = " + arg(filter.TemplateID)
		}
		if filter.Sent != nil {
			if *filter.Sent {
				query += " AND sent_at IS NOT NULL"
			} else {
				query += " AND sent_at IS NULL"
			}
		}
	}
	query += orderBy(ordering, "created_at DESC", "created_at", "updated_at", "sent_at")

	var rows []letterRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying letters")
	}

	ltrs := make([]letter.Letter, 0, len(rows))
	for _, row := range rows {
		ltr, err := row.model()
		if err != nil {
			return nil, err
		}
		ltrs = append(ltrs, ltr)
	}
	return ltrs, nil
}

func (repo *letterRepository) GetLetterByID(ctx context.Context, id string) (letter.Letter, error) {
	var row letterRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM letter WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return letter.Letter{}, letter.ErrLetterNotFound
		}
		return letter.Letter{}, errors.Wrap(err, "getting letter")
	}
	return row.model()
}

func (repo *letterRepository) SetLetterSent(ctx context.Context, ltr letter.Letter) (letter.Letter, error) {
	query := `UPDATE letter SET sent_at = $2, updated_at = $3 WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, ltr.ID, ltr.SentAt, ltr.UpdatedAt)
	if err != nil {
		return letter.Letter{}, errors.Wrap(err, "marking letter sent")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return letter.Letter{}, letter.ErrLetterNotFound
	}
	return repo.GetLetterByID(ctx, ltr.ID)
}

func (repo *letterRepository) DeleteLettersByID(ctx context.Context, ids ...string) error {
	query := `DELETE FROM letter WHERE id = ANY($1)`
	if _, err := repo.db.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting letters")
	}
	return nil
}
