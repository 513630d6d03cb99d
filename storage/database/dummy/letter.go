package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/letter"
)

type letterRepository struct {
	db *letterTable
}

var _ letter.Repository = (*letterRepository)(nil) // interface compliance check

func NewLetterRepository(db *DB) letter.Repository {
	return &letterRepository{db: db.letter}
}

func (repo *letterRepository) queryTemplates() []letter.Template {
	tmpls := make([]letter.Template, 0, len(repo.db.templates))
	for _, t := range repo.db.templates {
		tmpls = append(tmpls, *t)
	}
	sort.Slice(tmpls, func(i, j int) bool { return tmpls[i].Name < tmpls[j].Name })
	return tmpls
}

func (repo *letterRepository) queryLetters() []letter.Letter {
	ltrs := make([]letter.Letter, 0, len(repo.db.letters))
	for _, l := range repo.db.letters {
		ltrs = append(ltrs, *l)
	}
	sort.Slice(ltrs, func(i, j int) bool { return ltrs[i].CreatedAt.After(ltrs[j].CreatedAt) })
	return ltrs
}

func (repo *letterRepository) CheckTemplateUniqueness(ctx context.Context, slug string, excludedTemplates ...letter.Template) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	excludedIDs := make([]string, 0, len(excludedTemplates))
	for _, tmpl := range excludedTemplates {
		excludedIDs = append(excludedIDs, tmpl.ID)
	}
	for _, tmpl := range repo.queryTemplates() {
		if tmpl.Slug == slug && !isExcluded(tmpl.ID, excludedIDs) {
			return letter.ErrTemplateExists
		}
	}
	return nil
}

func (repo *letterRepository) CreateTemplate(ctx context.Context, tmpl letter.Template) (letter.Template, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	tmpl.ID = uuid.NewString()
	repo.db.templates[tmpl.ID] = &tmpl
	return tmpl, nil
}

func (repo *letterRepository) QueryTemplates(ctx context.Context, filter *letter.TemplateQueryFilter, ordering []core.DBOrdering) ([]letter.Template, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tmpls := repo.queryTemplates()
	if filter == nil || filter.Search == "" {
		return tmpls, nil
	}

	var filtered []letter.Template
	search := strings.ToLower(filter.Search)
	for _, tmpl := range tmpls {
		if strings.Contains(strings.ToLower(tmpl.Name), search) ||
			strings.Contains(strings.ToLower(tmpl.Description), search) {
			filtered = append(filtered, tmpl)
		}
	}
	return filtered, nil
}

func (repo *letterRepository) GetTemplateByID(ctx context.Context, id string) (letter.Template, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tmpl, ok := repo.db.templates[id]; ok {
		return *tmpl, nil
	}
	return letter.Template{}, letter.ErrTemplateNotFound
}

func (repo *letterRepository) GetTemplateBySlug(ctx context.Context, slug string) (letter.Template, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, tmpl := range repo.queryTemplates() {
		if tmpl.Slug == slug {
			return tmpl, nil
		}
	}
	return letter.Template{}, letter.ErrTemplateNotFound
}

func (repo *letterRepository) UpdateTemplate(ctx context.Context, tmpl letter.Template) (letter.Template, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.templates[tmpl.ID]; !ok {
		return letter.Template{}, letter.ErrTemplateNotFound
	}
	repo.db.templates[tmpl.ID] = &tmpl
	return tmpl, nil
}

func (repo *letterRepository) DeleteTemplatesByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.templates, id)
	}
	return nil
}

func (repo *letterRepository) CreateLetter(ctx context.Context, ltr letter.Letter) (letter.Letter, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	ltr.ID = uuid.NewString()
	repo.db.letters[ltr.ID] = &ltr
	return ltr, nil
}

func (repo *letterRepository) QueryLetters(ctx context.Context, filter *letter.LetterQueryFilter, ordering []core.DBOrdering) ([]letter.Letter, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	ltrs := repo.queryLetters()
	if filter == nil {
		return ltrs, nil
	}

	if filter.AuthorID != "" {
		var filtered []letter.Letter
		for _, ltr := range ltrs {
			if ltr.AuthorID == filter.AuthorID {
				filtered = append(filtered, ltr)
			}
		}
		ltrs = filtered
	}
	if ltrs != nil && filter.TemplateID != "" {
		var filtered []letter.Letter
		for _, ltr := range ltrs {
			if ltr.TemplateID == filter.TemplateID {
				filtered = append(filtered, ltr)
			}
		}
		ltrs = filtered
	}
	if ltrs != nil && filter.Sent != nil {
		var filtered []letter.Letter
		for _, ltr := range ltrs {
			if ltr.IsSent() == *filter.Sent {
				filtered = append(filtered, ltr)
			}
		}
		ltrs = filtered
	}
	return ltrs, nil
}

func (repo *letterRepository) GetLetterByID(ctx context.Context, id string) (letter.Letter, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ltr, ok := repo.db.letters[id]; ok {
		return *ltr, nil
	}
	return letter.Letter{}, letter.ErrLetterNotFound
}

func (repo *letterRepository) SetLetterSent(ctx context.Context, ltr letter.Letter) (letter.Letter, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.letters[ltr.ID]
	if !ok {
		return letter.Letter{}, letter.ErrLetterNotFound
	}
	orig.SentAt = ltr.SentAt
	orig.UpdatedAt = ltr.UpdatedAt
	return *orig, nil
}

func (repo *letterRepository) DeleteLettersByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.letters, id)
	}
	return nil
}
