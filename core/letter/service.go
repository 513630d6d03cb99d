package letter

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
)

var (
	// errors
	ErrTemplateNotFound = errors.New("letter template not found")
	ErrTemplateExists   = errors.New("a template with this name already exists")
	ErrLetterNotFound   = errors.New("letter not found")
	ErrAlreadySent      = errors.New("letter has already been sent")
	ErrNoRecipient      = errors.New("letter has no recipient email")
)

type (
	Repository interface {
		CheckTemplateUniqueness(ctx context.Context, slug string, excludedTemplates ...Template) error
		CreateTemplate(ctx context.Context, tmpl Template) (Template, error)
		QueryTemplates(ctx context.Context, filter *TemplateQueryFilter, ordering []core.DBOrdering) ([]Template, error)
		GetTemplateByID(ctx context.Context, id string) (Template, error)
		GetTemplateBySlug(ctx context.Context, slug string) (Template, error)
		UpdateTemplate(ctx context.Context, tmpl Template) (Template, error)
		DeleteTemplatesByID(ctx context.Context, ids ...string) error

		CreateLetter(ctx context.Context, ltr Letter) (Letter, error)
		QueryLetters(ctx context.Context, filter *LetterQueryFilter, ordering []core.DBOrdering) ([]Letter, error)
		GetLetterByID(ctx context.Context, id string) (Letter, error)
		SetLetterSent(ctx context.Context, ltr Letter) (Letter, error)
		DeleteLettersByID(ctx context.Context, ids ...string) error
	}

	ServiceInterface interface {
		CheckTemplateUniqueness(name string, excludedTemplates ...Template) error
		CreateTemplate(nt NewTemplate) (Template, error)
		QueryTemplates(filter *TemplateQueryFilter, ordering ...core.DBOrdering) ([]Template, error)
		GetTemplateByID(id string) (Template, error)
		GetTemplateBySlug(slug string) (Template, error)
		UpdateTemplate(id string, up UpdateTemplate) (Template, error)
		DeleteTemplates(ids ...string) error

		PreviewTemplate(id string, values map[string]string, usr UserInfo) (Preview, error)
		CreateLetter(authorID string, usr UserInfo, nl NewLetter) (Letter, error)
		QueryLetters(filter *LetterQueryFilter, ordering ...core.DBOrdering) ([]Letter, error)
		GetLetterByID(id string) (Letter, error)
		DeleteLetters(ids ...string) error
		SendLetter(id string) (Letter, error)
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *service) CheckTemplateUniqueness(name string, excludedTemplates ...Template) error {
	slug := core.Slugify(name)
	if err := svc.repo.CheckTemplateUniqueness(context.Background(), slug, excludedTemplates...); err != nil {
		if err == ErrTemplateExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) CreateTemplate(nt NewTemplate) (Template, error) {
	now := time.Now().UTC()
	tmpl := Template{
		Slug:        core.Slugify(nt.Name),
		Name:        nt.Name,
		Description: nt.Description,
		Content:     nt.Content,
		Variables:   nt.Variables,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateTemplate(context.Background(), tmpl)
}

func (svc *service) QueryTemplates(filter *TemplateQueryFilter, ordering ...core.DBOrdering) ([]Template, error) {
	return svc.repo.QueryTemplates(context.Background(), filter, ordering)
}

func (svc *service) GetTemplateByID(id string) (Template, error) {
	return svc.repo.GetTemplateByID(context.Background(), id)
}

func (svc *service) GetTemplateBySlug(slug string) (Template, error) {
	return svc.repo.GetTemplateBySlug(context.Background(), core.CleanString(slug, true /* lower */))
}

func (svc *service) UpdateTemplate(id string, up UpdateTemplate) (Template, error) {
	tmpl := Template{
		ID:          id,
		Slug:        core.Slugify(up.Name),
		Name:        up.Name,
		Description: up.Description,
		Content:     up.Content,
		Variables:   up.Variables,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateTemplate(context.Background(), tmpl)
}

func (svc *service) DeleteTemplates(ids ...string) error {
	return svc.repo.DeleteTemplatesByID(context.Background(), ids...)
}

// buildContext merges the template's defaults with caller-supplied values;
// caller values win.
func (svc *service) buildContext(tmpl Template, values map[string]string, usr UserInfo) Context {
	ctx := BuildDefaultContext(tmpl.Variables, usr)
	for name, val := range values {
		if core.CleanString(val) != "" {
			ctx.Values[name] = val
		}
	}
	return ctx
}

// PreviewTemplate renders a template against the supplied values without
// persisting anything. Unresolved placeholders stay visible in the body and
// missing required labels are returned as data, so the editor can show a
// partially filled letter.
func (svc *service) PreviewTemplate(id string, values map[string]string, usr UserInfo) (Preview, error) {
	tmpl, err := svc.repo.GetTemplateByID(context.Background(), id)
	if err != nil {
		return Preview{}, err
	}

	ctx := svc.buildContext(tmpl, values, usr)
	return Preview{
		Body:          Substitute(tmpl.Content, ctx),
		MissingLabels: ValidateRequired(tmpl.Variables, ctx),
		Defaults:      BuildDefaultContext(tmpl.Variables, usr).Values,
	}, nil
}

func (svc *service) CreateLetter(authorID string, usr UserInfo, nl NewLetter) (Letter, error) {
	tmpl, err := svc.repo.GetTemplateByID(context.Background(), nl.TemplateID)
	if err != nil {
		return Letter{}, err
	}

	ctx := svc.buildContext(tmpl, nl.Values, usr)
	if missing := ValidateRequired(tmpl.Variables, ctx); len(missing) > 0 {
		return Letter{}, core.NewValidationError(
			errors.New("missing required fields"),
			core.FieldError{Field: "values", Error: "the following fields are required: " + strings.Join(missing, ", ")},
		)
	}

	now := time.Now().UTC()
	ltr := Letter{
		TemplateID:     tmpl.ID,
		AuthorID:       authorID,
		Subject:        nl.Subject,
		RecipientEmail: nl.RecipientEmail,
		Values:         ctx.Values,
		Body:           Substitute(tmpl.Content, ctx),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return svc.repo.CreateLetter(context.Background(), ltr)
}

func (svc *service) QueryLetters(filter *LetterQueryFilter, ordering ...core.DBOrdering) ([]Letter, error) {
	return svc.repo.QueryLetters(context.Background(), filter, ordering)
}

func (svc *service) GetLetterByID(id string) (Letter, error) {
	return svc.repo.GetLetterByID(context.Background(), id)
}

func (svc *service) DeleteLetters(ids ...string) error {
	return svc.repo.DeleteLettersByID(context.Background(), ids...)
}

// SendLetter emails the rendered letter body to its recipient and records
// the send time.
func (svc *service) SendLetter(id string) (Letter, error) {
	ltr, err := svc.repo.GetLetterByID(context.Background(), id)
	if err != nil {
		return Letter{}, err
	}
	if ltr.IsSent() {
		return Letter{}, core.NewValidationError(ErrAlreadySent)
	}
	if ltr.RecipientEmail == "" {
		return Letter{}, core.NewValidationError(ErrNoRecipient, core.FieldError{Field: "recipient_email", Error: ErrNoRecipient.Error()})
	}

	svc.sendLetterMail(ltr)

	ltr.SentAt = time.Now().UTC()
	ltr.UpdatedAt = ltr.SentAt
	return svc.repo.SetLetterSent(context.Background(), ltr)
}

func (svc *service) sendLetterMail(ltr Letter) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Address: ltr.RecipientEmail}},
		Subject:      ltr.Subject,
		TemplateName: "letter",
		TemplateData: struct {
			Subject string
			Body    string
		}{Subject: ltr.Subject, Body: ltr.Body},
	})
}
