package letter

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
)

// Template is a stored recommendation-letter template. It is authored by
// staff and read-only at substitution time.
type Template struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Content     string         `json:"content"`
	Variables   []VariableSpec `json:"variables"`
	CreatedAt   time.Time      `json:"created_at"` // UTC
	UpdatedAt   time.Time      `json:"updated_at"` // UTC
}

// Letter is a rendered instance of a Template: the caller persists the
// rendered output, never the substitution context's user record.
type Letter struct {
	ID             string            `json:"id"`
	TemplateID     string            `json:"template_id"`
	AuthorID       string            `json:"author_id"`
	Subject        string            `json:"subject"`
	RecipientEmail string            `json:"recipient_email,omitempty"`
	Values         map[string]string `json:"values"`
	Body           string            `json:"body"`
	SentAt         time.Time         `json:"sent_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"` // UTC
	UpdatedAt      time.Time         `json:"updated_at"` // UTC
}

func (l Letter) IsSent() bool { return !l.SentAt.IsZero() }

// NewTemplate contains information needed to create a new Template.
type NewTemplate struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Content     string         `json:"content" validate:"required"`
	Variables   []VariableSpec `json:"variables" validate:"omitempty,dive"`
}

func (nt *NewTemplate) Validate(validate *validator.Validate, svc ServiceInterface) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Description = core.CleanString(nt.Description)

	if err := validate.Struct(nt); err != nil {
		return err
	}
	return svc.CheckTemplateUniqueness(nt.Name)
}

// UpdateTemplate defines what information may be provided to modify an
// existing Template. Zero-value fields keep the original.
type UpdateTemplate struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	Variables   []VariableSpec `json:"variables" validate:"omitempty,dive"`
}

func (ut *UpdateTemplate) Validate(validate *validator.Validate, origTmpl Template, svc ServiceInterface) error {
	if name := core.CleanString(ut.Name); name != "" {
		ut.Name = name
	} else {
		ut.Name = origTmpl.Name
	}
	if ut.Description == "" {
		ut.Description = origTmpl.Description
	}
	if ut.Content == "" {
		ut.Content = origTmpl.Content
	}
	if ut.Variables == nil {
		ut.Variables = origTmpl.Variables
	}

	if err := validate.Struct(ut); err != nil {
		return err
	}
	return svc.CheckTemplateUniqueness(ut.Name, origTmpl)
}

// NewLetter contains information needed to render and persist a Letter.
type NewLetter struct {
	TemplateID     string            `json:"template_id" validate:"required"`
	Subject        string            `json:"subject" validate:"required"`
	RecipientEmail string            `json:"recipient_email" validate:"omitempty,email"`
	Values         map[string]string `json:"values"`
}

func (nl *NewLetter) Validate(validate *validator.Validate) error {
	nl.Subject = core.CleanString(nl.Subject)
	nl.RecipientEmail = core.CleanString(nl.RecipientEmail, true /* lower */)
	return validate.Struct(nl)
}

// PreviewRequest carries the editor's current values for a dry-run render.
type PreviewRequest struct {
	Values map[string]string `json:"values"`
}

// Preview is a dry-run render result: the (possibly partially) substituted
// body plus the labels still missing. Nothing is persisted.
type Preview struct {
	Body          string            `json:"body"`
	MissingLabels []string          `json:"missing_labels"`
	Defaults      map[string]string `json:"defaults"`
}

type TemplateQueryFilter struct {
	Search string `query:"search"`
}

func (qf *TemplateQueryFilter) IsEmpty() bool { return qf.Search == "" }

func (qf *TemplateQueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

type LetterQueryFilter struct {
	AuthorID   string `query:"-"`
	TemplateID string `query:"template_id"`
	Sent       *bool  `query:"sent"`
}
