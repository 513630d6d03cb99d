package scholarship

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
)

// Scholarship is one catalog entry. Slug is derived from name and year, so
// year tokens remain searchable in duplicate checks.
type Scholarship struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider,omitempty"`
	Website   string    `json:"website,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	Year      int       `json:"year,omitempty"`
	Deadline  time.Time `json:"deadline,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewScholarship contains information needed to create a new Scholarship.
type NewScholarship struct {
	Name     string    `json:"name" validate:"required"`
	Provider string    `json:"provider"`
	Website  string    `json:"website" validate:"omitempty,url"`
	Amount   string    `json:"amount"`
	Year     int       `json:"year" validate:"omitempty,min=1950"`
	Deadline time.Time `json:"deadline"`
}

func (ns *NewScholarship) Validate(validate *validator.Validate, svc ServiceInterface) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Provider = core.CleanString(ns.Provider)
	ns.Website = core.CleanString(ns.Website, true /* lower */)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckUniqueness(ns.Name, ns.Year)
}

func (ns NewScholarship) candidate() Candidate {
	return Candidate{
		Name:     ns.Name,
		Provider: ns.Provider,
		Website:  ns.Website,
		Year:     ns.Year,
	}
}

// UpdateScholarship defines what information may be provided to modify an
// existing Scholarship. Zero-value fields keep the original.
type UpdateScholarship struct {
	Name     string    `json:"name"`
	Provider string    `json:"provider"`
	Website  string    `json:"website" validate:"omitempty,url"`
	Amount   string    `json:"amount"`
	Year     int       `json:"year" validate:"omitempty,min=1950"`
	Deadline time.Time `json:"deadline"`
	IsActive *bool     `json:"is_active"`
}

func (us *UpdateScholarship) Validate(validate *validator.Validate, origSch Scholarship, svc ServiceInterface) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = origSch.Name
	}
	if provider := core.CleanString(us.Provider); provider != "" {
		us.Provider = provider
	} else {
		us.Provider = origSch.Provider
	}
	if website := core.CleanString(us.Website, true /* lower */); website != "" {
		us.Website = website
	} else {
		us.Website = origSch.Website
	}
	if us.Year == 0 {
		us.Year = origSch.Year
	}
	if us.Amount == "" {
		us.Amount = origSch.Amount
	}
	if us.Deadline.IsZero() {
		us.Deadline = origSch.Deadline
	}

	if err := validate.Struct(us); err != nil {
		return err
	}
	return svc.CheckUniqueness(us.Name, us.Year, origSch)
}

type QueryFilter struct {
	Search   string `query:"search"`
	Provider string `query:"provider"`
	Year     int    `query:"year"`
	IsActive *bool  `query:"is_active"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Provider == "" && qf.Year == 0 && qf.IsActive == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Provider = core.CleanString(qf.Provider)
}
