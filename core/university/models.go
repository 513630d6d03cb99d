package university

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
)

// University is one catalog entry. RatingAverage and RatingCount are
// aggregates computed at query time, never stored.
type University struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	City          string    `json:"city,omitempty"`
	Website       string    `json:"website,omitempty"`
	Established   int       `json:"established,omitempty"`
	RatingAverage float64   `json:"rating_average"`
	RatingCount   int       `json:"rating_count"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

// Rating is one student's 1-5 star rating of a university. A student rates a
// university at most once; rating again replaces the previous stars/comment.
type Rating struct {
	ID           string    `json:"id"`
	UniversityID string    `json:"university_id"`
	StudentID    string    `json:"student_id"`
	Stars        int       `json:"stars"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

// NewUniversity contains information needed to create a new University.
type NewUniversity struct {
	Name        string `json:"name" validate:"required"`
	City        string `json:"city"`
	Website     string `json:"website" validate:"omitempty,url"`
	Established int    `json:"established" validate:"omitempty,min=1800"`
}

func (nu *NewUniversity) Validate(validate *validator.Validate, svc ServiceInterface) error {
	nu.Name = core.CleanString(nu.Name)
	nu.City = core.CleanString(nu.City)
	nu.Website = core.CleanString(nu.Website, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Name)
}

// UpdateUniversity defines what information may be provided to modify an
// existing University. Zero-value fields keep the original.
type UpdateUniversity struct {
	Name        string `json:"name"`
	City        string `json:"city"`
	Website     string `json:"website" validate:"omitempty,url"`
	Established int    `json:"established" validate:"omitempty,min=1800"`
}

func (uu *UpdateUniversity) Validate(validate *validator.Validate, origUni University, svc ServiceInterface) error {
	if name := core.CleanString(uu.Name); name != "" {
		uu.Name = name
	} else {
		uu.Name = origUni.Name
	}
	if city := core.CleanString(uu.City); city != "" {
		uu.City = city
	} else {
		uu.City = origUni.City
	}
	if website := core.CleanString(uu.Website, true /* lower */); website != "" {
		uu.Website = website
	} else {
		uu.Website = origUni.Website
	}
	if uu.Established == 0 {
		uu.Established = origUni.Established
	}

	if err := validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(uu.Name, origUni)
}

// NewRating contains one student's rating submission.
type NewRating struct {
	Stars   int    `json:"stars" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (nr *NewRating) Validate(validate *validator.Validate) error {
	nr.Comment = core.CleanString(nr.Comment)
	return validate.Struct(nr)
}

type QueryFilter struct {
	Search string `query:"search"`
	City   string `query:"city"`
}

func (qf *QueryFilter) IsEmpty() bool { return qf.Search == "" && qf.City == "" }

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.City = core.CleanString(qf.City)
}
