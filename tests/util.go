package testutil

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/letter"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/scholarship"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/university"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/user"
)

// NewTestConfig returns a minimal config suitable for tests.
func NewTestConfig() *core.Config {
	return &core.Config{
		TestMode:  true,
		Env:       "test",
		AppName:   "IOE Student Utils",
		SecretKey: []byte("secret"),

		FrontendBaseURL:           "http://localhost:3000",
		FromEmailAddr:             "noreply@localhost",
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,

		Server: core.ServerConfig{
			Host:                      "localhost",
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateTemplate(
	t *testing.T,
	repo letter.Repository,
	name, content string,
	vars ...letter.VariableSpec,
) letter.Template {
	tstamp := time.Now().UTC()
	tmpl := letter.Template{
		Slug:      core.Slugify(name),
		Name:      name,
		Content:   content,
		Variables: vars,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	tmpl, err := repo.CreateTemplate(context.Background(), tmpl)
	if err != nil {
		t.Fatalf("CreateTemplate() failed: %v", err)
	}
	return tmpl
}

func CreateScholarship(
	t *testing.T,
	repo scholarship.Repository,
	name, provider, website string,
	year int,
) scholarship.Scholarship {
	slug := core.Slugify(name)
	if year > 0 {
		slug = core.Slugify(name, strconv.Itoa(year))
	}
	tstamp := time.Now().UTC()
	sch := scholarship.Scholarship{
		Slug:      slug,
		Name:      name,
		Provider:  provider,
		Website:   website,
		Year:      year,
		IsActive:  true,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	sch, err := repo.CreateScholarship(context.Background(), sch)
	if err != nil {
		t.Fatalf("CreateScholarship() failed: %v", err)
	}
	return sch
}

func CreateUniversity(
	t *testing.T,
	repo university.Repository,
	name, city string,
) university.University {
	tstamp := time.Now().UTC()
	uni := university.University{
		Slug:      core.Slugify(name),
		Name:      name,
		City:      city,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	uni, err := repo.CreateUniversity(context.Background(), uni)
	if err != nil {
		t.Fatalf("CreateUniversity() failed: %v", err)
	}
	return uni
}
