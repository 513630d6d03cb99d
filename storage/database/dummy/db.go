package dummydb

import (
	"sync"

	"github.com/Shrest4647/ioe-student-utils-sub001/core/letter"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/scholarship"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/university"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/user"
)

type (
	DB struct {
		user        *userTable
		letter      *letterTable
		scholarship *scholarshipTable
		university  *universityTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	letterTable struct {
		sync.RWMutex
		templates map[string]*letter.Template
		letters   map[string]*letter.Letter
	}

	scholarshipTable struct {
		sync.RWMutex
		table map[string]*scholarship.Scholarship
	}

	universityTable struct {
		sync.RWMutex
		table   map[string]*university.University
		ratings map[string]*university.Rating
	}
)

func Open() (*DB, error) {
	db := &DB{
		user: &userTable{table: make(map[string]*user.User)},
		letter: &letterTable{
			templates: make(map[string]*letter.Template),
			letters:   make(map[string]*letter.Letter),
		},
		scholarship: &scholarshipTable{table: make(map[string]*scholarship.Scholarship)},
		university: &universityTable{
			table:   make(map[string]*university.University),
			ratings: make(map[string]*university.Rating),
		},
	}
	return db, nil
}
