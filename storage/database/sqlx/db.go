package sqlxrepos

import (
	"strings"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
)

// orderBy renders an ORDER BY clause from API ordering terms, keeping only
// terms whose field is in sortable. Field names end up interpolated into SQL
// so anything outside the allow list is dropped; defaultOrder applies when
// no term survives.
func orderBy(ordering []core.DBOrdering, defaultOrder string, sortable ...string) string {
	terms := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		for _, col := range sortable {
			if ord.Field == col {
				terms = append(terms, ord.String())
				break
			}
		}
	}
	if len(terms) == 0 {
		return " ORDER BY " + defaultOrder
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}
