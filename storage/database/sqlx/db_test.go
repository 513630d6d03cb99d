package sqlxrepos

import (
	"testing"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
)

func Test_orderBy(t *testing.T) {
	sortable := []string{"name", "created_at"}

	tests := []struct {
		name     string
		ordering []core.DBOrdering
		want     string
	}{
		{
			name: "no terms falls back to default",
			want: " ORDER BY created_at DESC",
		},
		{
			name: "sortable fields pass through",
			ordering: []core.DBOrdering{
				{Field: "name", Ascending: true},
				{Field: "created_at"},
			},
			want: " ORDER BY name ASC, created_at DESC",
		},
		{
			name: "unknown field is dropped",
			ordering: []core.DBOrdering{
				{Field: "name", Ascending: true},
				{Field: "password_hash"},
			},
			want: " ORDER BY name ASC",
		},
		{
			name: "sql in field name is dropped",
			ordering: []core.DBOrdering{
				{Field: "name; DROP TABLE letter --"},
			},
			want: " ORDER BY created_at DESC",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderBy(tt.ordering, "created_at DESC", sortable...); got != tt.want {
				t.Errorf("orderBy() = %q; want %q", got, tt.want)
			}
		})
	}
}
