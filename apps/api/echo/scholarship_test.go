package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shrest4647/ioe-student-utils-sub001/core/scholarship"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/user"
	testutil "github.com/Shrest4647/ioe-student-utils-sub001/tests"
)

func Test_scholarshipApi_crud(t *testing.T) {
	deps := setup(t)

	student := testutil.CreateUser(t, deps.usrRepo, "Student", "student1", "student@test.np", "", []string{user.RoleStudent}, true)
	staff := testutil.CreateUser(t, deps.usrRepo, "Staff", "staffer1", "staff@test.np", "", []string{user.RoleStaff}, true)

	newSch := marchallObj(t, scholarship.NewScholarship{
		Name:     "Fulbright Scholarship",
		Provider: "US Embassy",
		Website:  "https://fulbright.org",
		Year:     2026,
	})

	t.Run("create requires staff", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		}
		req, rec := newAuthRequest(http.MethodPost, "/api/scholarships", getToken(t, student), newSch)
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	var created scholarship.Scholarship
	t.Run("create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/scholarships", getToken(t, staff), newSch)
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decoding Scholarship: %v", err)
		}
		assert.Equal(t, "fulbright-scholarship-2026", created.Slug)
		assert.True(t, created.IsActive)
	})

	t.Run("same name and year rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/scholarships", getToken(t, staff), newSch)
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("students can list", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []scholarship.Scholarship{created}),
		}
		req, rec := newAuthRequest(http.MethodGet, "/api/scholarships", getToken(t, student))
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("filter by provider", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallList(t),
		}
		req, rec := newAuthRequest(http.MethodGet, "/api/scholarships?provider=DAAD", getToken(t, student))
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("deactivate", func(t *testing.T) {
		isActive := false
		body := marchallObj(t, scholarship.UpdateScholarship{IsActive: &isActive})
		req, rec := newAuthRequest(http.MethodPut, "/api/scholarships/"+created.ID, getToken(t, staff), body)
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("update failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		var updated scholarship.Scholarship
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("decoding Scholarship: %v", err)
		}
		assert.False(t, updated.IsActive)
		assert.Equal(t, created.Name, updated.Name)
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/api/scholarships/"+created.ID, getToken(t, staff))
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/api/scholarships/"+created.ID, getToken(t, staff))
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_scholarshipApi_checkDuplicate(t *testing.T) {
	deps := setup(t)

	student := testutil.CreateUser(t, deps.usrRepo, "Student", "student1", "student@test.np", "", []string{user.RoleStudent}, true)
	staff := testutil.CreateUser(t, deps.usrRepo, "Staff", "staffer1", "staff@test.np", "", []string{user.RoleStaff}, true)
	fulbright := testutil.CreateScholarship(t, deps.schRepo, "Fulbright Scholarship", "US Embassy", "https://fulbright.org", 2026)
	testutil.CreateScholarship(t, deps.schRepo, "Chevening Award", "UK Government", "https://chevening.org", 2026)

	check := func(t *testing.T, c scholarship.Candidate) scholarship.CheckResult {
		t.Helper()
		req, rec := newAuthRequest(http.MethodPost, "/api/scholarships/duplicate-check", getToken(t, staff), marchallObj(t, c))
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("duplicate check failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		var result scholarship.CheckResult
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("decoding CheckResult: %v", err)
		}
		return result
	}

	t.Run("requires staff", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		}
		body := marchallObj(t, scholarship.Candidate{Name: "Fulbright Scholarship"})
		req, rec := newAuthRequest(http.MethodPost, "/api/scholarships/duplicate-check", getToken(t, student), body)
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("name required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/scholarships/duplicate-check", getToken(t, staff), marchallObj(t, scholarship.Candidate{}))
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("exact match ignoring case and spacing", func(t *testing.T) {
		result := check(t, scholarship.Candidate{Name: "  FULBRIGHT   scholarship "})
		assert.True(t, result.IsDuplicate)
		assert.Equal(t, float64(100), result.Confidence)
		if assert.Len(t, result.Matches, 1) {
			assert.Equal(t, fulbright.ID, result.Matches[0].ID)
			assert.Equal(t, "Exact name match", result.Matches[0].Reason)
		}
	})

	t.Run("near match with corroborating reasons", func(t *testing.T) {
		result := check(t, scholarship.Candidate{
			Name:     "Fulbright Scholarships",
			Provider: "us embassy",
			Website:  "https://fulbright.org/",
			Year:     2026,
		})
		assert.True(t, result.IsDuplicate)
		if assert.Len(t, result.Matches, 1) {
			m := result.Matches[0]
			assert.Equal(t, fulbright.ID, m.ID)
			assert.GreaterOrEqual(t, m.SimilarityScore, float64(80))
			assert.Less(t, m.SimilarityScore, float64(100))
			assert.Equal(t, "Similar name (95% match); Same provider; Same website URL; Existing entry for year 2026", m.Reason)
		}
	})

	t.Run("distinct name is clean", func(t *testing.T) {
		result := check(t, scholarship.Candidate{Name: "Erasmus Mundus Grant", Provider: "US Embassy", Year: 2026})
		assert.False(t, result.IsDuplicate)
		assert.Equal(t, float64(0), result.Confidence)
		assert.Empty(t, result.Matches)
	})
}
