package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shrest4647/ioe-student-utils-sub001/core/university"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/user"
	testutil "github.com/Shrest4647/ioe-student-utils-sub001/tests"
)

func Test_universityApi_crud(t *testing.T) {
	deps := setup(t)

	student := testutil.CreateUser(t, deps.usrRepo, "Student", "student1", "student@test.np", "", []string{user.RoleStudent}, true)
	staff := testutil.CreateUser(t, deps.usrRepo, "Staff", "staffer1", "staff@test.np", "", []string{user.RoleStaff}, true)
	admin := testutil.CreateUser(t, deps.usrRepo, "Admin", "admin1", "admin@test.np", "", []string{user.RoleAdmin}, true)

	newUni := marchallObj(t, university.NewUniversity{
		Name:        "Tribhuvan University",
		City:        "Kathmandu",
		Website:     "https://tu.edu.np",
		Established: 1959,
	})

	t.Run("create requires staff", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		}
		req, rec := newAuthRequest(http.MethodPost, "/api/universities", getToken(t, student), newUni)
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	var created university.University
	t.Run("create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/universities", getToken(t, staff), newUni)
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decoding University: %v", err)
		}
		assert.Equal(t, "tribhuvan-university", created.Slug)
		assert.Zero(t, created.RatingCount)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/universities", getToken(t, staff), newUni)
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("students can list", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []university.University{created}),
		}
		req, rec := newAuthRequest(http.MethodGet, "/api/universities", getToken(t, student))
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("filter by city", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallList(t),
		}
		req, rec := newAuthRequest(http.MethodGet, "/api/universities?city=Pokhara", getToken(t, student))
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("destroy requires admin", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/api/universities/"+created.ID, getToken(t, staff))
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req, rec = newAuthRequest(http.MethodDelete, "/api/universities/"+created.ID, getToken(t, admin))
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func Test_universityApi_ratings(t *testing.T) {
	deps := setup(t)

	asha := testutil.CreateUser(t, deps.usrRepo, "Asha Shrestha", "asha1", "asha@test.np", "", []string{user.RoleStudent}, true)
	bibek := testutil.CreateUser(t, deps.usrRepo, "Bibek Rana", "bibek1", "bibek@test.np", "", []string{user.RoleStudent}, true)
	uni := testutil.CreateUniversity(t, deps.uniRepo, "Kathmandu University", "Dhulikhel")

	rate := func(t *testing.T, usr user.User, stars int, comment string) university.Rating {
		t.Helper()
		body := marchallObj(t, university.NewRating{Stars: stars, Comment: comment})
		req, rec := newAuthRequest(http.MethodPost, "/api/universities/"+uni.ID+"/ratings", getToken(t, usr), body)
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("rate failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		var rating university.Rating
		if err := json.Unmarshal(rec.Body.Bytes(), &rating); err != nil {
			t.Fatalf("decoding Rating: %v", err)
		}
		return rating
	}

	t.Run("stars out of range rejected", func(t *testing.T) {
		body := marchallObj(t, university.NewRating{Stars: 6})
		req, rec := newAuthRequest(http.MethodPost, "/api/universities/"+uni.ID+"/ratings", getToken(t, asha), body)
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown university", func(t *testing.T) {
		body := marchallObj(t, university.NewRating{Stars: 4})
		req, rec := newAuthRequest(http.MethodPost, "/api/universities/no-such-id/ratings", getToken(t, asha), body)
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rate and aggregate", func(t *testing.T) {
		first := rate(t, asha, 4, "solid engineering program")
		assert.Equal(t, asha.ID, first.StudentID)
		rate(t, bibek, 2, "")

		req, rec := newAuthRequest(http.MethodGet, "/api/universities/"+uni.ID, getToken(t, asha))
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("retrieve failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		var got university.University
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decoding University: %v", err)
		}
		assert.Equal(t, 2, got.RatingCount)
		assert.Equal(t, float64(3), got.RatingAverage)
	})

	t.Run("rating again replaces", func(t *testing.T) {
		updated := rate(t, asha, 5, "revised after graduation")
		assert.Equal(t, 5, updated.Stars)

		req, rec := newAuthRequest(http.MethodGet, "/api/universities/"+uni.ID+"/ratings", getToken(t, bibek))
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("list ratings failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		var ratings []university.Rating
		if err := json.Unmarshal(rec.Body.Bytes(), &ratings); err != nil {
			t.Fatalf("decoding ratings: %v", err)
		}
		assert.Len(t, ratings, 2)

		req, rec = newAuthRequest(http.MethodGet, "/api/universities/"+uni.ID, getToken(t, bibek))
		deps.server.ServeHTTP(rec, req)
		var got university.University
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decoding University: %v", err)
		}
		assert.Equal(t, 2, got.RatingCount)
		assert.Equal(t, 3.5, got.RatingAverage)
	})
}
