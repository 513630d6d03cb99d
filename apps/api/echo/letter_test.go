package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shrest4647/ioe-student-utils-sub001/core/letter"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/user"
	testutil "github.com/Shrest4647/ioe-student-utils-sub001/tests"
)

func Test_letterApi_templates(t *testing.T) {
	deps := setup(t)

	student := testutil.CreateUser(t, deps.usrRepo, "Student", "student1", "student@test.np", "", []string{user.RoleStudent}, true)
	staff := testutil.CreateUser(t, deps.usrRepo, "Staff", "staffer1", "staff@test.np", "", []string{user.RoleStaff}, true)

	newTmpl := marchallObj(t, letter.NewTemplate{
		Name:    "Recommendation Request",
		Content: "Dear {{professor}}, I am {{user_name}}.",
		Variables: []letter.VariableSpec{
			{Name: "professor", Label: "Professor", Type: letter.TypeShortText, Required: true},
		},
	})

	t.Run("create requires staff", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		}
		req, rec := newAuthRequest(http.MethodPost, "/api/letters/templates", getToken(t, student), newTmpl)
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	var created letter.Template
	t.Run("create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/letters/templates", getToken(t, staff), newTmpl)
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decoding Template: %v", err)
		}
		assert.Equal(t, "recommendation-request", created.Slug)
	})

	t.Run("variable name with spaces rejected", func(t *testing.T) {
		body := marchallObj(t, letter.NewTemplate{
			Name:    "Broken Template",
			Content: "Dear {{professor}}.",
			Variables: []letter.VariableSpec{
				{Name: "professor name", Label: "Professor", Type: letter.TypeShortText},
			},
		})
		req, rec := newAuthRequest(http.MethodPost, "/api/letters/templates", getToken(t, staff), body)
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "letters, digits and underscores")
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/letters/templates", getToken(t, staff), newTmpl)
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("students can list", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []letter.Template{created}),
		}
		req, rec := newAuthRequest(http.MethodGet, "/api/letters/templates", getToken(t, student))
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("retrieve", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, created),
		}
		req, rec := newAuthRequest(http.MethodGet, "/api/letters/templates/"+created.ID, getToken(t, student))
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("retrieve unknown", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/letters/templates/no-such-id", getToken(t, student))
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_letterApi_previewTemplate(t *testing.T) {
	deps := setup(t)

	student := testutil.CreateUser(t, deps.usrRepo, "Asha Shrestha", "asha1", "asha@test.np", "", []string{user.RoleStudent}, true)
	tmpl := testutil.CreateTemplate(t, deps.ltrRepo,
		"Cover Letter",
		"Dear {{recipient}}, I am {{user_name}} ({{user_email}}). Sent on {{current_date}}.",
		letter.VariableSpec{Name: "recipient", Label: "Recipient", Type: letter.TypeShortText, Required: true},
	)

	t.Run("missing required values reported", func(t *testing.T) {
		body := marchallObj(t, letter.PreviewRequest{})
		req, rec := newAuthRequest(http.MethodPost, "/api/letters/templates/"+tmpl.ID+"/preview", getToken(t, student), body)
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("preview failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}

		var preview letter.Preview
		if err := json.Unmarshal(rec.Body.Bytes(), &preview); err != nil {
			t.Fatalf("decoding Preview: %v", err)
		}
		assert.Equal(t, []string{"Recipient"}, preview.MissingLabels)
		assert.Contains(t, preview.Body, "{{recipient}}")
		assert.Contains(t, preview.Body, "Asha Shrestha")
		assert.Contains(t, preview.Body, "asha@test.np")
		assert.NotContains(t, preview.Body, "{{current_date}}")
	})

	t.Run("values substituted", func(t *testing.T) {
		body := marchallObj(t, letter.PreviewRequest{Values: map[string]string{"recipient": "Prof. Sharma"}})
		req, rec := newAuthRequest(http.MethodPost, "/api/letters/templates/"+tmpl.ID+"/preview", getToken(t, student), body)
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("preview failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}

		var preview letter.Preview
		if err := json.Unmarshal(rec.Body.Bytes(), &preview); err != nil {
			t.Fatalf("decoding Preview: %v", err)
		}
		assert.Empty(t, preview.MissingLabels)
		assert.Contains(t, preview.Body, "Dear Prof. Sharma,")
	})
}

func Test_letterApi_letters(t *testing.T) {
	deps := setup(t)

	student := testutil.CreateUser(t, deps.usrRepo, "Asha Shrestha", "asha1", "asha@test.np", "", []string{user.RoleStudent}, true)
	other := testutil.CreateUser(t, deps.usrRepo, "Bibek Rana", "bibek1", "bibek@test.np", "", []string{user.RoleStudent}, true)
	tmpl := testutil.CreateTemplate(t, deps.ltrRepo,
		"Cover Letter",
		"Dear {{recipient}}, I am {{user_name}}.",
		letter.VariableSpec{Name: "recipient", Label: "Recipient", Type: letter.TypeShortText, Required: true},
	)

	newLtr := marchallObj(t, letter.NewLetter{
		TemplateID:     tmpl.ID,
		Subject:        "Application",
		RecipientEmail: "prof@uni.edu.np",
		Values:         map[string]string{"recipient": "Prof. Sharma"},
	})

	var created letter.Letter
	t.Run("create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/letters", getToken(t, student), newLtr)
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decoding Letter: %v", err)
		}
		assert.Equal(t, student.ID, created.AuthorID)
		assert.Contains(t, created.Body, "Dear Prof. Sharma,")
		assert.False(t, created.IsSent())
	})

	t.Run("missing required values rejected", func(t *testing.T) {
		body := marchallObj(t, letter.NewLetter{TemplateID: tmpl.ID, Subject: "Application"})
		req, rec := newAuthRequest(http.MethodPost, "/api/letters", getToken(t, student), body)
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("own letters only", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallList(t),
		}
		req, rec := newAuthRequest(http.MethodGet, "/api/letters", getToken(t, other))
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("others cannot retrieve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/letters/"+created.ID, getToken(t, other))
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("send", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/letters/"+created.ID+"/send", getToken(t, student))
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("send failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		var sent letter.Letter
		if err := json.Unmarshal(rec.Body.Bytes(), &sent); err != nil {
			t.Fatalf("decoding Letter: %v", err)
		}
		assert.True(t, sent.IsSent())
	})

	t.Run("send twice rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/letters/"+created.ID+"/send", getToken(t, student))
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/api/letters/"+created.ID, getToken(t, student))
		deps.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
