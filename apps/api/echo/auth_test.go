package echoapi

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt"

	"github.com/Shrest4647/ioe-student-utils-sub001/core/user"
	testutil "github.com/Shrest4647/ioe-student-utils-sub001/tests"
)

func Test_auth_tokenRoundTrip(t *testing.T) {
	deps := setup(t)

	usr := testutil.CreateUser(t, deps.usrRepo, "Token User", "tokenuser", "token@test.np", "", []string{user.RoleStudent}, true)
	token := getToken(t, usr)

	t.Run("claims decode with the middleware's parser", func(t *testing.T) {
		claims := new(Claims)
		parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
			return appJWTConfig.SigningKey, nil
		})
		if err != nil {
			t.Fatalf("parsing token: %v", err)
		}
		if !parsed.Valid {
			t.Fatal("token is not valid")
		}
		if claims.Subject != usr.ID {
			t.Errorf("Subject = %q; want %q", claims.Subject, usr.ID)
		}
		if claims.Username != usr.Username {
			t.Errorf("Username = %q; want %q", claims.Username, usr.Username)
		}
		if !claims.IsStudent {
			t.Error("IsStudent = false; want true")
		}
	})

	t.Run("token authorizes a protected route", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/users/"+usr.ID, token)
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
	})
}
