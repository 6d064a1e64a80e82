//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	reqdto "kidcheck/internal/handler/dto/request"
	resdto "kidcheck/internal/handler/dto/response"
	"kidcheck/tests/common/authtest"
	"kidcheck/tests/common/dbtest"
	"kidcheck/tests/common/httptest"
	"kidcheck/tests/e2e"

	"github.com/stretchr/testify/suite"
)

type AuthE2ESuite struct {
	e2e.SharedSuite
}

func TestAuthE2E(t *testing.T) {
	suite.Run(t, new(AuthE2ESuite))
}

func (s *AuthE2ESuite) TestLogin() {
	s.Run("正しい資格情報でログインできる", func() {
		userID := dbtest.CreateTestUser(s.T(), s.DB, "parent@example.com", "parent")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
			reqdto.LoginRequest{Email: "parent@example.com", Password: "password123"}, "")

		var loginResponse resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &loginResponse)
		s.Require().NotNil(loginResponse.User)
		s.Equal(userID, loginResponse.User.ID)
		s.Equal("parent", loginResponse.User.Role)

		access := httptest.ExtractCookie(w, "access_token")
		s.Require().NotNil(access)
		s.NotEmpty(access.Value)
		s.True(access.HttpOnly)

		refresh := httptest.ExtractCookie(w, "refresh_token")
		s.Require().NotNil(refresh)
		s.NotEmpty(refresh.Value)
	})

	s.Run("パスワードが違うと401", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "parent@example.com", "parent")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
			reqdto.LoginRequest{Email: "parent@example.com", Password: "wrongpassword"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("存在しないユーザーでも401", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
			reqdto.LoginRequest{Email: "nobody@example.com", Password: "password123"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid email or password")
	})
}

func (s *AuthE2ESuite) TestMe() {
	s.Run("自分の情報を取得できる", func() {
		_, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "staff@example.com", "staff")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/auth/me", nil, token)

		var me resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &me)
		s.Equal("staff@example.com", me.Email)
		s.Equal("staff", me.Role)
	})

	s.Run("未認証では401", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/auth/me", nil, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *AuthE2ESuite) TestRefresh() {
	s.Run("リフレッシュトークンでトークンを再発行できる", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "parent@example.com", "parent")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
			reqdto.LoginRequest{Email: "parent@example.com", Password: "password123"}, "")
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		cookies := httptest.ExtractCookies(w)

		w = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, "/api/auth/refresh", nil, cookies, "")
		s.Equal(http.StatusNoContent, w.Code, w.Body.String())

		rotated := httptest.ExtractCookie(w, "access_token")
		s.Require().NotNil(rotated)
		s.NotEmpty(rotated.Value)
	})

	s.Run("リフレッシュトークンなしでは401", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/refresh", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Refresh token required")
	})
}
