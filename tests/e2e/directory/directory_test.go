//go:build e2e

package directory_test

import (
	"net/http"
	"testing"
	"time"

	resdto "kidcheck/internal/handler/dto/response"
	"kidcheck/tests/common/authtest"
	"kidcheck/tests/common/dbtest"
	"kidcheck/tests/common/httptest"
	"kidcheck/tests/e2e"

	"github.com/stretchr/testify/suite"
)

type DirectoryE2ESuite struct {
	e2e.SharedSuite
}

func TestDirectoryE2E(t *testing.T) {
	suite.Run(t, new(DirectoryE2ESuite))
}

func (s *DirectoryE2ESuite) TestListChildren() {
	s.Run("親は自分の子供だけが見える", func() {
		parentID, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "parent@example.com", "parent")
		otherID := dbtest.CreateTestUser(s.T(), s.DB, "other@example.com", "parent")

		dbtest.CreateTestChild(s.T(), s.DB, "Kim Kid", time.Now().UTC().AddDate(-6, 0, 0), parentID, nil)
		dbtest.CreateTestChild(s.T(), s.DB, "Other Kid", time.Now().UTC().AddDate(-9, 0, 0), otherID, nil)
		// Secondary parenthood counts too.
		dbtest.CreateTestChild(s.T(), s.DB, "Step Kid", time.Now().UTC().AddDate(-7, 0, 0), otherID, &parentID)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/children", nil, token)

		var listResponse struct {
			Children []resdto.ChildResponse `json:"children"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &listResponse)
		s.Require().Len(listResponse.Children, 2)

		names := []string{listResponse.Children[0].DisplayName, listResponse.Children[1].DisplayName}
		s.Contains(names, "Kim Kid")
		s.Contains(names, "Step Kid")
		s.NotContains(names, "Other Kid")
	})

	s.Run("未認証では401", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/children", nil, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *DirectoryE2ESuite) TestListServices() {
	s.Run("アクティブなサービスの一覧を返す", func() {
		_, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "parent@example.com", "parent")
		dbtest.CreateTestService(s.T(), s.DB, "Morning Care", 20)
		dbtest.CreateTestService(s.T(), s.DB, "Art Club", 8)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/services", nil, token)

		var listResponse struct {
			Services []resdto.ServiceResponse `json:"services"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &listResponse)
		s.Require().Len(listResponse.Services, 2)
		for _, svc := range listResponse.Services {
			s.Positive(svc.MaxCapacity)
			s.True(svc.EndTime.After(svc.StartTime))
		}
	})
}
