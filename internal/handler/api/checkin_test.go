//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"kidcheck/internal/domain/user"
	"kidcheck/internal/handler/api"
	resdto "kidcheck/internal/handler/dto/response"
	"kidcheck/internal/usecase/commands"
	"kidcheck/internal/usecase/queries"
	"kidcheck/tests/common/builder"
	"kidcheck/tests/common/httptest"
	"kidcheck/tests/common/testutil"
	commandsmock "kidcheck/tests/mock/commands"
	queriesmock "kidcheck/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckinHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckInCommands
	mockQueries  *queriesmock.MockCheckInQueries
	handler      *api.CheckinHandler
}

func (s *CheckinHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckInCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCheckInQueries(s.mockCtrl)
	s.handler = api.NewCheckinHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleParent)
		c.Next()
	}

	s.router.POST("/checkin/requests", authMiddleware, s.handler.Create)
	s.router.GET("/checkin/requests", authMiddleware, s.handler.ListActive)
	s.router.DELETE("/checkin/requests/:id", authMiddleware, s.handler.Cancel)
}

func (s *CheckinHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckinHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckinHandlerTestSuite))
}

type testCaseCheckin struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *CheckinHandlerTestSuite) TestCreate() {
	url := "/checkin/requests"

	reqBody := builder.NewCheckinBuilder().BuildCreateRequestDTO()
	returnView := builder.NewCheckinBuilder().BuildViewQuery()

	s.Run("success: returns 201 Created for a new request", func() {
		s.mockCommands.EXPECT().CreateRequest(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&commands.CreateRequestResult{Request: returnView, Reused: false}, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.CheckinRequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.Token, response.Token)
		s.Equal("pending", response.Status)
	})

	s.Run("success: returns 200 OK when an existing pending request is reused", func() {
		s.mockCommands.EXPECT().CreateRequest(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&commands.CreateRequestResult{Request: returnView, Reused: true}, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.CheckinRequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.Token, response.Token, "reuse must hand back the original token")
	})

	s.Run("error: 401 without authorization", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		missing := []testCaseCheckin{
			{name: "missing field: child_id (required)", mutate: testutil.Field("child_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: service_id (required)", mutate: testutil.Field("service_id", nil), expectCode: http.StatusBadRequest},
		}

		bound := []testCaseCheckin{
			{name: "note length OK (500 chars)", mutate: testutil.Field("note", strings.Repeat("a", 500)), expectCode: http.StatusCreated},
			{name: "note length invalid (501 chars)", mutate: testutil.Field("note", strings.Repeat("a", 501)), expectCode: http.StatusBadRequest},
			{name: "note omitted is fine", mutate: testutil.Field("note", nil), expectCode: http.StatusCreated},
		}

		allValidationTestCases := [][]testCaseCheckin{missing, bound}

		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().CreateRequest(gomock.Any(), gomock.Any(), gomock.Any()).
							Return(&commands.CreateRequestResult{Request: returnView}, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
					}
				})
			}
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "child not found", commandsError: commands.ErrChildNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Not found"},
			{name: "service not found", commandsError: commands.ErrServiceNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Not found"},
			{name: "not a parent of the child", commandsError: commands.ErrNotParentOfChild, expectedStatus: http.StatusForbidden, expectedMsg: "Not a parent"},
			{name: "child age ineligible", commandsError: commands.ErrChildAgeIneligible, expectedStatus: http.StatusBadRequest, expectedMsg: "age"},
			{name: "service inactive", commandsError: commands.ErrServiceInactive, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "not accepting"},
			{name: "check-in window closed", commandsError: commands.ErrCheckInClosed, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "window is closed"},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateRequest(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestListActive
// ================================================================================

func (s *CheckinHandlerTestSuite) TestListActive() {
	url := "/checkin/requests"

	s.Run("success: returns the caller's active requests", func() {
		views := []*queries.RequestView{
			builder.NewCheckinBuilder().BuildViewQuery(),
			builder.NewCheckinBuilder().BuildViewQuery(),
		}
		s.mockQueries.EXPECT().ListActiveByRequester(gomock.Any(), gomock.Any()).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response struct {
			Requests []resdto.CheckinRequestResponse `json:"requests"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Requests, 2)
	})

	s.Run("success: empty list when nothing is pending", func() {
		s.mockQueries.EXPECT().ListActiveByRequester(gomock.Any(), gomock.Any()).
			Return([]*queries.RequestView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response struct {
			Requests []resdto.CheckinRequestResponse `json:"requests"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.Requests)
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().ListActiveByRequester(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *CheckinHandlerTestSuite) TestCancel() {
	requestID := uuid.New()
	url := "/checkin/requests/" + requestID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), requestID, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 for a malformed request id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/checkin/requests/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request id")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "request not found", commandsError: commands.ErrRequestNotFound, expectedStatus: http.StatusNotFound},
			{name: "not a parent of the child", commandsError: commands.ErrNotParentOfChild, expectedStatus: http.StatusForbidden},
			{name: "request already processed", commandsError: commands.ErrRequestNotPending, expectedStatus: http.StatusUnprocessableEntity},
			{name: "request expired", commandsError: commands.ErrRequestExpired, expectedStatus: http.StatusGone},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), requestID, gomock.Any()).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}
