//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"kidcheck/internal/domain/user"
	"kidcheck/internal/handler/api"
	resdto "kidcheck/internal/handler/dto/response"
	"kidcheck/internal/usecase/commands"
	"kidcheck/internal/usecase/queries"
	"kidcheck/tests/common/builder"
	"kidcheck/tests/common/httptest"
	commandsmock "kidcheck/tests/mock/commands"
	queriesmock "kidcheck/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScanHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckInCommands
	mockQueries  *queriesmock.MockCheckInQueries
	handler      *api.ScanHandler
}

func (s *ScanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckInCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCheckInQueries(s.mockCtrl)
	s.handler = api.NewScanHandler(s.mockCommands, s.mockQueries)

	// Mock staff authentication middleware for testing
	staffMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleStaff)
		c.Next()
	}

	s.router.GET("/checkin/scan/:token", staffMiddleware, s.handler.GetDetails)
	s.router.POST("/checkin/scan/:token/approve", staffMiddleware, s.handler.Approve)
	s.router.POST("/checkin/scan/:token/reject", staffMiddleware, s.handler.Reject)
}

func (s *ScanHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScanHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScanHandlerTestSuite))
}

// ================================================================================
// TestGetDetails
// ================================================================================

func (s *ScanHandlerTestSuite) TestGetDetails() {
	b := builder.NewCheckinBuilder()
	url := "/checkin/scan/" + b.Token

	s.Run("success: returns request details with safety flags", func() {
		s.mockQueries.EXPECT().GetScanDetails(gomock.Any(), b.Token).
			Return(b.BuildScanDetails(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.ScanDetailsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(b.ChildName, response.ChildName)
		s.Equal(b.RequesterName, response.RequesterName)
		s.True(response.Safety.HasAllergies)
	})

	s.Run("error: 404 for an unknown token", func() {
		s.mockQueries.EXPECT().GetScanDetails(gomock.Any(), b.Token).
			Return(nil, queries.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: 410 for an expired request, distinct from 404", func() {
		s.mockQueries.EXPECT().GetScanDetails(gomock.Any(), b.Token).
			Return(nil, queries.ErrRequestExpired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusGone, "expired")
	})
}

// ================================================================================
// TestApprove
// ================================================================================

func (s *ScanHandlerTestSuite) TestApprove() {
	b := builder.NewCheckinBuilder()
	url := "/checkin/scan/" + b.Token + "/approve"

	s.Run("success: returns the attendance record id", func() {
		attendanceID := uuid.New()
		approvedView := b.WithStatus("approved").BuildViewQuery()
		s.mockCommands.EXPECT().Approve(gomock.Any(), b.Token, gomock.Any()).
			Return(&commands.ProcessResult{Request: approvedView, AttendanceID: &attendanceID}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.ApprovalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(attendanceID, response.AttendanceID)
		s.Equal("approved", response.Request.Status)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "unknown token", commandsError: commands.ErrRequestNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Not found"},
			{name: "already processed", commandsError: commands.ErrRequestNotPending, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "already been processed"},
			{name: "request expired", commandsError: commands.ErrRequestExpired, expectedStatus: http.StatusGone, expectedMsg: "expired"},
			{name: "service at capacity", commandsError: commands.ErrServiceAtCapacity, expectedStatus: http.StatusConflict, expectedMsg: "capacity"},
			{name: "child already checked in today", commandsError: commands.ErrChildAlreadyCheckedIn, expectedStatus: http.StatusConflict, expectedMsg: "already checked in"},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Approve(gomock.Any(), b.Token, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestReject
// ================================================================================

func (s *ScanHandlerTestSuite) TestReject() {
	b := builder.NewCheckinBuilder()
	url := "/checkin/scan/" + b.Token + "/reject"
	reqBody := map[string]string{"reason": "wrong service selected"}

	s.Run("success: returns the rejected request", func() {
		rejectedView := b.WithStatus("rejected").BuildViewQuery()
		s.mockCommands.EXPECT().Reject(gomock.Any(), b.Token, gomock.Any(), "wrong service selected").
			Return(&commands.ProcessResult{Request: rejectedView}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.CheckinRequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("rejected", response.Status)
	})

	s.Run("error: 400 when the reason field is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 when the reason is whitespace only", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), b.Token, gomock.Any(), "   ").
			Return(nil, commands.ErrRejectionReasonRequired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{"reason": "   "}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Rejection reason is required")
	})

	s.Run("error: 410 for an expired request", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), b.Token, gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrRequestExpired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusGone, "expired")
	})
}
