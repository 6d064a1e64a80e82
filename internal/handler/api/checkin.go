package api

import (
	"errors"
	"net/http"

	reqdto "kidcheck/internal/handler/dto/request"
	resdto "kidcheck/internal/handler/dto/response"
	"kidcheck/internal/handler/httperr"
	"kidcheck/internal/handler/middleware"
	"kidcheck/internal/usecase/commands"
	"kidcheck/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckinHandler serves the parent-facing request lifecycle: create,
// list active, cancel.
type CheckinHandler struct {
	cmds commands.CheckInCommands
	q    queries.CheckInQueries
}

func NewCheckinHandler(cmds commands.CheckInCommands, q queries.CheckInQueries) *CheckinHandler {
	return &CheckinHandler{cmds: cmds, q: q}
}

// @Summary Create check-in request
// @Description Request check-in of a child to a service; returns the QR token
// @Tags checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCheckinRequest true "Check-in request"
// @Success 200 {object} resdto.CheckinRequestResponse "Existing pending request reused"
// @Success 201 {object} resdto.CheckinRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkin/requests [post]
func (h *CheckinHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrRequesterNotFound, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.CreateRequest(c.Request.Context(), userID, req)
	if err != nil {
		respondCheckinError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromRequestView(result.Request))
}

// @Summary List active check-in requests
// @Description List the caller's pending, unexpired requests
// @Tags checkin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]resdto.CheckinRequestResponse
// @Failure 401 {object} map[string]string
// @Router /checkin/requests [get]
func (h *CheckinHandler) ListActive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrRequesterNotFound, "Unauthorized", nil)
		return
	}

	views, err := h.q.ListActiveByRequester(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": resdto.FromRequestViewList(views)})
}

// @Summary Cancel check-in request
// @Description Cancel own pending request before staff process it
// @Tags checkin
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkin/requests/{id} [delete]
func (h *CheckinHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrRequesterNotFound, "Unauthorized", nil)
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request id", nil)
		return
	}

	if err := h.cmds.Cancel(c.Request.Context(), requestID, userID); err != nil {
		respondCheckinError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondCheckinError translates engine sentinels into HTTP statuses.
// Expired is deliberately distinct from not-found so clients can tell a
// dead QR code from a bogus one.
func respondCheckinError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrRequesterNotFound),
		errors.Is(err, commands.ErrChildNotFound),
		errors.Is(err, commands.ErrServiceNotFound),
		errors.Is(err, commands.ErrStaffNotFound),
		errors.Is(err, commands.ErrRequestNotFound),
		errors.Is(err, queries.ErrRequestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)

	case errors.Is(err, commands.ErrNotParentOfChild):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not a parent of this child", nil)

	case errors.Is(err, commands.ErrChildAgeIneligible):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Child age is outside the service age band", nil)

	case errors.Is(err, commands.ErrRejectionReasonRequired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Rejection reason is required", nil)

	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request data", nil)

	case errors.Is(err, commands.ErrServiceInactive):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Service is not accepting check-ins", nil)

	case errors.Is(err, commands.ErrCheckInClosed):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Check-in window is closed", nil)

	case errors.Is(err, commands.ErrRequestNotPending):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Request has already been processed", nil)

	case errors.Is(err, commands.ErrRequestExpired), errors.Is(err, queries.ErrRequestExpired):
		httperr.AbortWithError(c, http.StatusGone, err, "Request has expired", nil)

	case errors.Is(err, commands.ErrServiceAtCapacity):
		httperr.AbortWithError(c, http.StatusConflict, err, "Service is at capacity", nil)

	case errors.Is(err, commands.ErrChildAlreadyCheckedIn):
		httperr.AbortWithError(c, http.StatusConflict, err, "Child is already checked in to this service today", nil)

	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
