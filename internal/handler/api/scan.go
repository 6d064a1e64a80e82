package api

import (
	"net/http"

	reqdto "kidcheck/internal/handler/dto/request"
	resdto "kidcheck/internal/handler/dto/response"
	"kidcheck/internal/handler/httperr"
	"kidcheck/internal/handler/middleware"
	"kidcheck/internal/usecase/commands"
	"kidcheck/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// ScanHandler serves the staff side of the workflow: resolve a scanned
// QR token and approve or reject the request behind it.
type ScanHandler struct {
	cmds commands.CheckInCommands
	q    queries.CheckInQueries
}

func NewScanHandler(cmds commands.CheckInCommands, q queries.CheckInQueries) *ScanHandler {
	return &ScanHandler{cmds: cmds, q: q}
}

// @Summary Resolve scanned token
// @Description Show request details, child safety flags included, for a scanned QR token
// @Tags scan
// @Produce json
// @Security BearerAuth
// @Param token path string true "QR token"
// @Success 200 {object} resdto.ScanDetailsResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /checkin/scan/{token} [get]
func (h *ScanHandler) GetDetails(c *gin.Context) {
	view, err := h.q.GetScanDetails(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondCheckinError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromScanDetailsView(view))
}

// @Summary Approve check-in request
// @Description Approve a pending request and create the attendance record
// @Tags scan
// @Produce json
// @Security BearerAuth
// @Param token path string true "QR token"
// @Success 200 {object} resdto.ApprovalResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkin/scan/{token}/approve [post]
func (h *ScanHandler) Approve(c *gin.Context) {
	staffID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrStaffNotFound, "Unauthorized", nil)
		return
	}

	result, err := h.cmds.Approve(c.Request.Context(), c.Param("token"), staffID)
	if err != nil {
		respondCheckinError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.ApprovalResponse{
		AttendanceID: *result.AttendanceID,
		Request:      resdto.FromRequestView(result.Request),
	})
}

// @Summary Reject check-in request
// @Description Reject a pending request with a reason
// @Tags scan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param token path string true "QR token"
// @Param request body reqdto.RejectCheckinRequest true "Rejection"
// @Success 200 {object} resdto.CheckinRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkin/scan/{token}/reject [post]
func (h *ScanHandler) Reject(c *gin.Context) {
	staffID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrStaffNotFound, "Unauthorized", nil)
		return
	}

	var req reqdto.RejectCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Reject(c.Request.Context(), c.Param("token"), staffID, req.Reason)
	if err != nil {
		respondCheckinError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(result.Request))
}
