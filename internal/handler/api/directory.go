package api

import (
	"net/http"

	resdto "kidcheck/internal/handler/dto/response"
	"kidcheck/internal/handler/httperr"
	"kidcheck/internal/handler/middleware"
	"kidcheck/internal/usecase/commands"
	"kidcheck/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DirectoryHandler struct {
	q queries.DirectoryQueries
}

func NewDirectoryHandler(q queries.DirectoryQueries) *DirectoryHandler {
	return &DirectoryHandler{q: q}
}

// @Summary List own children
// @Description List the children the caller is a registered parent of
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]resdto.ChildResponse
// @Failure 401 {object} map[string]string
// @Router /children [get]
func (h *DirectoryHandler) ListChildren(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrRequesterNotFound, "Unauthorized", nil)
		return
	}

	children, err := h.q.ListChildrenOfParent(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"children": resdto.FromChildViewList(children)})
}

// @Summary List active services
// @Description List service sessions currently accepting check-in requests
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]resdto.ServiceResponse
// @Failure 401 {object} map[string]string
// @Router /services [get]
func (h *DirectoryHandler) ListServices(c *gin.Context) {
	services, err := h.q.ListActiveServices(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": resdto.FromServiceViewList(services)})
}
