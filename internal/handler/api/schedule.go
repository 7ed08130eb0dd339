package api

import (
	"errors"
	"net/http"

	"clinic-scheduler/internal/handler/dto/request"
	"clinic-scheduler/internal/handler/dto/response"
	"clinic-scheduler/internal/handler/httperr"
	"clinic-scheduler/internal/pkg/errs"
	"clinic-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	queries queries.ScheduleQueries
}

func NewScheduleHandler(scheduleQueries queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{queries: scheduleQueries}
}

// Resolve classifies a local wall-clock time against a zone's DST rules.
// Gap readings resolve to kind "gap" with no candidates; they only become
// errors when a booking actually targets them.
// POST /api/schedule/resolve
func (h *ScheduleHandler) Resolve(c *gin.Context) {
	var req request.ResolveLocalTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request body", nil)
		return
	}

	local, err := req.ToLocalMoment()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date or time format", nil)
		return
	}

	view, err := h.queries.Resolve(c.Request.Context(), local, req.Zone)
	if err != nil {
		if errors.Is(err, errs.ErrUnknownTimeZone) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown time zone", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to resolve local time", nil)
		return
	}

	resp, err := response.ToResolutionResponse(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
