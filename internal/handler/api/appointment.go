package api

import (
	"errors"
	"net/http"
	"time"

	"clinic-scheduler/internal/handler/dto/request"
	"clinic-scheduler/internal/handler/dto/response"
	"clinic-scheduler/internal/handler/httperr"
	"clinic-scheduler/internal/handler/middleware"
	"clinic-scheduler/internal/pkg/errs"
	"clinic-scheduler/internal/usecase/commands"
	"clinic-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	commands commands.AppointmentCommands
	queries  queries.AppointmentQueries
}

func NewAppointmentHandler(
	appointmentCommands commands.AppointmentCommands,
	appointmentQueries queries.AppointmentQueries,
) *AppointmentHandler {
	return &AppointmentHandler{
		commands: appointmentCommands,
		queries:  appointmentQueries,
	}
}

// Create books an appointment for the authenticated patient.
// POST /api/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req request.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request body", nil)
		return
	}

	local, err := req.ToLocalMoment()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date or time format", nil)
		return
	}

	patientID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user context"), "Authentication required", nil)
		return
	}

	view, err := h.commands.Book(c.Request.Context(), commands.BookAppointmentParams{
		ResourceID:  req.ResourceID,
		PatientID:   patientID,
		Local:       local,
		Zone:        req.Zone,
		DurationMin: req.DurationMin,
		Policy:      req.Policy(),
		Note:        req.Note,
	})
	if err != nil {
		h.abortBookingError(c, err)
		return
	}

	resp, err := response.ToAppointmentResponse(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AppointmentHandler) abortBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrResourceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
	case errors.Is(err, errs.ErrUnknownTimeZone):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown time zone", nil)
	case errors.Is(err, errs.ErrInvalidLocalTime):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err,
			"Requested local time does not exist in this zone", gin.H{"kind": "gap"})
	case errors.Is(err, errs.ErrInvalidTimeSlot):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time slot", nil)
	case errors.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Appointment rejected", nil)
	case errors.Is(err, errs.ErrSlotTaken):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot already booked", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to book appointment", nil)
	}
}

// Get returns one appointment, optionally rendered for ?zone=.
// GET /api/appointments/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid appointment ID", nil)
		return
	}

	viewerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user context"), "Authentication required", nil)
		return
	}
	viewerRole, _ := middleware.GetUserRole(c)

	view, err := h.queries.GetByID(c.Request.Context(), id, viewerID, viewerRole, c.Query("zone"))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrAppointmentNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Appointment not found", nil)
		case errors.Is(err, errs.ErrNotAppointmentOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to view this appointment", nil)
		case errors.Is(err, errs.ErrUnknownTimeZone):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown time zone", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to get appointment", nil)
		}
		return
	}

	resp, err := response.ToAppointmentResponse(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns the authenticated patient's appointments.
// GET /api/appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	patientID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user context"), "Authentication required", nil)
		return
	}

	items, err := h.queries.ListForPatient(c.Request.Context(), patientID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list appointments", nil)
		return
	}

	views := make([]queries.AppointmentListItem, 0, len(items))
	for _, item := range items {
		views = append(views, *item)
	}
	resp, err := response.ToAppointmentListResponse(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel marks an appointment canceled. Patients may cancel their own;
// staff and admins may cancel any.
// DELETE /api/appointments/:id
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid appointment ID", nil)
		return
	}

	requesterID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user context"), "Authentication required", nil)
		return
	}
	requesterRole, _ := middleware.GetUserRole(c)

	if err := h.commands.Cancel(c.Request.Context(), id, requesterID, requesterRole); err != nil {
		switch {
		case errors.Is(err, errs.ErrAppointmentNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Appointment not found", nil)
		case errors.Is(err, errs.ErrNotAppointmentOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to cancel this appointment", nil)
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Appointment already canceled", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to cancel appointment", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// DaySchedule lists booked slots for a resource on one local day.
// GET /api/resources/:id/day?date=2006-01-02&zone=...
func (h *AppointmentHandler) DaySchedule(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource ID", nil)
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing date (want YYYY-MM-DD)", nil)
		return
	}

	view, err := h.queries.DaySchedule(c.Request.Context(), resourceID, date.Year(), date.Month(), date.Day(), c.Query("zone"))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrResourceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
		case errors.Is(err, errs.ErrUnknownTimeZone):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown time zone", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load day schedule", nil)
		}
		return
	}

	resp, err := response.ToDayScheduleResponse(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
