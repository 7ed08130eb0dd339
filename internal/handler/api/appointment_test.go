//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"clinic-scheduler/internal/domain/user"
	"clinic-scheduler/internal/handler/api"
	resdto "clinic-scheduler/internal/handler/dto/response"
	"clinic-scheduler/internal/pkg/errs"
	"clinic-scheduler/internal/usecase/queries"
	"clinic-scheduler/tests/common/builder"
	"clinic-scheduler/tests/common/helper"
	commandsmock "clinic-scheduler/tests/mock/commands"
	queriesmock "clinic-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AppointmentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAppointmentCommands
	mockQueries  *queriesmock.MockAppointmentQueries
	handler      *api.AppointmentHandler
	patientID    uuid.UUID
}

func (s *AppointmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAppointmentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAppointmentQueries(s.mockCtrl)
	s.handler = api.NewAppointmentHandler(s.mockCommands, s.mockQueries)
	s.patientID = uuid.New()

	authStub := func(c *gin.Context) {
		c.Set("user_id", s.patientID)
		c.Set("user_role", user.RolePatient)
	}

	s.router.POST("/appointments", authStub, s.handler.Create)
	s.router.GET("/appointments", authStub, s.handler.List)
	s.router.GET("/appointments/:id", authStub, s.handler.Get)
	s.router.DELETE("/appointments/:id", authStub, s.handler.Cancel)
	s.router.GET("/resources/:id/day", authStub, s.handler.DaySchedule)
}

func (s *AppointmentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAppointmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(AppointmentHandlerTestSuite))
}

func (s *AppointmentHandlerTestSuite) TestCreate() {
	url := "/appointments"
	b := builder.NewAppointmentBuilder()

	s.Run("success: returns 201 Created with the booked view", func() {
		view := b.BuildReadModel()
		s.mockCommands.EXPECT().Book(gomock.Any(), gomock.Any()).
			Return(view, nil).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildDTO(), "")

		var response resdto.AppointmentResponse
		helper.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal(view.StartUTC.UTC(), response.StartUTC.UTC())
		s.Equal("-04:00", response.ClinicStart.Offset)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name       string
			mutate     func(m map[string]any)
			expectCode int
		}{
			{name: "missing resource_id", mutate: helper.Field("resource_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing date", mutate: helper.Field("date", nil), expectCode: http.StatusBadRequest},
			{name: "missing time", mutate: helper.Field("time", nil), expectCode: http.StatusBadRequest},
			{name: "zero duration", mutate: helper.Field("duration_min", 0), expectCode: http.StatusBadRequest},
			{name: "malformed date", mutate: helper.Field("date", "06/10/2025"), expectCode: http.StatusBadRequest},
			{name: "malformed time", mutate: helper.Field("time", "9h30"), expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := map[string]any{
					"resource_id":  b.ResourceID.String(),
					"date":         b.Date,
					"time":         b.Time,
					"zone":         b.Zone,
					"duration_min": b.DurationMin,
				}
				tc.mutate(body)

				rec := helper.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})

	s.Run("error: booking failures map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "unknown resource", err: errs.ErrResourceNotFound, expectCode: http.StatusNotFound},
			{name: "unknown zone", err: errs.ErrUnknownTimeZone, expectCode: http.StatusBadRequest},
			{name: "gap local time", err: errs.ErrInvalidLocalTime, expectCode: http.StatusUnprocessableEntity},
			{name: "slot taken", err: errs.ErrSlotTaken, expectCode: http.StatusConflict},
			{name: "lead time violation", err: errs.ErrDomainValidation, expectCode: http.StatusUnprocessableEntity},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Book(gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := helper.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildDTO(), "")
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})
}

func (s *AppointmentHandlerTestSuite) TestGet() {
	b := builder.NewAppointmentBuilder()

	s.Run("success: returns 200 OK with viewer zone rendering", func() {
		view := b.BuildReadModel()
		view.ViewerStart = &queries.ZonedTimeView{
			Zone:      "Asia/Tokyo",
			Local:     "2025-06-10T22:30:00",
			Offset:    "+09:00",
			DSTActive: false,
		}
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), view.ID, s.patientID, user.RolePatient, "Asia/Tokyo").
			Return(view, nil).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/"+view.ID.String()+"?zone=Asia/Tokyo", nil, "")

		var response resdto.AppointmentResponse
		helper.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.ViewerStart)
		s.Equal("+09:00", response.ViewerStart.Offset)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := helper.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/not-a-uuid", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 404 when appointment does not exist", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), id, s.patientID, user.RolePatient, "").
			Return(nil, errs.ErrAppointmentNotFound).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/"+id.String(), nil, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("error: 403 when viewing someone else's appointment", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), id, s.patientID, user.RolePatient, "").
			Return(nil, errs.ErrNotAppointmentOwner).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/"+id.String(), nil, "")
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *AppointmentHandlerTestSuite) TestList() {
	s.Run("success: returns the patient's appointments", func() {
		item := builder.NewAppointmentBuilder().BuildListItem()
		s.mockQueries.EXPECT().
			ListForPatient(gomock.Any(), s.patientID).
			Return([]*queries.AppointmentListItem{item}, nil).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments", nil, "")

		var response resdto.AppointmentListResponse
		helper.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(1, response.Total)
		s.Equal(item.ID, response.Appointments[0].ID)
	})

	s.Run("success: empty list stays a list", func() {
		s.mockQueries.EXPECT().
			ListForPatient(gomock.Any(), s.patientID).
			Return([]*queries.AppointmentListItem{}, nil).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments", nil, "")

		var response resdto.AppointmentListResponse
		helper.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(0, response.Total)
		s.NotNil(response.Appointments)
	})
}

func (s *AppointmentHandlerTestSuite) TestCancel() {
	s.Run("success: returns 204 No Content", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), id, s.patientID, user.RolePatient).
			Return(nil).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodDelete, "/appointments/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 422 when already canceled", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), id, s.patientID, user.RolePatient).
			Return(errs.ErrDomainValidation).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodDelete, "/appointments/"+id.String(), nil, "")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("error: 403 when not the owner", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), id, s.patientID, user.RolePatient).
			Return(errs.ErrNotAppointmentOwner).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodDelete, "/appointments/"+id.String(), nil, "")
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *AppointmentHandlerTestSuite) TestDaySchedule() {
	resourceID := uuid.New()

	s.Run("success: returns booked slots for the day", func() {
		view := &queries.DayScheduleView{
			ResourceID: resourceID,
			Date:       "2025-06-10",
			Zone:       "America/New_York",
			Slots:      []queries.BookedSlotView{},
		}
		s.mockQueries.EXPECT().
			DaySchedule(gomock.Any(), resourceID, 2025, gomock.Any(), 10, "").
			Return(view, nil).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+resourceID.String()+"/day?date=2025-06-10", nil, "")

		var response resdto.DayScheduleResponse
		helper.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("America/New_York", response.Zone)
		s.NotNil(response.Slots)
	})

	s.Run("error: 400 when date is missing", func() {
		rec := helper.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+resourceID.String()+"/day", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 404 when resource does not exist", func() {
		s.mockQueries.EXPECT().
			DaySchedule(gomock.Any(), resourceID, 2025, gomock.Any(), 10, "").
			Return(nil, errs.ErrResourceNotFound).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+resourceID.String()+"/day?date=2025-06-10", nil, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
