package response

import (
	"time"

	"clinic-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ZonedTime struct {
	Zone      string `json:"zone"`
	Local     string `json:"local"`
	Offset    string `json:"offset"`
	DSTActive bool   `json:"dst_active"`
}

type AppointmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	ResourceID      uuid.UUID  `json:"resource_id"`
	ResourceName    string     `json:"resource_name"`
	PatientID       uuid.UUID  `json:"patient_id"`
	StartUTC        time.Time  `json:"start_utc"`
	EndUTC          time.Time  `json:"end_utc"`
	DurationMin     int        `json:"duration_min"`
	Status          string     `json:"status"`
	RequestedZone   string     `json:"requested_zone"`
	AmbiguityPolicy string     `json:"ambiguity_policy"`
	ClinicStart     ZonedTime  `json:"clinic_start"`
	ViewerStart     *ZonedTime `json:"viewer_start,omitempty"`
	Note            *string    `json:"note,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type AppointmentListItem struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	StartUTC     time.Time `json:"start_utc"`
	EndUTC       time.Time `json:"end_utc"`
	Status       string    `json:"status"`
	ClinicStart  ZonedTime `json:"clinic_start"`
	CreatedAt    time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentListItem `json:"appointments"`
	Total        int                   `json:"total"`
}

type BookedSlot struct {
	StartUTC   time.Time `json:"start_utc"`
	EndUTC     time.Time `json:"end_utc"`
	StartLocal string    `json:"start_local"`
	EndLocal   string    `json:"end_local"`
}

type DayScheduleResponse struct {
	ResourceID uuid.UUID    `json:"resource_id"`
	Date       string       `json:"date"`
	Zone       string       `json:"zone"`
	Slots      []BookedSlot `json:"slots"`
}

func ToAppointmentResponse(view *queries.AppointmentView) (AppointmentResponse, error) {
	var resp AppointmentResponse
	if err := copier.Copy(&resp, view); err != nil {
		return AppointmentResponse{}, err
	}
	return resp, nil
}

func ToAppointmentListResponse(items []queries.AppointmentListItem) (AppointmentListResponse, error) {
	resp := AppointmentListResponse{
		Appointments: make([]AppointmentListItem, 0, len(items)),
		Total:        len(items),
	}
	if err := copier.Copy(&resp.Appointments, &items); err != nil {
		return AppointmentListResponse{}, err
	}
	return resp, nil
}

func ToDayScheduleResponse(view *queries.DayScheduleView) (DayScheduleResponse, error) {
	var resp DayScheduleResponse
	if err := copier.Copy(&resp, view); err != nil {
		return DayScheduleResponse{}, err
	}
	if resp.Slots == nil {
		resp.Slots = []BookedSlot{}
	}
	return resp, nil
}
