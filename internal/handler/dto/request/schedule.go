package request

import "clinic-scheduler/internal/domain/schedule"

type ResolveLocalTimeRequest struct {
	Date string `json:"date" binding:"required"` // 2006-01-02
	Time string `json:"time" binding:"required"` // 15:04 or 15:04:05
	Zone string `json:"zone" binding:"required"`
}

func (r ResolveLocalTimeRequest) ToLocalMoment() (schedule.LocalMoment, error) {
	return parseLocalMoment(r.Date, r.Time)
}
