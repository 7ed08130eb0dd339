package response

import (
	"time"

	"clinic-scheduler/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ResolutionCandidate struct {
	Offset     string    `json:"offset"`
	InstantUTC time.Time `json:"instant_utc"`
	UnixMilli  int64     `json:"unix_milli"`
	DSTActive  bool      `json:"dst_active"`
}

type ResolutionResponse struct {
	Local      string                `json:"local"`
	Zone       string                `json:"zone"`
	Kind       string                `json:"kind"`
	Candidates []ResolutionCandidate `json:"candidates"`
}

func ToResolutionResponse(view *queries.ResolutionView) (ResolutionResponse, error) {
	var resp ResolutionResponse
	if err := copier.Copy(&resp, view); err != nil {
		return ResolutionResponse{}, err
	}
	if resp.Candidates == nil {
		resp.Candidates = []ResolutionCandidate{}
	}
	return resp, nil
}
