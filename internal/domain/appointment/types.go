package appointment

type Status string

const (
	StatusBooked   Status = "booked"
	StatusCanceled Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusBooked, StatusCanceled:
		return true
	default:
		return false
	}
}
