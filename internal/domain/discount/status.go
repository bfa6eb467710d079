package discount

import "errors"

var ErrInvalidScheduleStatus = errors.New("invalid schedule status")

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// completed and cancelled are terminal; a schedule never leaves them.
var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusActive: true, StatusCancelled: true},
	StatusActive:    {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted: {},
	StatusCancelled: {},
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidScheduleStatus
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func (s Status) IsTerminal() bool {
	return len(validNext[s]) == 0
}

func (s Status) String() string {
	return string(s)
}
