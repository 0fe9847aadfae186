package valueobjects

import "fmt"

type Status string

const (
	StatusActive  Status = "active"
	StatusUsed    Status = "used"
	StatusExpired Status = "expired"
)

var validStatuses = map[Status]bool{
	StatusActive:  true,
	StatusUsed:    true,
	StatusExpired: true,
}

// The store only ever writes active→used. StatusExpired exists in the enum
// because historical records may carry it, but expiry is normally a verdict
// derived from validUntil at read time, never a persisted transition.
var statusTransitions = map[Status][]Status{
	StatusActive:  {StatusUsed},
	StatusUsed:    {},
	StatusExpired: {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) CanTransitionTo(newStatus Status) bool {
	allowedTransitions, ok := statusTransitions[s]
	if !ok {
		return false
	}

	for _, allowed := range allowedTransitions {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (s Status) IsActive() bool {
	return s == StatusActive
}

func (s Status) IsUsed() bool {
	return s == StatusUsed
}

func (s Status) IsExpired() bool {
	return s == StatusExpired
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return status, nil
}
