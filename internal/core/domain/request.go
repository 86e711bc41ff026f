package domain

import "time"

// RequestState is the lifecycle state of an absence or overtime request.
type RequestState string

const (
	RequestPending   RequestState = "pending"
	RequestApproved  RequestState = "approved"
	RequestDenied    RequestState = "denied"
	RequestCancelled RequestState = "cancelled"
)

// validRequestTransitions defines the allowed state machine transitions.
// Only pending requests can be resolved; resolved requests are final.
var validRequestTransitions = map[RequestState][]RequestState{
	RequestPending: {RequestApproved, RequestDenied, RequestCancelled},
}

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s RequestState) CanTransitionTo(next RequestState) bool {
	for _, allowed := range validRequestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known request state.
func (s RequestState) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestDenied, RequestCancelled:
		return true
	}
	return false
}

// AbsenceRequest is a justified-absence petition for a date range.
// StartTime/EndTime are optional and only meaningful for partial-day absences.
type AbsenceRequest struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	PersonID    string       `json:"person_id" bson:"person_id"`
	Kind        string       `json:"kind" bson:"kind"`
	StartDate   string       `json:"start_date" bson:"start_date"`
	EndDate     string       `json:"end_date" bson:"end_date"`
	StartTime   string       `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime     string       `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Reason      string       `json:"reason" bson:"reason"`
	State       RequestState `json:"state" bson:"state"`
	RequestedAt time.Time    `json:"requested_at" bson:"requested_at"`
}

// OvertimeRequest is a petition for extra hours on a given work date.
type OvertimeRequest struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	PersonID    string       `json:"person_id" bson:"person_id"`
	WorkDate    string       `json:"work_date" bson:"work_date"`
	Hours       float64      `json:"hours" bson:"hours"`
	Reason      string       `json:"reason" bson:"reason"`
	State       RequestState `json:"state" bson:"state"`
	RequestedAt time.Time    `json:"requested_at" bson:"requested_at"`
}
