package domain

import (
	"errors"
	"time"
)

// Window identifies one of the fixed daily attendance windows.
type Window string

const (
	WindowMorningEntry   Window = "morning_entry"
	WindowMorningExit    Window = "morning_exit"
	WindowAfternoonEntry Window = "afternoon_entry"
	WindowAfternoonExit  Window = "afternoon_exit"

	// WindowNone marks a time that falls outside every configured window.
	WindowNone Window = ""
)

// WindowOrder lists the windows in their canonical daily order.
var WindowOrder = []Window{
	WindowMorningEntry,
	WindowMorningExit,
	WindowAfternoonEntry,
	WindowAfternoonExit,
}

// Valid reports whether w is one of the known windows.
func (w Window) Valid() bool {
	switch w {
	case WindowMorningEntry, WindowMorningExit, WindowAfternoonEntry, WindowAfternoonExit:
		return true
	}
	return false
}

// IsEntry reports whether w is a check-in window. Entry and exit windows
// follow different status rules: only entries can be late, only exits can
// be early departures.
func (w Window) IsEntry() bool {
	return w == WindowMorningEntry || w == WindowAfternoonEntry
}

// Label returns a human-readable name for the window.
func (w Window) Label() string {
	switch w {
	case WindowMorningEntry:
		return "morning entry"
	case WindowMorningExit:
		return "morning exit"
	case WindowAfternoonEntry:
		return "afternoon entry"
	case WindowAfternoonExit:
		return "afternoon exit"
	}
	return "unassigned"
}

// Status is the result of evaluating a registration time against the
// configured window cutoffs.
type Status string

const (
	StatusOnTime         Status = "on_time"
	StatusLate           Status = "late"
	StatusEarlyDeparture Status = "early_departure"
	// StatusOmission marks an entry registered after the late cutoff. The
	// record is still persisted so the check-in evidence is not lost.
	StatusOmission Status = "omission"
	// StatusNone is the neutral status for windows without configured cutoffs.
	StatusNone Status = "none"
)

var ErrPersonNotFound = errors.New("person not found")
var ErrEncodingNotFound = errors.New("facial encoding not found")
var ErrIdentityNotConfirmed = errors.New("identity not confirmed")
var ErrEmbeddingInvalid = errors.New("embedding out of accepted bounds")
var ErrNoEnrolledUsers = errors.New("no enrolled users")
var ErrNoConfidentMatch = errors.New("no confident match")
var ErrAmbiguousMatch = errors.New("ambiguous match")
var ErrNoActiveWindow = errors.New("no attendance window covers this time")
var ErrDuplicateRegistration = errors.New("attendance already registered for this window")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrRequestNotFound = errors.New("request not found")
var ErrInvalidRequestState = errors.New("invalid request state transition")

// DateLayout is the calendar-date format used to bucket attendance records.
const DateLayout = "2006-01-02"

// AttendanceRecord is a single check-in or check-out event. At most one
// record may exist per (person, date, window); the registration path
// enforces this with a read-before-write check and the storage layer backs
// it with a unique index.
type AttendanceRecord struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	PersonID  string    `json:"person_id" bson:"person_id"`
	Date      string    `json:"date" bson:"date"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Window    Window    `json:"window" bson:"window"`
	Status    Status    `json:"status" bson:"status"`
	Reason    string    `json:"reason,omitempty" bson:"reason,omitempty"`
}
