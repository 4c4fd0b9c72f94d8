package models

import (
	"strings"
	"time"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/utils"
)

// Booking status values. Transition rules live in the booking service; this
// package only knows the closed value set.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusCompleted = "completed"
)

func IsBookingStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether the state machine allows from -> to.
// pending -> accepted|declined, accepted -> completed; declined and
// completed are terminal.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusAccepted || to == StatusDeclined
	case StatusAccepted:
		return to == StatusCompleted
	}
	return false
}

// Booking lives in the "bookings" collection. InstitutionID and PriestID are
// user ids whose profiles must exist at creation time.
type Booking struct {
	ID            string    `json:"id,omitempty"`
	InstitutionID string    `json:"institutionId"`
	PriestID      string    `json:"priestId"`
	ServiceType   string    `json:"serviceType"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Location      string    `json:"location"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Participant reports whether the given user id is one of the two parties on
// the booking.
func (b Booking) Participant(userID string) bool {
	return userID != "" && (userID == b.PriestID || userID == b.InstitutionID)
}

// InsertBooking is the request payload for a new booking. InstitutionID is
// filled from the session, never from the client.
type InsertBooking struct {
	InstitutionID string `json:"institutionId,omitempty"`
	PriestID      string `json:"priestId"`
	ServiceType   string `json:"serviceType"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Location      string `json:"location"`
	Notes         string `json:"notes,omitempty"`
}

func (in *InsertBooking) Validate() error {
	in.PriestID = strings.TrimSpace(in.PriestID)
	in.ServiceType = strings.TrimSpace(in.ServiceType)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Location = strings.TrimSpace(in.Location)
	in.Notes = strings.TrimSpace(in.Notes)

	if in.PriestID == "" {
		return domain.ValidationError{Field: "priestId", Msg: "required"}
	}
	if !IsServiceType(in.ServiceType) {
		return domain.ValidationError{Field: "serviceType", Msg: "unknown service type"}
	}
	if _, err := utils.ParseDate(in.Date); err != nil {
		return domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD", Err: err}
	}
	if _, err := utils.ParseClock(in.Time); err != nil {
		return domain.ValidationError{Field: "time", Msg: "must be HH:MM", Err: err}
	}
	if in.Location == "" {
		return domain.ValidationError{Field: "location", Msg: "required"}
	}
	return nil
}
