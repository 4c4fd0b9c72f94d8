package models

import (
	"sort"
	"strings"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/utils"
)

// TimeSlot is one bookable window within a day. Times are "HH:MM".
type TimeSlot struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// Availability lives in the "availability" collection, keyed logically by
// (priestId, date).
type Availability struct {
	ID        string     `json:"id,omitempty"`
	PriestID  string     `json:"priestId"`
	Date      string     `json:"date"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

// InsertAvailability is the upsert payload for one day of slots. PriestID is
// filled from the session.
type InsertAvailability struct {
	PriestID  string     `json:"priestId,omitempty"`
	Date      string     `json:"date"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

func (in *InsertAvailability) Validate() error {
	in.Date = strings.TrimSpace(in.Date)
	if _, err := utils.ParseDate(in.Date); err != nil {
		return domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD", Err: err}
	}

	for i := range in.TimeSlots {
		slot := &in.TimeSlots[i]
		slot.StartTime = strings.TrimSpace(slot.StartTime)
		slot.EndTime = strings.TrimSpace(slot.EndTime)

		start, err := utils.ParseClock(slot.StartTime)
		if err != nil {
			return domain.ValidationError{Field: "timeSlots", Msg: "startTime must be HH:MM", Err: err}
		}
		end, err := utils.ParseClock(slot.EndTime)
		if err != nil {
			return domain.ValidationError{Field: "timeSlots", Msg: "endTime must be HH:MM", Err: err}
		}
		if !end.After(start) {
			return domain.ValidationError{Field: "timeSlots", Msg: "startTime must be before endTime"}
		}
	}

	// slots within one date must not overlap
	sorted := make([]TimeSlot, len(in.TimeSlots))
	copy(sorted, in.TimeSlots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartTime < sorted[j].StartTime })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartTime < sorted[i-1].EndTime {
			return domain.ValidationError{Field: "timeSlots", Msg: "slots overlap"}
		}
	}
	return nil
}
