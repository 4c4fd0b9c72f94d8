package services

import (
	"context"
	"time"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/events"
	"priestconnect-api/internal/session"
	"priestconnect-api/internal/store"
	"priestconnect-api/internal/utils"
)

// Decision values for RespondToBooking.
const (
	DecisionAccept  = "accept"
	DecisionDecline = "decline"
)

// BookingService owns the booking lifecycle: pending -> accepted|declined,
// accepted -> completed. Concurrent conflicting writes resolve last-write-
// wins at the store; there is no optimistic locking.
type BookingService struct {
	Store DocStore
	Now   func() time.Time

	// Notify publishes a lifecycle event after a transition has been
	// persisted. Optional; wired to the AMQP publisher in main.
	Notify func(event string, b models.Booking)
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s BookingService) notify(event string, b models.Booking) {
	if s.Notify != nil {
		s.Notify(event, b)
	}
}

func (s BookingService) load(ctx context.Context, id string) (models.Booking, error) {
	doc, err := s.Store.Get(ctx, store.Bookings, id)
	if err != nil {
		return models.Booking{}, err
	}
	var b models.Booking
	if err := doc.Decode(&b); err != nil {
		return models.Booking{}, domain.PersistenceError{Op: "decode booking", Err: err}
	}
	return b, nil
}

// Request creates a booking in state pending on behalf of an institution
// actor. The target priest must have a profile offering the service type,
// and the institution must have configured its own profile.
func (s BookingService) Request(ctx context.Context, sess session.Context, in models.InsertBooking) (models.Booking, error) {
	if sess.Role != models.RoleInstitution {
		return models.Booking{}, domain.ForbiddenError{Msg: "institution role required"}
	}
	in.InstitutionID = sess.UserID
	if err := in.Validate(); err != nil {
		return models.Booking{}, err
	}

	priestDoc, err := s.Store.QueryOne(ctx, store.PriestProfiles, []domain.Predicate{domain.Eq("userId", in.PriestID)})
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Booking{}, domain.NotFoundError{Resource: "priest profile"}
		}
		return models.Booking{}, err
	}
	var priest models.PriestProfile
	if err := priestDoc.Decode(&priest); err != nil {
		return models.Booking{}, domain.PersistenceError{Op: "decode priest profile", Err: err}
	}
	if !priest.OffersService(in.ServiceType) {
		return models.Booking{}, domain.InvalidServiceError{Service: in.ServiceType}
	}

	if _, err := s.Store.QueryOne(ctx, store.InstitutionProfiles, []domain.Predicate{domain.Eq("userId", sess.UserID)}); err != nil {
		if domain.IsNotFound(err) {
			return models.Booking{}, domain.NotFoundError{Resource: "institution profile"}
		}
		return models.Booking{}, err
	}

	b := models.Booking{
		InstitutionID: in.InstitutionID,
		PriestID:      in.PriestID,
		ServiceType:   in.ServiceType,
		Date:          in.Date,
		Time:          in.Time,
		Location:      in.Location,
		Notes:         in.Notes,
		Status:        models.StatusPending,
		CreatedAt:     s.now(),
	}
	id, err := s.Store.Create(ctx, store.Bookings, b)
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = id

	utils.LogEvent("booking", "request", "id="+id)
	s.notify(events.BookingRequested, b)
	return b, nil
}

// Respond lets the referenced priest accept or decline a pending booking.
func (s BookingService) Respond(ctx context.Context, sess session.Context, bookingID, decision string) (models.Booking, error) {
	var target string
	switch decision {
	case DecisionAccept:
		target = models.StatusAccepted
	case DecisionDecline:
		target = models.StatusDeclined
	default:
		return models.Booking{}, domain.ValidationError{Field: "decision", Msg: "must be accept or decline"}
	}

	b, err := s.load(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if sess.UserID != b.PriestID {
		return models.Booking{}, domain.ForbiddenError{Msg: "only the requested priest may respond"}
	}
	if !models.CanTransition(b.Status, target) {
		return models.Booking{}, domain.IllegalTransitionError{From: b.Status, To: target}
	}

	if err := s.Store.Update(ctx, store.Bookings, bookingID, map[string]any{"status": target}); err != nil {
		return models.Booking{}, err
	}
	b.Status = target

	utils.LogEvent("booking", "respond", "id="+bookingID+" status="+target)
	if target == models.StatusAccepted {
		s.notify(events.BookingAccepted, b)
	} else {
		s.notify(events.BookingDeclined, b)
	}
	return b, nil
}

// Complete marks an accepted booking as carried out. Either party on the
// booking may do it.
func (s BookingService) Complete(ctx context.Context, sess session.Context, bookingID string) (models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if !b.Participant(sess.UserID) {
		return models.Booking{}, domain.ForbiddenError{Msg: "only booking participants may complete"}
	}
	if !models.CanTransition(b.Status, models.StatusCompleted) {
		return models.Booking{}, domain.IllegalTransitionError{From: b.Status, To: models.StatusCompleted}
	}

	if err := s.Store.Update(ctx, store.Bookings, bookingID, map[string]any{"status": models.StatusCompleted}); err != nil {
		return models.Booking{}, err
	}
	b.Status = models.StatusCompleted

	utils.LogEvent("booking", "complete", "id="+bookingID)
	s.notify(events.BookingCompleted, b)
	return b, nil
}

// RolePredicates builds the slice filter for the actor: priests see bookings
// addressed to them, institutions see bookings they created.
func RolePredicates(sess session.Context) []domain.Predicate {
	field := "institutionId"
	if sess.Role == models.RolePriest {
		field = "priestId"
	}
	return []domain.Predicate{domain.Eq(field, sess.UserID)}
}

// ListFor returns the actor's slice of the bookings collection.
func (s BookingService) ListFor(ctx context.Context, sess session.Context) ([]models.Booking, error) {
	docs, err := s.Store.Query(ctx, store.Bookings, RolePredicates(sess))
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Booking](docs)
}

// GetFor loads one booking, visible to its participants only.
func (s BookingService) GetFor(ctx context.Context, sess session.Context, bookingID string) (models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if !b.Participant(sess.UserID) {
		// hide existence from non-participants
		return models.Booking{}, domain.NotFoundError{Resource: "bookings record"}
	}
	return b, nil
}

// DashboardStats are the counters the dashboard cards show.
type DashboardStats struct {
	Upcoming int `json:"upcoming"`
	Accepted int `json:"accepted"`
	Pending  int `json:"pending"`
	Total    int `json:"total"`
}

// StatsFor derives the dashboard counters from the actor's booking slice.
func (s BookingService) StatsFor(ctx context.Context, sess session.Context) (DashboardStats, error) {
	bookings, err := s.ListFor(ctx, sess)
	if err != nil {
		return DashboardStats{}, err
	}

	today := utils.FormatDate(s.now())
	stats := DashboardStats{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case models.StatusAccepted:
			stats.Accepted++
			if b.Date > today {
				stats.Upcoming++
			}
		case models.StatusPending:
			stats.Pending++
		}
	}
	return stats, nil
}
