package services

import (
	"context"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/session"
	"priestconnect-api/internal/store"
)

// AvailabilityService keeps per-priest daily slot lists. It does not check
// slots against existing bookings; a priest can be double-booked.
type AvailabilityService struct {
	Store DocStore
}

// Set upserts the slot list for one date on the acting priest's calendar.
func (s AvailabilityService) Set(ctx context.Context, sess session.Context, in models.InsertAvailability) (models.Availability, error) {
	if sess.Role != models.RolePriest {
		return models.Availability{}, domain.ForbiddenError{Msg: "priest role required"}
	}
	in.PriestID = sess.UserID
	if err := in.Validate(); err != nil {
		return models.Availability{}, err
	}

	preds := []domain.Predicate{
		domain.Eq("priestId", sess.UserID),
		domain.Eq("date", in.Date),
	}
	existing, err := s.Store.QueryOne(ctx, store.Availability, preds)
	switch {
	case err == nil:
		if err := s.Store.Update(ctx, store.Availability, existing.ID, in); err != nil {
			return models.Availability{}, err
		}
	case domain.IsNotFound(err):
		if _, err := s.Store.Create(ctx, store.Availability, in); err != nil {
			return models.Availability{}, err
		}
	default:
		return models.Availability{}, err
	}

	doc, err := s.Store.QueryOne(ctx, store.Availability, preds)
	if err != nil {
		return models.Availability{}, err
	}
	var out models.Availability
	if err := doc.Decode(&out); err != nil {
		return models.Availability{}, domain.PersistenceError{Op: "decode availability", Err: err}
	}
	return out, nil
}

// ListForPriest returns every availability day recorded for the priest.
// Readable by any authenticated actor so institutions can see calendars.
func (s AvailabilityService) ListForPriest(ctx context.Context, priestID string) ([]models.Availability, error) {
	docs, err := s.Store.Query(ctx, store.Availability, []domain.Predicate{domain.Eq("priestId", priestID)})
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Availability](docs)
}
