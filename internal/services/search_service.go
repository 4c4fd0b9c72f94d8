package services

import (
	"context"
	"strings"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/session"
	"priestconnect-api/internal/store"
)

// SearchService answers the institution-side priest search. Priests have no
// read access to other priests' profiles.
type SearchService struct {
	Store DocStore
}

// Priests returns profiles filtered by offered service and location
// substring. Empty filters match everything.
func (s SearchService) Priests(ctx context.Context, sess session.Context, serviceType, location string) ([]models.PriestProfile, error) {
	if sess.Role != models.RoleInstitution {
		return nil, domain.ForbiddenError{Msg: "institution role required"}
	}

	preds := []domain.Predicate{}
	serviceType = strings.TrimSpace(serviceType)
	if serviceType != "" {
		if !models.IsServiceType(serviceType) {
			return nil, domain.ValidationError{Field: "service", Msg: "unknown service type"}
		}
		preds = append(preds, domain.Contains("services", serviceType))
	}
	location = strings.TrimSpace(location)
	if location != "" {
		preds = append(preds, domain.Like("location", location))
	}

	docs, err := s.Store.Query(ctx, store.PriestProfiles, preds)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.PriestProfile](docs)
}
