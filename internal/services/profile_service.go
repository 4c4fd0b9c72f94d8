package services

import (
	"context"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/session"
	"priestconnect-api/internal/store"
)

// ProfileService manages the one-profile-per-user records. Absence of a
// profile is a valid state meaning "not yet configured".
type ProfileService struct {
	Store DocStore
}

func (s ProfileService) priestProfileDoc(ctx context.Context, userID string) (store.Document, error) {
	return s.Store.QueryOne(ctx, store.PriestProfiles, []domain.Predicate{domain.Eq("userId", userID)})
}

// PriestProfileByUser returns the profile for the given priest user id.
func (s ProfileService) PriestProfileByUser(ctx context.Context, userID string) (models.PriestProfile, error) {
	doc, err := s.priestProfileDoc(ctx, userID)
	if err != nil {
		return models.PriestProfile{}, err
	}
	var p models.PriestProfile
	if err := doc.Decode(&p); err != nil {
		return models.PriestProfile{}, domain.PersistenceError{Op: "decode priest profile", Err: err}
	}
	return p, nil
}

// UpsertPriestProfile creates the profile on first save and merges updates
// afterwards. Only the priest's own profile is writable.
func (s ProfileService) UpsertPriestProfile(ctx context.Context, sess session.Context, in models.InsertPriestProfile) (models.PriestProfile, error) {
	if sess.Role != models.RolePriest {
		return models.PriestProfile{}, domain.ForbiddenError{Msg: "priest role required"}
	}
	in.UserID = sess.UserID
	if err := in.Validate(); err != nil {
		return models.PriestProfile{}, err
	}

	existing, err := s.priestProfileDoc(ctx, sess.UserID)
	switch {
	case err == nil:
		if err := s.Store.Update(ctx, store.PriestProfiles, existing.ID, in); err != nil {
			return models.PriestProfile{}, err
		}
	case domain.IsNotFound(err):
		if _, err := s.Store.Create(ctx, store.PriestProfiles, in); err != nil {
			return models.PriestProfile{}, err
		}
	default:
		return models.PriestProfile{}, err
	}

	return s.PriestProfileByUser(ctx, sess.UserID)
}

func (s ProfileService) institutionProfileDoc(ctx context.Context, userID string) (store.Document, error) {
	return s.Store.QueryOne(ctx, store.InstitutionProfiles, []domain.Predicate{domain.Eq("userId", userID)})
}

// InstitutionProfileByUser returns the profile for the given institution
// user id.
func (s ProfileService) InstitutionProfileByUser(ctx context.Context, userID string) (models.InstitutionProfile, error) {
	doc, err := s.institutionProfileDoc(ctx, userID)
	if err != nil {
		return models.InstitutionProfile{}, err
	}
	var p models.InstitutionProfile
	if err := doc.Decode(&p); err != nil {
		return models.InstitutionProfile{}, domain.PersistenceError{Op: "decode institution profile", Err: err}
	}
	return p, nil
}

// UpsertInstitutionProfile mirrors UpsertPriestProfile for the institution
// role.
func (s ProfileService) UpsertInstitutionProfile(ctx context.Context, sess session.Context, in models.InsertInstitutionProfile) (models.InstitutionProfile, error) {
	if sess.Role != models.RoleInstitution {
		return models.InstitutionProfile{}, domain.ForbiddenError{Msg: "institution role required"}
	}
	in.UserID = sess.UserID
	if err := in.Validate(); err != nil {
		return models.InstitutionProfile{}, err
	}

	existing, err := s.institutionProfileDoc(ctx, sess.UserID)
	switch {
	case err == nil:
		if err := s.Store.Update(ctx, store.InstitutionProfiles, existing.ID, in); err != nil {
			return models.InstitutionProfile{}, err
		}
	case domain.IsNotFound(err):
		if _, err := s.Store.Create(ctx, store.InstitutionProfiles, in); err != nil {
			return models.InstitutionProfile{}, err
		}
	default:
		return models.InstitutionProfile{}, err
	}

	return s.InstitutionProfileByUser(ctx, sess.UserID)
}
