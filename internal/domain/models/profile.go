package models

import (
	"strings"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/utils"
)

// Service types a priest can offer. serviceType on a booking is restricted to
// the same set.
const (
	ServiceMass                = "mass"
	ServiceConfession          = "confession"
	ServicePrayerBlessings     = "prayer_blessings"
	ServiceRecollectionRetreat = "recollection_retreat"
)

var ServiceTypes = []string{
	ServiceMass,
	ServiceConfession,
	ServicePrayerBlessings,
	ServiceRecollectionRetreat,
}

func IsServiceType(s string) bool {
	for _, v := range ServiceTypes {
		if s == v {
			return true
		}
	}
	return false
}

// PriestProfile lives in the "priestProfiles" collection, one per priest user.
type PriestProfile struct {
	ID       string   `json:"id,omitempty"`
	UserID   string   `json:"userId"`
	Name     string   `json:"name"`
	Parish   string   `json:"parish"`
	Location string   `json:"location"`
	Services []string `json:"services"`
	Bio      string   `json:"bio,omitempty"`
	Phone    string   `json:"phone,omitempty"`
}

// OffersService reports whether the profile lists the given service type.
func (p PriestProfile) OffersService(serviceType string) bool {
	for _, s := range p.Services {
		if s == serviceType {
			return true
		}
	}
	return false
}

// InsertPriestProfile is the create/update payload for a priest profile.
// UserID is filled from the session, never from the client. Optional fields
// carry no omitempty: the payload doubles as a merge patch, and dropping an
// empty key would make clearing the field impossible.
type InsertPriestProfile struct {
	UserID   string   `json:"userId,omitempty"`
	Name     string   `json:"name"`
	Parish   string   `json:"parish"`
	Location string   `json:"location"`
	Services []string `json:"services"`
	Bio      string   `json:"bio"`
	Phone    string   `json:"phone"`
}

func (in *InsertPriestProfile) Validate() error {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Parish = utils.NormalizeSpace(in.Parish)
	in.Location = utils.NormalizeSpace(in.Location)
	in.Bio = strings.TrimSpace(in.Bio)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	if in.Parish == "" {
		return domain.ValidationError{Field: "parish", Msg: "required"}
	}
	if in.Location == "" {
		return domain.ValidationError{Field: "location", Msg: "required"}
	}

	seen := map[string]bool{}
	clean := make([]string, 0, len(in.Services))
	for _, s := range in.Services {
		s = strings.TrimSpace(s)
		if !IsServiceType(s) {
			return domain.ValidationError{Field: "services", Msg: "unknown service type " + s}
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		clean = append(clean, s)
	}
	in.Services = clean
	return nil
}

// InstitutionProfile lives in the "institutionProfiles" collection.
type InstitutionProfile struct {
	ID            string `json:"id,omitempty"`
	UserID        string `json:"userId"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Location      string `json:"location"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone,omitempty"`
}

// InsertInstitutionProfile is the create/update payload for an institution
// profile. Phone carries no omitempty for the same merge-patch reason as
// the priest payload.
type InsertInstitutionProfile struct {
	UserID        string `json:"userId,omitempty"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Location      string `json:"location"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
}

func (in *InsertInstitutionProfile) Validate() error {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Address = utils.NormalizeSpace(in.Address)
	in.Location = utils.NormalizeSpace(in.Location)
	in.ContactPerson = utils.NormalizeSpace(in.ContactPerson)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	if in.Address == "" {
		return domain.ValidationError{Field: "address", Msg: "required"}
	}
	if in.Location == "" {
		return domain.ValidationError{Field: "location", Msg: "required"}
	}
	if in.ContactPerson == "" {
		return domain.ValidationError{Field: "contactPerson", Msg: "required"}
	}
	return nil
}
