package models

import (
	"strings"
	"time"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/utils"
)

const (
	RolePriest      = "priest"
	RoleInstitution = "institution"
)

// User is the account record stored in the "users" collection. Role is fixed
// at registration and never updated afterwards.
type User struct {
	ID           string    `json:"id,omitempty"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public strips credentials for API responses.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// InsertUser is the registration payload.
type InsertUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

func IsRole(s string) bool {
	return s == RolePriest || s == RoleInstitution
}

func (in *InsertUser) Validate() error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = utils.NormalizeSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)

	if in.Email == "" {
		return domain.ValidationError{Field: "email", Msg: "required"}
	}
	if !strings.Contains(in.Email, "@") || strings.ContainsAny(in.Email, " \t") {
		return domain.ValidationError{Field: "email", Msg: "malformed address"}
	}
	if len(in.Password) < 8 {
		return domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	if in.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	if !IsRole(in.Role) {
		return domain.ValidationError{Field: "role", Msg: "must be priest or institution"}
	}
	return nil
}
