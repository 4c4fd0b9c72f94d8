package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/session"
	"priestconnect-api/internal/store"
	"priestconnect-api/internal/utils"
)

// ErrInvalidCredentials deliberately does not say whether the email exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	Store  DocStore
	Secret []byte
	Now    func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// Register creates the user record with the caller-supplied role and name
// and returns a signed session token. Role is never updatable afterwards.
func (s AuthService) Register(ctx context.Context, in models.InsertUser) (models.User, string, error) {
	if err := in.Validate(); err != nil {
		return models.User{}, "", err
	}

	if _, err := s.Store.QueryOne(ctx, store.Users, []domain.Predicate{domain.Eq("email", in.Email)}); err == nil {
		return models.User{}, "", domain.ValidationError{Field: "email", Msg: "already registered"}
	} else if !domain.IsNotFound(err) {
		return models.User{}, "", err
	}

	hash, err := session.HashPassword(in.Password)
	if err != nil {
		return models.User{}, "", domain.PersistenceError{Op: "hash password", Err: err}
	}

	user := models.User{
		Email:        in.Email,
		Role:         in.Role,
		Name:         in.Name,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	id, err := s.Store.Create(ctx, store.Users, user)
	if err != nil {
		return models.User{}, "", err
	}
	user.ID = id

	token, err := session.MakeToken(session.Context{UserID: id, Role: user.Role}, s.Secret)
	if err != nil {
		return models.User{}, "", domain.PersistenceError{Op: "sign token", Err: err}
	}

	utils.LogEvent("auth", "register", "role="+user.Role)
	return user.Public(), token, nil
}

// Login verifies credentials and returns the user plus a session token.
func (s AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.User{}, "", ErrInvalidCredentials
	}

	doc, err := s.Store.QueryOne(ctx, store.Users, []domain.Predicate{domain.Eq("email", email)})
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	var user models.User
	if err := doc.Decode(&user); err != nil {
		return models.User{}, "", domain.PersistenceError{Op: "decode user", Err: err}
	}
	if !session.CheckPassword(user.PasswordHash, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := session.MakeToken(session.Context{UserID: user.ID, Role: user.Role}, s.Secret)
	if err != nil {
		return models.User{}, "", domain.PersistenceError{Op: "sign token", Err: err}
	}
	return user.Public(), token, nil
}

// UserByID loads the account record for an authenticated session.
func (s AuthService) UserByID(ctx context.Context, id string) (models.User, error) {
	doc, err := s.Store.Get(ctx, store.Users, id)
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	if err := doc.Decode(&user); err != nil {
		return models.User{}, domain.PersistenceError{Op: "decode user", Err: err}
	}
	return user.Public(), nil
}
