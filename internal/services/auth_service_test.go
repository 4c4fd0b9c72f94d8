package services

import (
	"context"
	"errors"
	"testing"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/session"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := AuthService{Store: newMemStore(), Secret: []byte("test-secret")}
	ctx := context.Background()

	user, token, err := svc.Register(ctx, models.InsertUser{
		Email:    "Fr.Santos@Example.COM",
		Password: "long-enough-password",
		Role:     models.RolePriest,
		Name:     "Fr. Miguel Santos",
	})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if user.Email != "fr.santos@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash != "" {
		t.Fatal("password hash leaked in response")
	}

	sess, err := session.ParseToken(token, []byte("test-secret"))
	if err != nil {
		t.Fatalf("registration token unusable: %v", err)
	}
	if sess.UserID != user.ID || sess.Role != models.RolePriest {
		t.Fatalf("token session mismatch: %+v", sess)
	}

	got, _, err := svc.Login(ctx, "fr.santos@example.com", "long-enough-password")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("login returned the wrong user: %q", got.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := AuthService{Store: newMemStore(), Secret: []byte("test-secret")}
	ctx := context.Background()

	in := models.InsertUser{
		Email:    "parish@example.com",
		Password: "long-enough-password",
		Role:     models.RoleInstitution,
		Name:     "San Lorenzo Parish",
	}
	if _, _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first register error: %v", err)
	}
	if _, _, err := svc.Register(ctx, in); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError on duplicate email, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc := AuthService{Store: newMemStore(), Secret: []byte("test-secret")}
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, models.InsertUser{
		Email:    "parish@example.com",
		Password: "long-enough-password",
		Role:     models.RoleInstitution,
		Name:     "San Lorenzo Parish",
	}); err != nil {
		t.Fatalf("register error: %v", err)
	}

	if _, _, err := svc.Login(ctx, "parish@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "whatever-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}
