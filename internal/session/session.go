package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadToken = errors.New("invalid token")

// Context identifies the authenticated actor issuing an operation. Domain
// operations take it explicitly instead of reading process-wide state.
type Context struct {
	UserID string
	Role   string
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// MakeToken signs a session token for the actor, valid for 24h.
func MakeToken(sess Context, secret []byte) (string, error) {
	c := Claims{
		Role: sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
}

// ParseToken verifies the token and rebuilds the session context.
func ParseToken(raw string, secret []byte) (Context, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return secret, nil
	})
	if err != nil {
		return Context{}, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return Context{}, ErrBadToken
	}
	return Context{UserID: c.Subject, Role: c.Role}, nil
}
