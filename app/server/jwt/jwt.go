package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	key []byte
}

// User is the identity a session token carries.
type User struct {
	ID      uint
	Email   string
	Role    string
	Expires int64 // Unix second
}

func New(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key)}, nil
}

// Key exposes the signing key for the echo-jwt middleware.
func (j *JWT) Key() []byte {
	return j.key
}

func (j *JWT) SignToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   user.Expires,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(j.key)
}

// ParseUser verifies signature and expiry, then maps the claims back.
func (j *JWT) ParseUser(tokenString string) (*User, error) {
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return UserFromClaims(claims)
}

// DecodeUnverified maps claims without checking the signature. The client uses
// it to inspect a locally stored token before spending a network round trip;
// the server never trusts its output.
func DecodeUnverified(tokenString string) (*User, error) {
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("decode jwt failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token")
	}

	return UserFromClaims(claims)
}

// UserFromClaims maps a verified claim set into a User.
func UserFromClaims(claims jwt.MapClaims) (*User, error) {
	user := &User{}

	if id, ok := claims["id"].(float64); ok {
		user.ID = uint(id)
	} else {
		return nil, errors.New("missing id claim")
	}

	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}

	if role, ok := claims["role"].(string); ok {
		user.Role = role
	} else {
		return nil, errors.New("missing role claim")
	}

	if exp, ok := claims["exp"].(float64); ok {
		user.Expires = int64(exp)
	} else {
		return nil, errors.New("missing exp claim")
	}

	return user, nil
}
