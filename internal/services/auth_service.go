package services

import (
	"errors"
	"strings"
	"time"

	"backoffice/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

// AuthService issues and checks operator tokens. There is one operator,
// configured through the environment.
type AuthService struct {
	Secret       []byte
	Username     string
	PasswordHash string
	TTL          time.Duration
	Now          func() time.Time
}

type operatorClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks the operator credentials and returns a signed HS256 token.
func (s AuthService) Login(username, password string) (string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", time.Time{}, domain.ValidationError{Field: "username", Msg: "username and password are required"}
	}
	if len(s.Secret) == 0 || s.Username == "" || s.PasswordHash == "" {
		return "", time.Time{}, domain.UnauthorizedError{Msg: "operator login is not configured"}
	}
	if username != s.Username {
		return "", time.Time{}, domain.UnauthorizedError{Msg: "invalid username or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, domain.UnauthorizedError{Msg: "invalid username or password"}
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := s.now()
	exp := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, operatorClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken verifies a bearer token and returns the operator it names.
func (s AuthService) ParseToken(raw string) (*domain.Actor, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domain.UnauthorizedError{Msg: "missing bearer token"}
	}
	var claims operatorClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.UnauthorizedError{Msg: "token expired"}
		}
		return nil, domain.UnauthorizedError{Msg: "invalid token"}
	}
	if claims.Subject == "" {
		return nil, domain.UnauthorizedError{Msg: "invalid token"}
	}
	return &domain.Actor{UserID: claims.Subject, Username: claims.Username}, nil
}
