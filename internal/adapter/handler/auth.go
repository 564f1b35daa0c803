package handler

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/srgjo27/sportsync/internal/core/domain"
)

type Claims struct {
	Sub   string `json:"sub"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 access token for p.
func IssueToken(secret string, p domain.Principal, ttl time.Duration) (string, error) {
	claims := Claims{
		Sub:   p.UserID.String(),
		Role:  string(p.Role),
		Email: p.Email,
		Name:  p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseToken(secret, tokenStr string) (domain.Principal, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Principal{}, err
	}

	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return domain.Principal{}, errors.New("invalid token")
	}

	id, err := uuid.Parse(c.Sub)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("invalid subject: %w", err)
	}

	role := domain.Role(c.Role)
	switch role {
	case domain.RoleCustomer, domain.RoleOwner, domain.RoleAdmin:
	default:
		return domain.Principal{}, fmt.Errorf("unknown role %q", c.Role)
	}

	return domain.Principal{UserID: id, Role: role, Email: c.Email, Name: c.Name}, nil
}
