package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gasfill/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type Role string

const (
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

const principalKey = "principal"

// Claims is the token payload. Subject carries the rider id for rider tokens.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller stored on the echo context.
type Principal struct {
	Subject string
	Role    Role
}

// RiderID parses the subject of a rider token.
func (p Principal) RiderID() (kernel.UUID, error) {
	return kernel.UUIDFromString(p.Subject)
}

// Authenticator verifies HS256 bearer tokens.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Parse validates the signature, the algorithm and the registered time claims.
func (a *Authenticator) Parse(token string) (Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Principal{}, err
	}
	if !parsed.Valid {
		return Principal{}, errors.New("invalid token")
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return Principal{}, err
	}
	if subject == "" {
		return Principal{}, errors.New("token has no subject")
	}

	return Principal{Subject: subject, Role: claims.Role}, nil
}

// Require returns middleware that admits only bearers of the given role.
// Missing or invalid tokens get 401; a valid token with another role gets 403.
func (a *Authenticator) Require(role Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			principal, err := a.Parse(strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}
			if principal.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			if role == RoleRider {
				if _, err := principal.RiderID(); err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid rider subject").SetInternal(err)
				}
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}

// riderIDFrom reads the rider id placed on the context by Require(RoleRider).
func riderIDFrom(c echo.Context) (kernel.UUID, error) {
	p, ok := principalFrom(c)
	if !ok {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := p.RiderID()
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid rider subject")
	}
	return id, nil
}
