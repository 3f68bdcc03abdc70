// Package middleware holds the HTTP middleware shared by every route group.
package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/domain"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	userLocalsKey = "user"
	userIDClaim   = "user_id"
	problemJSON   = "application/problem+json"
)

// JwtProtected verifies the bearer token and stores it in c.Locals("user").
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ContextKey:   userLocalsKey,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"type": "about:blank", "title": "Missing or malformed JWT", "status": fiber.StatusBadRequest,
		}, problemJSON)
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"type": "about:blank", "title": "Invalid or expired JWT", "status": fiber.StatusUnauthorized,
	}, problemJSON)
}

// UserID extracts the authenticated user's ID from the verified token.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals(userLocalsKey).(*jwt.Token)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing user context", domain.ErrUnauthorized)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: unexpected claims", domain.ErrUnauthorized)
	}
	raw, _ := claims[userIDClaim].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid user_id claim", domain.ErrUnauthorized)
	}
	return id, nil
}

// NewToken signs a token for userID that JwtProtected accepts.
// Issuing tokens to end users belongs to the identity service; this is for
// tooling and tests.
func NewToken(cfg *config.Jwt, userID uuid.UUID) (string, error) {
	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		userIDClaim: userID.String(),
		"exp":       time.Now().Add(expiry).Unix(),
	})
	return token.SignedString([]byte(cfg.Secret))
}
