// Package middleware provides the JWT guard for authenticated routes.
package middleware

import (
	"context"
	"errors"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/webapi/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// CurrentUserKey is the Locals key holding the resolved *dto.UserRead.
const CurrentUserKey = "currentUser"

// UserResolver loads the user an access token was issued to.
type UserResolver interface {
	ResolveToken(ctx context.Context, token *jwt.Token) (*dto.UserRead, error)
}

// JwtProtected verifies the bearer access token and resolves its subject
// on every request. Handlers read the user with CurrentUser.
func JwtProtected(cfg *config.Jwt, resolver UserResolver) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: jwtware.HS256,
			Key:    []byte(cfg.AccessSecret),
		},
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, _ := c.Locals("user").(*jwt.Token)
			u, err := resolver.ResolveToken(c.UserContext(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) || domain.KindOf(err) == domain.KindAuth {
					return common.ProblemDetailsJSON(c, "Unauthorized", err)
				}
				return common.ProblemDetailsJSON(c, "Internal Server Error", err)
			}
			c.Locals(CurrentUserKey, u)
			return c.Next()
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
	}
	return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrInvalidAccessToken)
}

// CurrentUser returns the user resolved by JwtProtected.
func CurrentUser(c *fiber.Ctx) (*dto.UserRead, bool) {
	u, ok := c.Locals(CurrentUserKey).(*dto.UserRead)
	return u, ok && u != nil
}
