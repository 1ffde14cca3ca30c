package middleware

import (
	"github.com/Behyna/collect-gateway/internal/api/contract"
	"github.com/Behyna/collect-gateway/internal/constants"
	"github.com/gofiber/fiber/v2"
)

const (
	HeaderAuthorization  = "Authorization"
	HeaderXAuthorization = "X-Authorization"
)

// RequireAuthorization only checks that a credential header is present.
func RequireAuthorization() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(HeaderAuthorization) == "" && c.Get(HeaderXAuthorization) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(contract.UnauthorizedResponse{
				StatusCode: constants.UnauthorizedStatusCode,
				Message:    constants.ErrMsgUnauthorized,
			})
		}

		return c.Next()
	}
}
