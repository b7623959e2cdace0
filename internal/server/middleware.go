package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/solarena/rlgl/internal/models"
)

const localUserKey = "user"

// identityMiddleware resolves the participant from the X-User-Id header.
// Session plumbing lives in the external auth collaborator; the engine
// only needs a stable participant identity per call, never ambient state.
func (s *Server) identityMiddleware(c *fiber.Ctx) error {
	uid := c.Get("X-User-Id")
	if uid == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"reason":  "IDENTITY_REQUIRED",
			"message": "X-User-Id header is required",
		})
	}

	user, err := s.svc.GetOrCreateUser(c.Context(), uid, c.Get("X-User-Name"))
	if err != nil {
		return jsonError(c, err)
	}

	c.Locals(localUserKey, user)
	return c.Next()
}

func (s *Server) adminMiddleware(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil || !user.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"reason":  "ADMIN_REQUIRED",
			"message": "admin privileges required",
		})
	}
	return c.Next()
}

func currentUser(c *fiber.Ctx) *models.UserAccount {
	user, _ := c.Locals(localUserKey).(*models.UserAccount)
	return user
}
