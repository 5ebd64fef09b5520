package httpapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"enscal/internal/domain/member"
	"enscal/internal/domain/viewer"
)

const viewerLocalKey = "viewer"

// NewViewerMiddleware resolves the requesting member from the X-Member-ID
// header into a viewer context. It stands in for the session layer, which is
// outside this service.
func NewViewerMiddleware(directory member.DirectoryRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-Member-ID")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid member id"})
		}

		m, err := directory.GetMemberByID(c.Context(), id)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unknown member"})
		}

		vc := viewer.Context{MemberID: m.ID, Role: m.Role}
		if m.TeamID.Valid {
			vc.TeamID = m.TeamID.Int64
		}
		c.Locals(viewerLocalKey, vc)
		return c.Next()
	}
}

func viewerFromCtx(c *fiber.Ctx) (viewer.Context, bool) {
	vc, ok := c.Locals(viewerLocalKey).(viewer.Context)
	return vc, ok
}
