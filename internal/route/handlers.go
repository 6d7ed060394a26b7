package route

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, store *PgStore, authMiddleware fiber.Handler) {
	r.Post("/custom", authMiddleware, func(c *fiber.Ctx) error {
		var req CustomRoute
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.FromPlaceID == "" || req.ToPlaceID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "from_place_id and to_place_id required")
		}
		if len(req.Points) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "at least 2 points required")
		}
		if userID, ok := c.Locals("user_id").(string); ok && req.CreatedBy == "" {
			req.CreatedBy = userID
		}
		created, err := store.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/custom", func(c *fiber.Ctx) error {
		routes, err := store.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(routes)
	})
}
