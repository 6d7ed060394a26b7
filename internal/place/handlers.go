package place

import (
	"errors"
	"strconv"

	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, repo *Repository, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Place
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" || req.Type == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and type required")
		}
		if !req.Location().Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "lat/lng out of range")
		}
		created, err := repo.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/search", func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return fiber.NewError(fiber.StatusBadRequest, "q required")
		}
		found, err := repo.FindByName(c.Context(), query)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "place not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(annotateFromQuery(c, found))
	})

	r.Get("/nearby", func(c *fiber.Ctx) error {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
		}
		from := geo.Point{Lat: lat, Lng: lng}
		if !from.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "lat/lng out of range")
		}
		radius, _ := strconv.ParseFloat(c.Query("radius_m"), 64)
		if radius == 0 {
			radius = 500
		}
		results, err := repo.Nearest(c.Context(), from, radius)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(results)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		found, err := repo.FindByID(c.Context(), c.Params("id"))
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "place not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(annotateFromQuery(c, found))
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := repo.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func annotateFromQuery(c *fiber.Ctx, p Place) WithDistance {
	lat, errLat := strconv.ParseFloat(c.Query("from_lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("from_lng"), 64)
	if errLat != nil || errLng != nil {
		return Annotate(p, nil)
	}
	return Annotate(p, &geo.Point{Lat: lat, Lng: lng})
}
