package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weather-companion/internal/app"
	"weather-companion/internal/export"
	"weather-companion/internal/forecast"
	"weather-companion/internal/geocode"
	"weather-companion/internal/store"
)

var validate = validator.New()

// createRequestBody holds the payload for creating or updating a stored
// weather request.
type createRequestBody struct {
	Location  string `json:"location" validate:"required"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type chatBody struct {
	Message string `json:"message" validate:"required"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(router *fiber.App, service *app.Service) {
	v1 := router.Group("/api/v1")

	v1.Post("/requests", func(c *fiber.Ctx) error {
		var body createRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec, err := service.CreateRequest(c.Context(), body.Location, body.StartDate, body.EndDate)
		if err != nil {
			return mapServiceError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"request":  rec,
			"snapshot": rec.Snapshot(),
		})
	})

	v1.Get("/requests", func(c *fiber.Ctx) error {
		recs, err := service.Store().List()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to list weather requests")
		}
		return c.JSON(fiber.Map{"requests": recs})
	})

	v1.Get("/requests/:id", func(c *fiber.Ctx) error {
		rec, err := service.Store().Get(c.Params("id"))
		if err != nil {
			return mapServiceError(err)
		}

		resp := fiber.Map{
			"request":  rec,
			"snapshot": rec.Snapshot(),
		}
		if pred, ok := service.PredictNext(rec); ok {
			resp["predicted_next_temp"] = pred
		}
		return c.JSON(resp)
	})

	v1.Put("/requests/:id", func(c *fiber.Ctx) error {
		var body createRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec, err := service.UpdateRequest(c.Context(), c.Params("id"), body.Location, body.StartDate, body.EndDate)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{
			"request":  rec,
			"snapshot": rec.Snapshot(),
		})
	})

	v1.Delete("/requests/:id", func(c *fiber.Ctx) error {
		if err := service.Store().Delete(c.Params("id")); err != nil {
			return mapServiceError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/requests/:id/chat", func(c *fiber.Ctx) error {
		rec, err := service.Store().Get(c.Params("id"))
		if err != nil {
			return mapServiceError(err)
		}

		var body chatBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "message is required")
		}

		return c.JSON(fiber.Map{
			"response": service.Chat(c.Context(), rec, body.Message),
		})
	})

	v1.Get("/requests/:id/export/:format", func(c *fiber.Ctx) error {
		rec, err := service.Store().Get(c.Params("id"))
		if err != nil {
			return mapServiceError(err)
		}

		switch c.Params("format") {
		case "json":
			return c.JSON(export.AsJSON(rec))
		case "csv":
			data, err := export.AsCSV(rec)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to export record")
			}
			c.Set(fiber.HeaderContentType, "text/csv")
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="weather_`+rec.ID+`.csv"`)
			return c.SendString(data)
		case "md":
			c.Set(fiber.HeaderContentType, "text/markdown")
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="weather_`+rec.ID+`.md"`)
			return c.SendString(export.AsMarkdown(rec))
		default:
			return fiber.NewError(fiber.StatusBadRequest, "unsupported export format")
		}
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		lat, err := strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required")
		}
		lon, err := strconv.ParseFloat(c.Query("lon"), 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required")
		}

		snap, err := service.FetchDirect(c.Context(), lat, lon)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(snap)
	})
}

// mapServiceError translates domain errors into HTTP status codes.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "weather request not found")
	case errors.Is(err, geocode.ErrNotFound):
		return fiber.NewError(fiber.StatusBadRequest, "could not resolve location, try more specific input")
	case errors.Is(err, app.ErrInvalidDateRange):
		return fiber.NewError(fiber.StatusBadRequest, app.ErrInvalidDateRange.Error())
	case errors.Is(err, forecast.ErrDataUnavailable):
		return fiber.NewError(fiber.StatusBadGateway, "weather data unavailable for this location")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to process weather request")
	}
}
