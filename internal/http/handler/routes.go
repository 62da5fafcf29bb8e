package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"mapapi/internal/analyze"
	"mapapi/internal/geojson"
	"mapapi/internal/service"
)

// Plain-text upload responses preserved from the original map client contract.
const (
	uploadOKMessage = "Карта успешно загружена!"
	uploadErrPrefix = "Ошибка загрузки карты: "
)

// MapIDHeader carries the id assigned to a freshly uploaded map, so the
// client can build the download link without parsing the text body.
const MapIDHeader = "X-Map-ID"

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers translate HTTP to service calls and back; no business logic here.
func RegisterRoutes(app *fiber.App, db *sql.DB, mapSvc service.MapService, fwd analyze.Forwarder) {
	// Health endpoint: checks DB connectivity only
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// Simple liveness probe
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Upload a map file (multipart/form-data, field name: file).
	// Responds with the original plain-text messages; any failure after
	// multipart parsing comes back as 500 with the error embedded in the body.
	app.Post("/api/maps/upload", func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				SendString(uploadErrPrefix + "в запросе нет файла")
		}

		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				SendString(uploadErrPrefix + err.Error())
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		id, err := mapSvc.SaveMap(c.UserContext(), fh.Filename, ct, f)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).
				SendString(uploadErrPrefix + err.Error())
		}

		c.Set(MapIDHeader, strconv.FormatInt(id, 10))
		return c.SendString(uploadOKMessage)
	})

	// Download a map file by id: the stored bytes with the original filename
	// and content type. Unknown id is a 404 with an empty body.
	app.Get("/api/maps/:id/download", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rec, err := mapSvc.FindMap(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).Send([]byte{})
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", rec.FileName))
		c.Set(fiber.HeaderContentType, rec.ContentType)
		return c.Send(rec.Data)
	})

	// List map metadata with limit & offset
	app.Get("/api/maps", func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "10")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := mapSvc.ListMaps(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	})

	// Analyze passthrough: convert the selected area to a GeoJSON feature and
	// relay whatever the echo endpoint sends back.
	app.Post("/api/maps/analyze", func(c *fiber.Ctx) error {
		var area geojson.Area
		if err := c.BodyParser(&area); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_AREA", "invalid area payload")
		}

		echoed, err := fwd.Forward(c.UserContext(), geojson.FromArea(area))
		if err != nil {
			return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "echo endpoint unavailable")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(echoed)
	})
}
