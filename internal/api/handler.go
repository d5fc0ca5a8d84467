package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/camt-mt940-converter/internal/converter"
	"github.com/insightdelivered/camt-mt940-converter/internal/writer"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// ConvertResponse is the JSON response from /api/convert?format=json.
type ConvertResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	File       string `json:"file,omitempty"`
	Statements int    `json:"statements"`
	Entries    int    `json:"entries"`
	MT940      string `json:"mt940,omitempty"`
	Version    string `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Converter *converter.Converter
	Log       *logrus.Logger
}

// NewApp builds the fiber app with middleware and routes.
func NewApp(h *Handler, bodyLimit int) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestID)
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"engine":  "fiber",
	})
}

// HandleConvert accepts a camt.053 document either as the raw request body
// or as the multipart form field "file". The MT940 result is returned as
// text (UTF-8, or ISO-8859-1 with ?charset=latin1) or, with ?format=json,
// wrapped in a ConvertResponse.
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	log := h.logger().WithField("request_id", c.Locals("requestid"))

	doc, filename, err := readDocument(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	if len(bytes.TrimSpace(doc)) == 0 {
		return writeError(c, fiber.StatusBadRequest, "No document uploaded. Send the XML as request body or form field 'file'.")
	}

	statements, err := h.Converter.Parse(bytes.NewReader(doc))
	if err != nil {
		log.WithField("file", filename).Warnf("conversion failed: %v", err)
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Conversion failed: %v", err))
	}

	text := writer.EncodeDocument(statements)
	entries := 0
	for _, s := range statements {
		entries += len(s.Entries)
	}
	log.WithFields(logrus.Fields{"file": filename, "statements": len(statements), "entries": entries}).Info("converted")

	if strings.EqualFold(c.Query("format"), "json") {
		return c.JSON(ConvertResponse{
			Success:    true,
			File:       filename,
			Statements: len(statements),
			Entries:    entries,
			MT940:      text,
			Version:    Version,
		})
	}

	if filename != "" {
		base := strings.TrimSuffix(filename, filepath.Ext(filename))
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", base+".STA"))
	}
	if strings.EqualFold(c.Query("charset"), "latin1") {
		c.Set(fiber.HeaderContentType, "text/plain; charset=ISO-8859-1")
		return c.Send(writer.EncodeLatin1(text))
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(text)
}

func readDocument(c *fiber.Ctx) ([]byte, string, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return append([]byte(nil), c.Body()...), "", nil
	}

	header, err := c.FormFile("file")
	if err != nil {
		return nil, "", errors.New("No file uploaded. Use form field 'file'.")
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".xml") {
		return nil, "", errors.New("Only XML files are supported.")
	}
	f, err := header.Open()
	if err != nil {
		return nil, "", errors.New("Failed to read uploaded file.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", errors.New("Failed to read uploaded file.")
	}
	return data, header.Filename, nil
}

func (h *Handler) logger() *logrus.Logger {
	if h.Log == nil {
		return logrus.StandardLogger()
	}
	return h.Log
}

func requestID(c *fiber.Ctx) error {
	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(fiber.HeaderXRequestID, id)
	c.Locals("requestid", id)
	return c.Next()
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success: false,
		Error:   msg,
	})
}
