package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/ocr-transaction-parser/internal/annotation"
	"github.com/insightdelivered/ocr-transaction-parser/internal/logger"
	"github.com/insightdelivered/ocr-transaction-parser/internal/metrics"
	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
	"github.com/insightdelivered/ocr-transaction-parser/internal/parser"
	"github.com/insightdelivered/ocr-transaction-parser/internal/validator"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// ParseResponse is the JSON response from the /api/parse endpoint.
type ParseResponse struct {
	Success     bool                      `json:"success"`
	Error       string                    `json:"error,omitempty"`
	Transaction *models.TransactionRecord `json:"transaction,omitempty"`
	Validation  *models.ValidationResult  `json:"validation,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	parser  *parser.Parser
	log     zerolog.Logger
	version string
}

// NewHandler returns a Handler that parses with p.
func NewHandler(p *parser.Parser, log zerolog.Logger, version string) *Handler {
	return &Handler{parser: p, log: log, version: version}
}

// NewApp builds a fiber app with all routes registered.
func (h *Handler) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          h.handleError,
	})
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Use(h.requestLogger)
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/parse", h.HandleParse)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": h.version,
	})
}

// HandleParse decodes an annotation document from the request body and
// returns the extracted record with its validation result.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	log := logger.FromContext(c.UserContext())

	rec, err := annotation.Decode(c.Body())
	if err != nil {
		log.Warn().Err(err).Msg("Rejected annotation document")
		return c.Status(fiber.StatusBadRequest).JSON(ParseResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	txn := h.parser.Parse(rec)
	validation := validator.Validate(txn)
	metrics.RecordDocument(models.ParsedDocument{Transaction: txn, Validation: validation})

	log.Debug().
		Str("type", string(txn.TransactionType)).
		Int("amounts", len(txn.Amounts)).
		Bool("valid", validation.IsValid).
		Msg("Parsed annotation document")

	return c.JSON(ParseResponse{
		Success:     true,
		Transaction: txn,
		Validation:  &validation,
	})
}

// requestLogger assigns a request ID, attaches a request-scoped logger
// and records an access log line and latency sample.
func (h *Handler) requestLogger(c *fiber.Ctx) error {
	start := time.Now()

	requestID := c.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(RequestIDHeader, requestID)

	reqLog := h.log.With().Str("request_id", requestID).Logger()
	c.SetUserContext(logger.WithContext(c.UserContext(), reqLog))

	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	} else if err != nil {
		status = fiber.StatusInternalServerError
	}

	route := c.Route().Path
	metrics.ObserveRequest(route, strconv.Itoa(status), start)

	reqLog.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Str("remote_addr", c.IP()).
		Msg("HTTP request")

	return err
}

func (h *Handler) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(ParseResponse{Success: false, Error: err.Error()})
}
