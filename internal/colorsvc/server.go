// Package colorsvc is the image search and color extraction backend used by the picker
package colorsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"paintpick/internal/config"
)

// Response texts
const (
	errInvalidPayload = "Solicitud inválida"
	errMissingInputs  = "Se requieren la marca y el código de color"
	errMissingImage   = "Se requiere la URL de la imagen"
	errSearchFailed   = "No se pudo completar la búsqueda de imágenes"
	errDownload       = "No se pudo descargar la imagen"
	errDecode         = "El archivo no es una imagen compatible"
	errNoColor        = "No se pudo detectar el color automáticamente"
)

type searchRequest struct {
	Brand     string   `json:"brand"`
	ColorCode string   `json:"color_code"`
	UsedURLs  []string `json:"used_urls"`
}

type imageResult struct {
	URL string `json:"url"`
}

type extractRequest struct {
	ImageURL string `json:"image_url"`
}

// Server exposes POST /search, POST /extract-color and GET /healthz
type Server struct {
	app        *fiber.App
	finder     ImageFinder
	fetcher    ImageFetcher
	addr       string
	maxResults int
	logger     *slog.Logger
}

// New creates a server that scrapes cfg.SearchURL and downloads images over HTTP
func New(cfg config.ServerSettings, logger *slog.Logger) *Server {
	return NewWith(cfg, logger,
		NewCollyFinder(cfg.SearchURL, cfg.FetchTimeout.Std(), logger),
		NewHTTPFetcher(cfg.FetchTimeout.Std(), cfg.MaxImageBytes),
	)
}

// NewWith creates a server around the given finder and fetcher
func NewWith(cfg config.ServerSettings, logger *slog.Logger, finder ImageFinder, fetcher ImageFetcher) *Server {
	s := &Server{
		finder:     finder,
		fetcher:    fetcher,
		addr:       cfg.Addr,
		maxResults: cfg.MaxResults,
		logger:     logger,
	}

	app := fiber.New(fiber.Config{
		AppName:               "paintpickd",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(helmet.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${pid} | ${time} | ${latency} | [${ip}]:${port} | ${status} - ${method} ${path}\n",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Post("/search", s.handleSearch)
	app.Post("/extract-color", s.handleExtract)

	s.app = app
	return s
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured address until Shutdown
func (s *Server) Listen() error {
	s.logger.Info("listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errInvalidPayload})
	}

	brand := strings.TrimSpace(req.Brand)
	code := strings.TrimSpace(req.ColorCode)
	if brand == "" || code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errMissingInputs})
	}

	query := fmt.Sprintf("%s %s paint", brand, code)
	candidates, err := s.finder.Find(c.UserContext(), query)
	if err != nil {
		s.logger.Error("image search failed", "query", query, "err", err)
		return c.JSON(fiber.Map{"error": errSearchFailed})
	}

	selected := SelectImages(candidates, req.UsedURLs, s.maxResults)
	s.logger.Info("image search",
		"query", query,
		"candidates", len(candidates),
		"excluded", len(req.UsedURLs),
		"returned", len(selected),
	)

	images := make([]imageResult, len(selected))
	for i, u := range selected {
		images[i] = imageResult{URL: u}
	}
	return c.JSON(fiber.Map{"images": images})
}

func (s *Server) handleExtract(c *fiber.Ctx) error {
	var req extractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": errInvalidPayload})
	}
	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": errMissingImage})
	}

	data, err := s.fetcher.Fetch(c.UserContext(), imageURL)
	if err != nil {
		s.logger.Warn("image download failed", "url", imageURL, "err", err)
		return c.JSON(fiber.Map{"success": false, "error": errDownload})
	}

	img, err := decodeImage(data)
	if err != nil {
		s.logger.Warn("image decode failed", "url", imageURL, "err", err)
		return c.JSON(fiber.Map{"success": false, "error": errDecode})
	}

	color, ok := DominantColor(img)
	if !ok {
		return c.JSON(fiber.Map{"success": false, "error": errNoColor})
	}

	s.logger.Info("color extracted", "url", imageURL, "hex", color.Hex)
	return c.JSON(fiber.Map{
		"success": true,
		"hex":     color.Hex,
		"rgb":     color.RGB,
	})
}

// errorHandler renders unhandled errors as JSON
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
