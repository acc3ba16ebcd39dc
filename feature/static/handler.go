package static

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"time"

	"isoserve/core/logger"
	"isoserve/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func init() {
	// Browsers refuse streaming compilation without the exact wasm type.
	_ = mime.AddExtensionType(".wasm", "application/wasm")
}

// Handler serves files through the Service.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Stages returns the root-document, static-file and not-found stages in order.
func (h *Handler) Stages() server.Pipeline {
	return server.Pipeline{
		{Name: "root-document", Handler: h.HandleRootDocument},
		{Name: "static-file", Handler: h.HandleStaticFile},
		{Name: "not-found", Handler: h.HandleNotFound},
	}
}

// HandleRootDocument serves the root document for exactly "/".
// Every other request passes through.
func (h *Handler) HandleRootDocument(c *fiber.Ctx) error {
	if !h.service.HasRootDocument() || c.Path() != "/" || !isRead(c) {
		return c.Next()
	}

	asset, err := h.service.OpenRootDocument()
	if err != nil {
		return err
	}
	return h.send(c, asset)
}

// HandleStaticFile serves the file the request path maps to. Misses pass
// through to the next stage, access and I/O errors end the request.
func (h *Handler) HandleStaticFile(c *fiber.Ctx) error {
	if !isRead(c) {
		return c.Next()
	}

	name, err := Resolve(c.Path())
	if err == nil {
		var asset *Asset
		if asset, err = h.service.Open(name); err == nil {
			return h.send(c, asset)
		}
	}

	switch {
	case errors.Is(err, server.ErrNotFound):
		return c.Next()
	case errors.Is(err, server.ErrAccess):
		logger.WithRayID(h.service.logger, c).Warn("Rejected path outside document root",
			zap.String("path", c.Path()), zap.Error(err))
	}
	return err
}

// HandleNotFound terminates the pipeline.
func (h *Handler) HandleNotFound(c *fiber.Ctx) error {
	logger.WithRayID(h.service.logger, c).Debug("No file for path", zap.String("path", c.Path()))
	return server.ErrNotFound
}

func (h *Handler) send(c *fiber.Ctx, a *Asset) error {
	if ext := path.Ext(a.Name); ext != "" {
		c.Type(ext)
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	}
	c.Response().Header.SetLastModified(a.ModTime)

	if notModified(c, a.ModTime) {
		_ = a.File.Close()
		c.Status(fiber.StatusNotModified)
		return nil
	}

	if c.Method() == fiber.MethodHead {
		_ = a.File.Close()
		c.Response().Header.SetContentLength(int(a.Size))
		return nil
	}

	// fasthttp closes the stream once the body is written.
	return c.Status(fiber.StatusOK).SendStream(a.File, int(a.Size))
}

func isRead(c *fiber.Ctx) bool {
	m := c.Method()
	return m == fiber.MethodGet || m == fiber.MethodHead
}

func notModified(c *fiber.Ctx, modTime time.Time) bool {
	since := c.Get(fiber.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	t, err := http.ParseTime(since)
	if err != nil {
		return false
	}
	return !modTime.Truncate(time.Second).After(t)
}
