package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/gitscout/internal/logging"
	"github.com/ahmednasr/gitscout/internal/service"
)

func RegisterRoutes(app *fiber.App,
	discoverySvc service.DiscoveryService,
	state *service.State,
	store Pinger,
	backend string,
) {

	v1 := app.Group("/api/v1")
	NewSearchHandler(discoverySvc).Register(v1)
	NewSkillsHandler(state).Register(v1)
	NewBookmarkHandler(state).Register(v1)
	NewSettingsHandler(state).Register(v1)
	NewHealthHandler(store, backend).Register(v1)
}

// ErrorHandler renders every error as {"error": message}. Errors that are not
// *fiber.Error become 500s.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		logging.Error("request failed", "method", c.Method(), "path", c.Path(), "status", code, "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
