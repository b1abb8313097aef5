package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/gitscout/internal/models"
	"github.com/ahmednasr/gitscout/internal/service"
)

// SettingsHandler reads and updates credentials and theme. Credentials are
// write-only over HTTP.
type SettingsHandler struct {
	state *service.State
}

func NewSettingsHandler(state *service.State) *SettingsHandler {
	return &SettingsHandler{state: state}
}

func (h *SettingsHandler) Register(r fiber.Router) {
	r.Get("/settings", h.get)
	r.Put("/settings", h.put)
}

func (h *SettingsHandler) get(c *fiber.Ctx) error {
	return c.JSON(h.state.Settings())
}

// put handles PUT /settings {github_token?, openrouter_key?, theme?}
func (h *SettingsHandler) put(c *fiber.Ctx) error {
	var req models.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid settings request body")
	}

	settings, err := h.state.UpdateSettings(c.UserContext(), req)
	if errors.Is(err, service.ErrInvalidTheme) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(settings)
}
