package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/gitscout/internal/models"
	"github.com/ahmednasr/gitscout/internal/service"
	"github.com/ahmednasr/gitscout/internal/skills"
)

// SkillsHandler exposes the user's skill selection.
type SkillsHandler struct {
	state *service.State
}

func NewSkillsHandler(state *service.State) *SkillsHandler {
	return &SkillsHandler{state: state}
}

func (h *SkillsHandler) Register(r fiber.Router) {
	r.Get("/skills", h.get)
	r.Put("/skills", h.put)
	r.Get("/skills/popular", h.popular)
}

func (h *SkillsHandler) get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"skills": h.state.Skills()})
}

// put handles PUT /skills {"skills": [...]}. An empty list is allowed; it only
// blocks the next search.
func (h *SkillsHandler) put(c *fiber.Ctx) error {
	var req models.SkillsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid skills request body")
	}

	saved, err := h.state.SetSkills(c.UserContext(), req.Skills)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"skills": saved})
}

func (h *SkillsHandler) popular(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"skills": skills.Popular})
}
