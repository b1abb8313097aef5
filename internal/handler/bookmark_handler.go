package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/gitscout/internal/service"
)

// BookmarkHandler lists and toggles bookmarked issue IDs.
type BookmarkHandler struct {
	state *service.State
}

func NewBookmarkHandler(state *service.State) *BookmarkHandler {
	return &BookmarkHandler{state: state}
}

func (h *BookmarkHandler) Register(r fiber.Router) {
	r.Get("/bookmarks", h.list)
	r.Post("/bookmarks/:id/toggle", h.toggle)
}

func (h *BookmarkHandler) list(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"bookmarks": h.state.Bookmarks()})
}

// toggle handles POST /bookmarks/:id/toggle
func (h *BookmarkHandler) toggle(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "id must be a positive integer")
	}

	on, err := h.state.ToggleBookmark(c.UserContext(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"id": id, "bookmarked": on, "bookmarks": h.state.Bookmarks()})
}
