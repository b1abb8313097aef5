package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/gitscout/internal/github"
	"github.com/ahmednasr/gitscout/internal/models"
	"github.com/ahmednasr/gitscout/internal/ranking"
	"github.com/ahmednasr/gitscout/internal/service"
)

// SearchHandler wires HTTP → DiscoveryService.
type SearchHandler struct {
	svc service.DiscoveryService
}

// NewSearchHandler returns a handler instance.
func NewSearchHandler(svc service.DiscoveryService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Register mounts POST /search and GET /issues on the given router group.
func (h *SearchHandler) Register(r fiber.Router) {
	r.Post("/search", h.search)
	r.Get("/issues", h.issues)
}

// search handles POST /search {page?, per_page?, sort?}. The ranked view of the
// new result set is returned using the ?sort=&complexity=&bookmarks= selection.
func (h *SearchHandler) search(c *fiber.Ctx) error {
	opts, err := viewOptions(c)
	if err != nil {
		return err
	}

	var req models.SearchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid search request body")
		}
	}

	if _, err := h.svc.Search(c.UserContext(), req); err != nil {
		return searchError(err)
	}
	return c.JSON(h.svc.View(opts))
}

// issues handles GET /issues?sort=match&complexity=easy&bookmarks=true
func (h *SearchHandler) issues(c *fiber.Ctx) error {
	opts, err := viewOptions(c)
	if err != nil {
		return err
	}
	return c.JSON(h.svc.View(opts))
}

func viewOptions(c *fiber.Ctx) (ranking.Options, error) {
	var req models.ViewRequest
	if err := c.QueryParser(&req); err != nil {
		return ranking.Options{}, fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}
	key, err := ranking.ParseSort(req.Sort)
	if err != nil {
		return ranking.Options{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	tier, err := ranking.ParseTier(req.Complexity)
	if err != nil {
		return ranking.Options{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ranking.Options{Sort: key, Complexity: tier, BookmarksOnly: req.BookmarksOnly}, nil
}

// searchError maps pipeline failures onto HTTP statuses. Only search-stage
// errors reach this point.
func searchError(err error) error {
	switch {
	case errors.Is(err, service.ErrNoSkills):
		return fiber.NewError(fiber.StatusBadRequest, service.ErrNoSkills.Error())
	case errors.Is(err, github.ErrRateLimited):
		return fiber.NewError(fiber.StatusTooManyRequests, github.ErrRateLimited.Error())
	case errors.Is(err, service.ErrSuperseded):
		return fiber.NewError(fiber.StatusConflict, service.ErrSuperseded.Error())
	default:
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
}
