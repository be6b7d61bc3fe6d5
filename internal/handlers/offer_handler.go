package handlers

import (
	"io"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"brocante/internal/middleware"
	"brocante/internal/models"
	"brocante/internal/repositories"
	"brocante/internal/services"
)

// OfferHandler handles HTTP requests for publishing and searching offers.
type OfferHandler struct {
	offerService *services.OfferService
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(offerService *services.OfferService) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
	}
}

// RegisterRoutes registers the offer routes with the Fiber app. Publishing
// goes through the auth gate; search is public.
func (h *OfferHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	router.Post("/offer/publish", authGuard, h.HandlePublish)
	router.Get("/offers", h.HandleSearch)
}

// HandlePublish converts the uploaded picture, forwards it to the image host
// and persists the offer for the authenticated user.
func (h *OfferHandler) HandlePublish(c *fiber.Ctx) error {
	user, ok := c.Locals(middleware.UserKey).(*models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Picture file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded picture: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read picture file",
		})
	}
	defer file.Close()

	picture, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded picture: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read picture file",
		})
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Price must be a number",
		})
	}

	offer, err := h.offerService.Publish(user, services.PublishInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       price,
		Brand:       c.FormValue("brand"),
		Size:        c.FormValue("size"),
		Condition:   c.FormValue("condition"),
		Color:       c.FormValue("color"),
		City:        c.FormValue("city"),
		Picture:     picture,
		PictureMIME: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		log.Printf("Error publishing offer for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"newOffer": offer,
	})
}

// HandleSearch parses the query parameters into a search query and returns
// one page of offers plus the total match count.
func (h *OfferHandler) HandleSearch(c *fiber.Ctx) error {
	query := repositories.SearchQuery{
		Title: c.Query("title"),
		Sort:  c.Query("sort"),
		Page:  1,
	}

	if raw := c.Query("priceMin"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "priceMin must be a number",
			})
		}
		query.PriceMin = &min
	}
	if raw := c.Query("priceMax"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "priceMax must be a number",
			})
		}
		query.PriceMax = &max
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "page must be a positive integer",
			})
		}
		query.Page = page
	}

	count, offers, err := h.offerService.Search(query)
	if err != nil {
		log.Printf("Error searching offers: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count":  count,
		"offers": offers,
	})
}
