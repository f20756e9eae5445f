package handlers

import (
	"log"
	"strconv"

	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/config"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/database"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/middleware"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type EnquiryHandler struct {
	service *services.EnquiryService
}

func NewEnquiryHandler(db *database.DB, cfg *config.Config) *EnquiryHandler {
	return &EnquiryHandler{
		service: services.NewEnquiryService(db, cfg),
	}
}

func SetupEnquiryRoutes(router fiber.Router, db *database.DB, cfg *config.Config) {
	h := NewEnquiryHandler(db, cfg)

	router.Post("/", h.Create)
	router.Get("/", middleware.AuthRequired(cfg), h.List)
	router.Get("/:id", middleware.AuthRequired(cfg), h.Get)
	router.Delete("/:id", middleware.AuthRequired(cfg), h.Delete)
}

// Create godoc
// @Summary Submit a warehouse enquiry
// @Tags enquiries
// @Accept json
// @Produce json
// @Param request body services.CreateEnquiryRequest true "Enquiry data"
// @Success 201 {object} models.Enquiry
// @Router /enquiries [post]
func (h *EnquiryHandler) Create(c *fiber.Ctx) error {
	var req services.CreateEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	enquiry, err := h.service.Create(c.Context(), &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(enquiry)
}

// List godoc
// @Summary List enquiries
// @Tags enquiries
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} services.EnquiryListResponse
// @Security BearerAuth
// @Router /enquiries [get]
func (h *EnquiryHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	response, err := h.service.List(c.Context(), page, limit)
	if err != nil {
		log.Printf("enquiry listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch enquiries"})
	}

	return c.JSON(response)
}

// Get godoc
// @Summary Get enquiry by ID
// @Tags enquiries
// @Accept json
// @Produce json
// @Param id path int true "Enquiry ID"
// @Success 200 {object} models.Enquiry
// @Security BearerAuth
// @Router /enquiries/{id} [get]
func (h *EnquiryHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enquiry ID"})
	}

	enquiry, err := h.service.GetByID(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enquiry not found"})
	}

	return c.JSON(enquiry)
}

// Delete godoc
// @Summary Delete an enquiry
// @Tags enquiries
// @Accept json
// @Produce json
// @Param id path int true "Enquiry ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /enquiries/{id} [delete]
func (h *EnquiryHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enquiry ID"})
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enquiry not found"})
	}

	return c.JSON(fiber.Map{"message": "Enquiry deleted"})
}
