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

type CustomerRequestHandler struct {
	service *services.CustomerRequestService
}

func NewCustomerRequestHandler(db *database.DB) *CustomerRequestHandler {
	return &CustomerRequestHandler{
		service: services.NewCustomerRequestService(db),
	}
}

func SetupCustomerRequestRoutes(router fiber.Router, db *database.DB, cfg *config.Config) {
	h := NewCustomerRequestHandler(db)

	router.Post("/", h.Create)
	router.Get("/", middleware.AuthRequired(cfg), h.List)
	router.Patch("/:id/status", middleware.AuthRequired(cfg), h.UpdateStatus)
	router.Delete("/:id", middleware.AuthRequired(cfg), h.Delete)
}

// Create godoc
// @Summary Submit a customer space request
// @Tags customer-requests
// @Accept json
// @Produce json
// @Param request body services.CreateCustomerRequestRequest true "Request data"
// @Success 201 {object} models.CustomerRequest
// @Router /customer-requests [post]
func (h *CustomerRequestHandler) Create(c *fiber.Ctx) error {
	var req services.CreateCustomerRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	request, err := h.service.Create(c.Context(), &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// List godoc
// @Summary List customer requests
// @Tags customer-requests
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} services.CustomerRequestListResponse
// @Security BearerAuth
// @Router /customer-requests [get]
func (h *CustomerRequestHandler) List(c *fiber.Ctx) error {
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
		log.Printf("customer request listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch customer requests"})
	}

	return c.JSON(response)
}

// UpdateStatus godoc
// @Summary Update customer request status
// @Tags customer-requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body object true "New status"
// @Success 200 {object} models.CustomerRequest
// @Security BearerAuth
// @Router /customer-requests/{id}/status [patch]
func (h *CustomerRequestHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status is required"})
	}

	request, err := h.service.UpdateStatus(c.Context(), uint(id), body.Status)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer request not found"})
	}

	return c.JSON(request)
}

// Delete godoc
// @Summary Delete a customer request
// @Tags customer-requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /customer-requests/{id} [delete]
func (h *CustomerRequestHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer request not found"})
	}

	return c.JSON(fiber.Map{"message": "Customer request deleted"})
}
