package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/cache"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/config"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/database"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/middleware"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/models"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WarehouseHandler struct {
	service *services.WarehouseService
}

func NewWarehouseHandler(db *database.DB, store cache.Store, cfg *config.Config) *WarehouseHandler {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	return &WarehouseHandler{
		service: services.NewWarehouseService(db, store, ttl),
	}
}

func SetupWarehouseRoutes(router fiber.Router, db *database.DB, store cache.Store, cfg *config.Config) {
	h := NewWarehouseHandler(db, store, cfg)

	// Public reads; OptionalAuth attaches the identity when a token is sent
	router.Get("/", middleware.OptionalAuth(cfg), h.List)
	router.Get("/:id", middleware.OptionalAuth(cfg), h.Get)
	router.Post("/", middleware.AuthRequired(cfg), h.Create)
	router.Patch("/:id", middleware.AuthRequired(cfg), h.Update)
	router.Delete("/:id", middleware.AuthRequired(cfg), h.Delete)
}

// SetupCacheRoutes registers the administrative cache-clear endpoint
func SetupCacheRoutes(router fiber.Router, db *database.DB, store cache.Store, cfg *config.Config) {
	h := NewWarehouseHandler(db, store, cfg)

	router.Delete("/warehouses", middleware.AuthRequired(cfg), h.ClearCache)
}

// queryParams collects every query parameter with all of its values, so
// repeated parameters (?city=A&city=B) survive normalization
func queryParams(c *fiber.Ctx) map[string][]string {
	params := make(map[string][]string)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		params[k] = append(params[k], string(value))
	})
	return params
}

// List godoc
// @Summary List warehouses
// @Tags warehouses
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Items per page"
// @Param city query string false "City filter (comma-joined or repeated for OR)"
// @Param state query string false "State filter"
// @Param warehouseType query string false "Warehouse type filter"
// @Param zone query string false "Zone filter"
// @Param compliances query string false "Compliance filter"
// @Param contactPerson query string false "Contact person filter"
// @Param address query string false "Address contains-filter"
// @Param minBudget query number false "Minimum rate per sqft"
// @Param maxBudget query number false "Maximum rate per sqft"
// @Param minClearHeight query number false "Minimum clear height"
// @Param maxClearHeight query number false "Maximum clear height"
// @Param minSpace query int false "Minimum space sqft (any offered option)"
// @Param maxSpace query int false "Maximum space sqft (any offered option)"
// @Param fireNocAvailable query bool false "Fire NOC availability"
// @Success 200 {object} services.WarehouseListResponse
// @Router /warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	filter := services.ParseWarehouseFilter(queryParams(c))

	response, err := h.service.List(c.Context(), page, pageSize, filter)
	if err != nil {
		log.Printf("warehouse listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch warehouses"})
	}

	return c.JSON(response)
}

// Get godoc
// @Summary Get warehouse by ID
// @Tags warehouses
// @Accept json
// @Produce json
// @Param id path int true "Warehouse ID"
// @Success 200 {object} services.WarehouseSummary
// @Router /warehouses/{id} [get]
func (h *WarehouseHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid warehouse ID"})
	}

	warehouse, err := h.service.GetByID(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Warehouse not found"})
	}

	return c.JSON(warehouse)
}

// Create godoc
// @Summary Create a warehouse
// @Tags warehouses
// @Accept json
// @Produce json
// @Param request body models.Warehouse true "Warehouse data"
// @Success 201 {object} models.Warehouse
// @Security BearerAuth
// @Router /warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var warehouse models.Warehouse
	if err := c.BodyParser(&warehouse); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if warehouse.Address == "" || warehouse.City == "" || warehouse.State == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "address, city and state are required"})
	}

	if err := h.service.Create(c.Context(), &warehouse); err != nil {
		log.Printf("warehouse create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create warehouse"})
	}

	return c.Status(fiber.StatusCreated).JSON(warehouse)
}

// Update godoc
// @Summary Update a warehouse
// @Tags warehouses
// @Accept json
// @Produce json
// @Param id path int true "Warehouse ID"
// @Param request body map[string]interface{} true "Fields to update"
// @Success 200 {object} models.Warehouse
// @Security BearerAuth
// @Router /warehouses/{id} [patch]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid warehouse ID"})
	}

	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	warehouse, err := h.service.Update(c.Context(), uint(id), updates)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Warehouse not found"})
	}

	return c.JSON(warehouse)
}

// Delete godoc
// @Summary Delete a warehouse
// @Tags warehouses
// @Accept json
// @Produce json
// @Param id path int true "Warehouse ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid warehouse ID"})
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Warehouse not found"})
	}

	return c.JSON(fiber.Map{"message": "Warehouse deleted"})
}

// ClearCache godoc
// @Summary Clear the warehouse listing cache
// @Tags cache
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /cache/warehouses [delete]
func (h *WarehouseHandler) ClearCache(c *fiber.Ctx) error {
	cleared, err := h.service.ClearListingCache(c.Context())
	if err != nil {
		log.Printf("listing cache clear failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clear cache"})
	}

	return c.JSON(fiber.Map{
		"message":     "Warehouse listing cache cleared",
		"clearedKeys": cleared,
	})
}
