package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/bazaarhq/storefront_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

const deliveryNotAvailableMessage = "Sorry, we do not deliver to this location yet."

// deliveryHandler serves the public availability check and the admin area CRUD.
type deliveryHandler struct {
	deliveryService portssvc.DeliverySvcFacade
}

func newDeliveryHandler(ds portssvc.DeliverySvcFacade) *deliveryHandler {
	return &deliveryHandler{deliveryService: ds}
}

// registerPublicDeliveryRoutes registers the storefront-facing check. It
// runs without authentication, so the caller supplies a rate limiter.
func registerPublicDeliveryRoutes(rg *gin.RouterGroup, deliveryService portssvc.DeliverySvcFacade, limit gin.HandlerFunc) {
	h := newDeliveryHandler(deliveryService)
	rg.POST("/delivery/check", limit, h.checkDelivery)
}

func registerDeliveryAreaRoutes(rg *gin.RouterGroup, deliveryService portssvc.DeliverySvcFacade) {
	h := newDeliveryHandler(deliveryService)

	areas := rg.Group("/delivery-areas")
	{
		areas.POST("", h.createDeliveryArea)
		areas.GET("", h.listDeliveryAreas)
		areas.GET("/:areaID", h.getDeliveryArea)
		areas.PUT("/:areaID", h.updateDeliveryArea)
		areas.DELETE("/:areaID", h.deleteDeliveryArea)
	}
}

// checkDelivery godoc
// @Summary Check delivery availability
// @Description Tells whether a coordinate lies inside any active delivery area. Coordinates may be numbers or numeric strings.
// @Tags delivery
// @Accept json
// @Produce json
// @Param check body dto.CheckDeliveryRequest true "Coordinate to check"
// @Success 200 {object} dto.CheckDeliveryResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid coordinates"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /delivery/check [post]
func (h *deliveryHandler) checkDelivery(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CheckDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !req.Latitude.Valid || !req.Longitude.Valid {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "latitude and longitude must be numeric"})
		return
	}

	match, err := h.deliveryService.CheckDeliveryAvailability(c.Request.Context(), req.Latitude.Value, req.Longitude.Value, req.City)
	if err != nil {
		respondWithError(c, logger, err, "Failed to check delivery availability")
		return
	}

	if match != nil {
		logger.Debug("Delivery available",
			slog.String("area_id", match.Delivery.AreaID),
			slog.Float64("distance_km", match.Distance))
	}
	c.JSON(http.StatusOK, dto.ToCheckDeliveryResponse(match, deliveryNotAvailableMessage))
}

// createDeliveryArea godoc
// @Summary Create a delivery area
// @Tags delivery
// @Accept json
// @Produce json
// @Param area body dto.DeliveryAreaRequest true "Delivery area"
// @Success 201 {object} dto.DeliveryAreaResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /delivery-areas [post]
func (h *deliveryHandler) createDeliveryArea(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.DeliveryAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	area, err := h.deliveryService.CreateDeliveryArea(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create delivery area")
		return
	}

	logger.Info("Delivery area created", slog.String("area_id", area.AreaID), slog.String("city", area.City))
	c.JSON(http.StatusCreated, dto.ToDeliveryAreaResponse(area))
}

// listDeliveryAreas godoc
// @Summary List delivery areas
// @Tags delivery
// @Produce json
// @Param city query string false "Filter by city (case-insensitive)"
// @Param includeInactive query bool false "Include inactive areas"
// @Success 200 {array} dto.DeliveryAreaResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /delivery-areas [get]
func (h *deliveryHandler) listDeliveryAreas(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListDeliveryAreasParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	areas, err := h.deliveryService.ListDeliveryAreas(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list delivery areas")
		return
	}

	c.JSON(http.StatusOK, dto.ToListDeliveryAreaResponse(areas))
}

// getDeliveryArea godoc
// @Summary Get a delivery area
// @Tags delivery
// @Produce json
// @Param areaID path string true "Delivery area ID"
// @Success 200 {object} dto.DeliveryAreaResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Delivery area not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /delivery-areas/{areaID} [get]
func (h *deliveryHandler) getDeliveryArea(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	areaID := c.Param("areaID")

	area, err := h.deliveryService.GetDeliveryArea(c.Request.Context(), areaID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve delivery area")
		return
	}

	c.JSON(http.StatusOK, dto.ToDeliveryAreaResponse(area))
}

// updateDeliveryArea godoc
// @Summary Replace a delivery area
// @Tags delivery
// @Accept json
// @Produce json
// @Param areaID path string true "Delivery area ID"
// @Param area body dto.DeliveryAreaRequest true "Delivery area"
// @Success 200 {object} dto.DeliveryAreaResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Delivery area not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /delivery-areas/{areaID} [put]
func (h *deliveryHandler) updateDeliveryArea(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	areaID := c.Param("areaID")

	var req dto.DeliveryAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	area, err := h.deliveryService.UpdateDeliveryArea(c.Request.Context(), areaID, req, userID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("area_id", areaID)), err, "Failed to update delivery area")
		return
	}

	c.JSON(http.StatusOK, dto.ToDeliveryAreaResponse(area))
}

// deleteDeliveryArea godoc
// @Summary Delete a delivery area
// @Tags delivery
// @Param areaID path string true "Delivery area ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Delivery area not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /delivery-areas/{areaID} [delete]
func (h *deliveryHandler) deleteDeliveryArea(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	areaID := c.Param("areaID")

	if err := h.deliveryService.DeleteDeliveryArea(c.Request.Context(), areaID); err != nil {
		respondWithError(c, logger.With(slog.String("area_id", areaID)), err, "Failed to delete delivery area")
		return
	}

	logger.Info("Delivery area deleted", slog.String("area_id", areaID))
	c.Status(http.StatusNoContent)
}
