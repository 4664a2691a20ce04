package api

import (
	"errors"
	"net/http"

	reqdto "carshare/internal/handler/dto/request"
	resdto "carshare/internal/handler/dto/response"
	"carshare/internal/handler/httperr"
	"carshare/internal/handler/middleware"
	"carshare/internal/usecase/commands"
	"carshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CarHandler struct {
	cmds commands.CarCommands
	q    queries.CarQueries
}

func NewCarHandler(cmds commands.CarCommands, q queries.CarQueries) *CarHandler {
	return &CarHandler{cmds: cmds, q: q}
}

// @Summary List a car
// @Description Create a car listing owned by the caller
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCarRequest true "Create car request"
// @Success 201 {object} resdto.CarResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /cars [post]
func (h *CarHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), req, ownerID)
	if err != nil {
		if errors.Is(err, commands.ErrCarValidation) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid car data", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCarView(view))
}

// @Summary Get car
// @Description Get a car listing by ID
// @Tags cars
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} resdto.CarResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cars/{id} [get]
func (h *CarHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrCarNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Car not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCarView(view))
}

// @Summary List cars
// @Description List car listings with optional location and availability filters
// @Tags cars
// @Produce json
// @Param location query string false "Filter by location"
// @Param available query bool false "Only available cars"
// @Param limit query int false "Max items (default 20)"
// @Param offset query int false "Items to skip"
// @Success 200 {array} resdto.CarResponse
// @Router /cars [get]
func (h *CarHandler) List(c *gin.Context) {
	var filters queries.CarFilters
	if location := c.Query("location"); location != "" {
		filters.Location = &location
	}
	filters.AvailableOnly = c.Query("available") == "true"

	limit, offset := paginationParams(c)
	views, err := h.q.List(c.Request.Context(), filters, limit, offset)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list cars", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCarViews(views))
}

// @Summary List own cars
// @Description List car listings owned by the caller
// @Tags cars
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param offset query int false "Items to skip"
// @Success 200 {array} resdto.CarResponse
// @Failure 401 {object} map[string]string
// @Router /cars/mine [get]
func (h *CarHandler) ListMine(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	limit, offset := paginationParams(c)
	views, err := h.q.ListByOwner(c.Request.Context(), ownerID, limit, offset)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list cars", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCarViews(views))
}

// @Summary Update car
// @Description Update own car listing (admins can update any)
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Param request body reqdto.UpdateCarRequest true "Update car request"
// @Success 200 {object} resdto.CarResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cars/{id} [patch]
func (h *CarHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req reqdto.UpdateCarRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Update(c.Request.Context(), id, req, actorID, role.String())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCarNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Car not found", nil)
		case errors.Is(err, commands.ErrCarForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		case errors.Is(err, commands.ErrCarValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid car data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCarView(view))
}

// @Summary Delete car
// @Description Delete own car listing (admins can delete any)
// @Tags cars
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cars/{id} [delete]
func (h *CarHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	if err := h.cmds.Delete(c.Request.Context(), id, actorID, role.String()); err != nil {
		switch {
		case errors.Is(err, commands.ErrCarNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Car not found", nil)
		case errors.Is(err, commands.ErrCarForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		case errors.Is(err, commands.ErrCarInUse):
			httperr.AbortWithError(c, http.StatusConflict, err, "Car has bookings and cannot be deleted", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
