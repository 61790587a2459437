package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-guest-service/models"
	"hotel-guest-service/services"
	"hotel-guest-service/utils"
)

type GuestController struct {
	GuestSvc *services.GuestService
	log      *zap.Logger
}

func NewGuestController(svc *services.GuestService, log *zap.Logger) *GuestController {
	return &GuestController{
		GuestSvc: svc,
		log:      log.Named("guest_controller"),
	}
}

// ----------------------------------------------------------------------
// POST /api/v1/guests
// ----------------------------------------------------------------------
func (c *GuestController) CreateGuest(ctx *gin.Context) {
	req, ok := c.bindGuestRequest(ctx)
	if !ok {
		return
	}

	guest, err := c.GuestSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusCreated, guest)
}

// ----------------------------------------------------------------------
// GET /api/v1/guests?page=0&size=10
// ----------------------------------------------------------------------
func (c *GuestController) GetGuests(ctx *gin.Context) {
	page, err := parsePageRequest(ctx)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	guests, err := c.GuestSvc.List(ctx.Request.Context(), page)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, guests)
}

// ----------------------------------------------------------------------
// GET /api/v1/guests/:id
// ----------------------------------------------------------------------
func (c *GuestController) GetGuestByID(ctx *gin.Context) {
	id, err := parseGuestID(ctx)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	guest, err := c.GuestSvc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, guest)
}

// ----------------------------------------------------------------------
// PUT /api/v1/guests/:id
// ----------------------------------------------------------------------
func (c *GuestController) UpdateGuest(ctx *gin.Context) {
	id, err := parseGuestID(ctx)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	req, ok := c.bindGuestRequest(ctx)
	if !ok {
		return
	}

	guest, err := c.GuestSvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, guest)
}

// ----------------------------------------------------------------------
// DELETE /api/v1/guests/:id (soft delete)
// ----------------------------------------------------------------------
func (c *GuestController) DeleteGuest(ctx *gin.Context) {
	id, err := parseGuestID(ctx)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	if err := c.GuestSvc.Delete(ctx.Request.Context(), id); err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ----------------------------------------------------------------------
// GET /api/v1/guests/search?keyword=doe
// ----------------------------------------------------------------------
func (c *GuestController) SearchGuests(ctx *gin.Context) {
	c.searchByText(ctx, "keyword", c.GuestSvc.Search)
}

// GET /api/v1/guests/search/email?email=example
func (c *GuestController) SearchByEmail(ctx *gin.Context) {
	c.searchByText(ctx, "email", c.GuestSvc.SearchByEmail)
}

// GET /api/v1/guests/search/phone?phone=555
func (c *GuestController) SearchByPhone(ctx *gin.Context) {
	c.searchByText(ctx, "phone", c.GuestSvc.SearchByPhone)
}

// ----------------------------------------------------------------------
// GET /api/v1/guests/search/loyalty-points?minPoints=100
// ----------------------------------------------------------------------
func (c *GuestController) SearchByLoyaltyPoints(ctx *gin.Context) {
	minPoints, err := requiredQueryInt(ctx, "minPoints")
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	page, err := parsePageRequest(ctx)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	guests, err := c.GuestSvc.SearchByLoyaltyPoints(ctx.Request.Context(), minPoints, page)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, guests)
}

type textSearch func(ctx context.Context, term string, page models.PageRequest) (models.Page[models.GuestResponse], error)

func (c *GuestController) searchByText(ctx *gin.Context, param string, search textSearch) {
	term, err := requiredQuery(ctx, param)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	page, err := parsePageRequest(ctx)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	guests, err := search(ctx.Request.Context(), term, page)
	if err != nil {
		writeServiceError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, guests)
}

func (c *GuestController) bindGuestRequest(ctx *gin.Context) (models.GuestRequest, bool) {
	var req models.GuestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return req, false
	}
	if err := validateGuestRequest(req); err != nil {
		writeServiceError(ctx, c.log, err)
		return req, false
	}
	return req, true
}
