package handlers

import (
	"net/http"

	"agrihub_backend/internal/middleware"
	"agrihub_backend/internal/models"
	"agrihub_backend/internal/services"
	"agrihub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
	}
}

func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	bookings := rg.Group("/bookings")
	bookings.Use(authMW)
	{
		bookings.POST("", middleware.RequireRoles(models.UserRoleOwner), h.Request)
		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/confirm", middleware.RequireRoles(models.UserRoleProvider), h.Confirm)
		bookings.POST("/:id/decline", middleware.RequireRoles(models.UserRoleProvider), h.Decline)
		bookings.POST("/:id/complete", middleware.RequireRoles(models.UserRoleProvider), h.Complete)
		bookings.POST("/:id/cancel", middleware.RequireRoles(models.UserRoleOwner), h.Cancel)
	}

	my := rg.Group("/my/bookings")
	my.Use(authMW)
	{
		my.GET("", h.ListMine)
	}
}

func (h *BookingHandler) Request(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Request(ownerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) Get(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	booking, err := h.bookingService.Get(actorID, role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.bookingService.Confirm)
}

func (h *BookingHandler) Decline(c *gin.Context) {
	h.transition(c, h.bookingService.Decline)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, h.bookingService.Complete)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.bookingService.Cancel)
}

// transition is shared by the four status endpoints; the service layer
// enforces who may perform which transition.
func (h *BookingHandler) transition(c *gin.Context, op func(actorID, id string) (*models.Booking, error)) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	booking, err := op(actorID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ListMine returns the caller's bookings from their side of the deal:
// providers see incoming requests, owners see their own.
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	var filter dto.BookingFilterRequest
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	var (
		response *dto.BookingListResponse
		err      error
	)
	if role == models.UserRoleProvider {
		response, err = h.bookingService.ListAsProvider(userID, &filter)
	} else {
		response, err = h.bookingService.ListAsOwner(userID, &filter)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
