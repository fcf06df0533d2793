package handlers

import (
	"net/http"

	"agrihub_backend/internal/middleware"
	"agrihub_backend/internal/models"
	"agrihub_backend/internal/services"
	"agrihub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	*BaseHandler
	listingService services.ListingService
}

func NewListingHandler(base *BaseHandler, listingService services.ListingService) *ListingHandler {
	return &ListingHandler{
		BaseHandler:    base,
		listingService: listingService,
	}
}

func (h *ListingHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	// Browsing and reading listings is public.
	listings := rg.Group("/listings")
	{
		listings.GET("", h.List)
		listings.GET("/:id", h.Get)
	}

	protected := rg.Group("/listings")
	protected.Use(authMW)
	{
		protected.POST("", middleware.RequireRoles(models.UserRoleProvider), h.Create)
		protected.PATCH("/:id", h.Update)
		protected.DELETE("/:id", h.Archive)
	}

	mine := rg.Group("/my/listings")
	mine.Use(authMW)
	mine.Use(middleware.RequireRoles(models.UserRoleProvider))
	{
		mine.GET("", h.ListMine)
	}
}

func (h *ListingHandler) Create(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	listing, err := h.listingService.Create(providerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.listingService.Get(c.Param("id"), true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) Update(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req dto.UpdateListingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	listing, err := h.listingService.Update(actorID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) Archive(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	if err := h.listingService.Archive(actorID, role, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Listing archived",
	})
}

func (h *ListingHandler) List(c *gin.Context) {
	var filter dto.ListingFilterRequest
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	response, err := h.listingService.List(&filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ListingHandler) ListMine(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	listings, err := h.listingService.ListByProvider(providerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings": listings,
	})
}
