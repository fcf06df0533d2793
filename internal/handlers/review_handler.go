package handlers

import (
	"net/http"

	"agrihub_backend/internal/middleware"
	"agrihub_backend/internal/models"
	"agrihub_backend/internal/services"
	"agrihub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	// Approved reviews for a provider are public.
	rg.GET("/providers/:id/reviews", h.ListForProvider)

	reviews := rg.Group("/reviews")
	reviews.Use(authMW)
	{
		reviews.POST("", middleware.RequireRoles(models.UserRoleOwner), h.Create)
	}

	admin := rg.Group("/admin/reviews")
	admin.Use(authMW)
	admin.Use(middleware.AdminMiddleware())
	{
		admin.PATCH("/:id", h.Moderate)
	}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	authorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(authorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ListForProvider(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	response, err := h.reviewService.ListForProvider(c.Param("id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ReviewHandler) Moderate(c *gin.Context) {
	var req dto.ModerateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.reviewService.Moderate(c.Param("id"), req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review status updated",
	})
}
