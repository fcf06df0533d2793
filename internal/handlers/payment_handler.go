package handlers

import (
	"net/http"

	"agrihub_backend/internal/middleware"
	"agrihub_backend/internal/models"
	"agrihub_backend/internal/services"
	"agrihub_backend/internal/services/dto"
	"agrihub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	payments := rg.Group("/payments")
	payments.Use(authMW)
	{
		payments.POST("/initiate", middleware.RequireRoles(models.UserRoleOwner), h.Initiate)
		payments.GET("", h.ListMine)
	}

	// The gateway calls this back server to server; it authenticates
	// with the signature, not a bearer token.
	rg.POST("/payments/callback", h.Callback)

	admin := rg.Group("/admin/payments")
	admin.Use(authMW)
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("", h.AdminList)
	}
}

func (h *PaymentHandler) Initiate(c *gin.Context) {
	payerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.InitiatePaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.paymentService.Initiate(payerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Callback answers the gateway's result URL. On success the body must
// be exactly "OK<InvId>" or the gateway keeps retrying.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req dto.PaymentCallbackRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid callback parameters"))
		return
	}

	if err := h.paymentService.HandleCallback(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.String(http.StatusOK, "OK"+req.InvID)
}

func (h *PaymentHandler) ListMine(c *gin.Context) {
	payerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)

	response, err := h.paymentService.ListByPayer(payerID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *PaymentHandler) AdminList(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	response, err := h.paymentService.AdminList(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
