package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/services"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type PaymentHandler struct {
	log            *logger.Logger
	paymentService services.PaymentService
}

func NewPaymentHandler(log *logger.Logger, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		log:            log.With("handler", "PaymentHandler"),
		paymentService: paymentService,
	}
}

type createOrderRequest struct {
	CourseID    string `json:"course_id" binding:"required"`
	Source      string `json:"source" binding:"required"`
	AmountPaise int64  `json:"amount" binding:"required"`
	Mobile      string `json:"mobile"`
	RedirectURL string `json:"redirect_url"`
}

func (r *createOrderRequest) courseRef() (types.CourseRef, error) {
	id, err := uuid.Parse(r.CourseID)
	if err != nil {
		return types.CourseRef{}, apierr.Validation("course_id must be a uuid")
	}
	return types.CourseRef{Source: types.CourseSource(r.Source), ID: id}, nil
}

func (h *PaymentHandler) CreateRazorpayOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("course_id, source and amount are required"))
		return
	}
	ref, err := req.courseRef()
	if err != nil {
		RespondError(c, err)
		return
	}

	result, err := h.paymentService.CreateRazorpayOrder(c.Request.Context(), ref, req.AmountPaise, req.Mobile)
	if err != nil {
		h.log.Error("CreateRazorpayOrder failed", "course_id", req.CourseID, "error", err)
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *PaymentHandler) InitiatePhonePe(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("course_id, source and amount are required"))
		return
	}
	ref, err := req.courseRef()
	if err != nil {
		RespondError(c, err)
		return
	}

	result, err := h.paymentService.InitiatePhonePe(c.Request.Context(), ref, req.AmountPaise, req.Mobile, req.RedirectURL)
	if err != nil {
		h.log.Error("InitiatePhonePe failed", "course_id", req.CourseID, "error", err)
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

type confirmPaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("order_id is required"))
		return
	}
	if err := h.paymentService.MarkPurchasePaid(c.Request.Context(), req.OrderID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
