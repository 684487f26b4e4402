package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/phonepe"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/razorpaygw"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/repos"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type RazorpayOrderResult struct {
	OrderID     string `json:"order_id"`
	AmountPaise int64  `json:"amount"`
	Currency    string `json:"currency"`
	KeyID       string `json:"-"`
}

type PhonePeInitResult struct {
	MerchantOrderID string `json:"merchant_order_id"`
	RedirectURL     string `json:"redirect_url"`
}

// phonePePayer is the slice of the PhonePe client the service needs; the
// tests substitute a fake.
type phonePePayer interface {
	CreatePayPage(ctx context.Context, in phonepe.PayPageRequest) (phonepe.PayPageResult, error)
}

// PaymentService creates gateway orders and tracks them as purchase rows.
// Amounts are always paise. Settlement reconciliation is out of scope; a
// purchase moves pending -> paid on the gateway callback and stays pending
// otherwise.
type PaymentService interface {
	CreateRazorpayOrder(ctx context.Context, ref types.CourseRef, amountPaise int64, mobile string) (*RazorpayOrderResult, error)
	InitiatePhonePe(ctx context.Context, ref types.CourseRef, amountPaise int64, mobile, redirectURL string) (*PhonePeInitResult, error)
	MarkPurchasePaid(ctx context.Context, gatewayOrderID string) error
}

type paymentService struct {
	db           *gorm.DB
	log          *logger.Logger
	purchaseRepo repos.PurchaseRepo
	resolver     ResolverService
	razorpay     razorpaygw.OrderCreator
	phonePe      phonePePayer
}

func NewPaymentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	purchaseRepo repos.PurchaseRepo,
	resolver ResolverService,
	razorpay razorpaygw.OrderCreator,
	phonePe phonePePayer,
) PaymentService {
	return &paymentService{
		db:           db,
		log:          baseLog.With("service", "PaymentService"),
		purchaseRepo: purchaseRepo,
		resolver:     resolver,
		razorpay:     razorpay,
		phonePe:      phonePe,
	}
}

func (ps *paymentService) CreateRazorpayOrder(ctx context.Context, ref types.CourseRef, amountPaise int64, mobile string) (*RazorpayOrderResult, error) {
	if amountPaise <= 0 {
		return nil, apierr.Validation("amount must be positive")
	}
	if ps.razorpay == nil {
		return nil, apierr.BackendUnavailable("razorpay", fmt.Errorf("gateway not configured"))
	}
	if _, err := ps.resolver.ResolveByID(ctx, nil, ref.ID); err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("course_%s", ref.ID.String())
	order, err := ps.razorpay.CreateOrder(amountPaise, "INR", receipt, map[string]any{
		"course_id": ref.ID.String(),
		"source":    string(ref.Source),
	})
	if err != nil {
		return nil, apierr.BackendUnavailable("razorpay", err)
	}

	payload, _ := json.Marshal(order)
	purchase := &types.Purchase{
		CourseID:       ref.ID,
		CourseSource:   string(ref.Source),
		Gateway:        types.PurchaseGatewayRazorpay,
		GatewayOrderID: order.ID,
		Amount:         amountPaise,
		Currency:       "INR",
		Status:         types.PurchaseStatusPending,
		BuyerMobile:    mobile,
		GatewayPayload: datatypes.JSON(payload),
	}
	if _, err := ps.purchaseRepo.Create(ctx, nil, purchase); err != nil {
		return nil, apierr.Store(fmt.Errorf("record razorpay purchase: %w", err))
	}

	ps.log.Info("razorpay order created", "order_id", order.ID, "course_id", ref.ID.String(), "buyer_mobile", mobile)
	return &RazorpayOrderResult{
		OrderID:     order.ID,
		AmountPaise: amountPaise,
		Currency:    "INR",
	}, nil
}

func (ps *paymentService) InitiatePhonePe(ctx context.Context, ref types.CourseRef, amountPaise int64, mobile, redirectURL string) (*PhonePeInitResult, error) {
	if amountPaise <= 0 {
		return nil, apierr.Validation("amount must be positive")
	}
	if _, err := ps.resolver.ResolveByID(ctx, nil, ref.ID); err != nil {
		return nil, err
	}

	// The merchant order id is ours, minted before the gateway call so the
	// pending row can always be matched to the callback.
	merchantOrderID := fmt.Sprintf("vid_%s", newMerchantOrderSuffix())

	result, err := ps.phonePe.CreatePayPage(ctx, phonepe.PayPageRequest{
		MerchantOrderID: merchantOrderID,
		AmountPaise:     amountPaise,
		RedirectURL:     redirectURL,
	})
	if err != nil {
		return nil, apierr.BackendUnavailable("phonepe", err)
	}

	payload, _ := json.Marshal(result)
	purchase := &types.Purchase{
		CourseID:       ref.ID,
		CourseSource:   string(ref.Source),
		Gateway:        types.PurchaseGatewayPhonePe,
		GatewayOrderID: merchantOrderID,
		Amount:         amountPaise,
		Currency:       "INR",
		Status:         types.PurchaseStatusPending,
		BuyerMobile:    mobile,
		GatewayPayload: datatypes.JSON(payload),
	}
	if _, err := ps.purchaseRepo.Create(ctx, nil, purchase); err != nil {
		return nil, apierr.Store(fmt.Errorf("record phonepe purchase: %w", err))
	}

	ps.log.Info("phonepe pay page created", "merchant_order_id", merchantOrderID, "course_id", ref.ID.String(), "buyer_mobile", mobile)
	return &PhonePeInitResult{
		MerchantOrderID: merchantOrderID,
		RedirectURL:     result.RedirectURL,
	}, nil
}

func (ps *paymentService) MarkPurchasePaid(ctx context.Context, gatewayOrderID string) error {
	if gatewayOrderID == "" {
		return apierr.Validation("order id is required")
	}
	purchase, err := ps.purchaseRepo.GetByGatewayOrderID(ctx, nil, gatewayOrderID)
	if err != nil {
		return apierr.Store(fmt.Errorf("load purchase: %w", err))
	}
	if purchase == nil {
		return apierr.NotFound("no purchase with order id %q", gatewayOrderID)
	}
	if purchase.Status == types.PurchaseStatusPaid {
		// Gateways retry callbacks; a second confirm is a no-op.
		return nil
	}
	if err := ps.purchaseRepo.UpdateStatus(ctx, nil, purchase.ID, types.PurchaseStatusPaid); err != nil {
		return apierr.Store(fmt.Errorf("mark purchase paid: %w", err))
	}
	ps.log.Info("purchase confirmed", "order_id", gatewayOrderID, "course_id", purchase.CourseID.String())
	return nil
}

func newMerchantOrderSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
