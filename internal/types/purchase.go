package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PurchaseStatusPending = "pending"
	PurchaseStatusPaid    = "paid"
	PurchaseStatusFailed  = "failed"

	PurchaseGatewayRazorpay = "razorpay"
	PurchaseGatewayPhonePe  = "phonepe"
)

type Purchase struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	CourseSource string    `gorm:"column:course_source;not null" json:"course_source"` // mux|vimeo|cf
	Gateway      string    `gorm:"column:gateway;not null;index" json:"gateway"`
	// Gateway-side order id (Razorpay order_id / PhonePe merchant order id).
	GatewayOrderID string `gorm:"column:gateway_order_id;not null;uniqueIndex" json:"gateway_order_id"`
	Amount         int64  `gorm:"column:amount;not null" json:"amount"` // paise
	Currency       string `gorm:"column:currency;not null;default:'INR'" json:"currency"`
	Status         string `gorm:"column:status;not null;default:'pending';index" json:"status"`
	BuyerMobile    string `gorm:"column:buyer_mobile" json:"buyer_mobile,omitempty"`
	// Raw gateway response, kept verbatim for support debugging.
	GatewayPayload datatypes.JSON `gorm:"column:gateway_payload" json:"gateway_payload,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Purchase) TableName() string { return "purchases" }
