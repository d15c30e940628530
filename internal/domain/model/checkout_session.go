package model

import "time"

type CheckoutSessionStatus string

const (
	CheckoutStatusDraft     CheckoutSessionStatus = "draft"
	CheckoutStatusCompleted CheckoutSessionStatus = "completed"
	CheckoutStatusFailed    CheckoutSessionStatus = "failed"
	CheckoutStatusCancelled CheckoutSessionStatus = "cancelled"
	CheckoutStatusOverPay   CheckoutSessionStatus = "over-pay"
)

// 注文と1:1。
// MpesaReceiptNumberはコールバック適用済みフラグ（適用時にCheckoutRequestIDを入れる）。
type CheckoutSession struct {
	ID                 int64                 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID            int64                 `gorm:"not null;uniqueIndex" json:"order_id"`
	Token              string                `gorm:"type:varchar(36);not null;uniqueIndex" json:"token"`
	MpesaReceiptNumber string                `gorm:"type:varchar(255)" json:"mpesa_receipt_number"`
	TransactionDate    *time.Time            `json:"transaction_date"`
	Status             CheckoutSessionStatus `gorm:"type:varchar(50);not null;default:'draft'" json:"status"`
	CreatedAt          time.Time             `gorm:"not null;autoCreateTime" json:"created_at"`
}
