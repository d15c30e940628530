package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type MpesaTransactionStatus string

const (
	MpesaStatusPending    MpesaTransactionStatus = "pending"
	MpesaStatusSuccessful MpesaTransactionStatus = "successful"
	MpesaStatusFailed     MpesaTransactionStatus = "failed"
)

// 決済台帳。注文につき1行（order_id unique）。
// checkout_request_idがコールバック照合のキー。行は削除しない。
type MpesaTransaction struct {
	ID                 int64                  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID            int64                  `gorm:"not null;uniqueIndex" json:"order_id"`
	CheckoutSessionID  *int64                 `gorm:"uniqueIndex" json:"checkout_session_id"`
	MerchantRequestID  string                 `gorm:"type:varchar(255);not null;uniqueIndex" json:"merchant_request_id"`
	CheckoutRequestID  string                 `gorm:"type:varchar(255);not null;uniqueIndex" json:"checkout_request_id"`
	MpesaReceiptNumber string                 `gorm:"type:varchar(255)" json:"mpesa_receipt_number"`
	TransactionDate    *time.Time             `json:"transaction_date"`
	PhoneNumber        string                 `gorm:"type:varchar(12);not null" json:"phone_number"`
	Amount             decimal.Decimal        `gorm:"type:decimal(12,2);not null" json:"amount"`
	ResultCode         *int                   `json:"result_code"`
	ResultDesc         string                 `gorm:"type:varchar(255)" json:"result_desc"`
	Status             MpesaTransactionStatus `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	CreatedAt          time.Time              `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time              `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
