package model

import "time"

type PaymentMethodType string

const (
	PaymentMethodMpesa PaymentMethodType = "mpesa"
	PaymentMethodCard  PaymentMethodType = "card"
)

type PaymentMethod struct {
	ID          int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64             `gorm:"not null;index" json:"user_id"`
	MethodType  PaymentMethodType `gorm:"type:varchar(20);not null;default:'mpesa'" json:"method_type"`
	PhoneNumber string            `gorm:"type:varchar(15)" json:"phone_number"`
	IsDefault   bool              `gorm:"not null;default:false" json:"is_default"`
	CreatedAt   time.Time         `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
