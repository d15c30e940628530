package model

import "time"

type ShippingAddress struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	FullName    string    `gorm:"type:varchar(100);not null" json:"full_name"`
	PhoneNumber string    `gorm:"type:varchar(15);not null" json:"phone_number"`
	AddressLine string    `gorm:"type:varchar(255);not null" json:"address_line"`
	City        string    `gorm:"type:varchar(100);not null" json:"city"`
	PostalCode  string    `gorm:"type:varchar(20)" json:"postal_code"`
	IsDefault   bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
