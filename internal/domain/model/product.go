package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品マスタ。カタログ管理は別システム側で、ここでは参照のみ。
type Product struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string          `gorm:"type:varchar(100);not null" json:"title"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	InStock   bool            `gorm:"not null;default:true" json:"in_stock"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
