package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文時点の価格を必ず保存する（商品価格が変わっても動かない）。
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Size      string          `gorm:"type:varchar(20)" json:"size"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
