package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, itemID int64) (model.CartItem, error)

	//同じ商品・同じサイズは1行にまとめる
	FindByCartProductSize(ctx context.Context, cartID int64, productID int64, size string) (model.CartItem, bool, error)
	Create(ctx context.Context, item model.CartItem) (int64, error)
	Update(ctx context.Context, item model.CartItem) error
	Delete(ctx context.Context, itemID int64) error
}
