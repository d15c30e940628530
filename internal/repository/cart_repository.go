package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error)
	Create(ctx context.Context, cart model.Cart) (int64, error)

	//注文確定時の一方通行（true→false）
	Deactivate(ctx context.Context, cartID int64) error
}
