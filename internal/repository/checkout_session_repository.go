package repository

import (
	"context"

	"app/internal/domain/model"
)

type CheckoutSessionRepository interface {
	FindByOrderID(ctx context.Context, orderID int64) (model.CheckoutSession, bool, error)
	Create(ctx context.Context, s model.CheckoutSession) (int64, error)
	Update(ctx context.Context, s model.CheckoutSession) error
}
