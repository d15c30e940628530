package repository

import (
	"context"

	"app/internal/domain/model"
)

type PaymentMethodRepository interface {
	FindByID(ctx context.Context, methodID int64) (model.PaymentMethod, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.PaymentMethod, error)
	Create(ctx context.Context, m model.PaymentMethod) (int64, error)
	Update(ctx context.Context, m model.PaymentMethod) error
	Delete(ctx context.Context, methodID int64) error
	SetDefault(ctx context.Context, userID int64, methodID int64) error
}
