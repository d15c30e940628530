package repository

import (
	"context"

	"app/internal/domain/model"
)

type ShippingAddressRepository interface {
	FindByID(ctx context.Context, addressID int64) (model.ShippingAddress, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.ShippingAddress, error)
	Create(ctx context.Context, a model.ShippingAddress) (int64, error)
	Update(ctx context.Context, a model.ShippingAddress) error
	Delete(ctx context.Context, addressID int64) error

	//user内でdefaultは1つ
	SetDefault(ctx context.Context, userID int64, addressID int64) error
}
