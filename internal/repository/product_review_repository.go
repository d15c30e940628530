package repository

import (
	"context"

	"app/internal/domain/model"
)

type ProductReviewRepository interface {
	FindByID(ctx context.Context, reviewID int64) (model.ProductReview, error)
	ListByProductID(ctx context.Context, productID int64) ([]model.ProductReview, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.ProductReview, error)
	Create(ctx context.Context, r model.ProductReview) (int64, error)
	Update(ctx context.Context, r model.ProductReview) error
	Delete(ctx context.Context, reviewID int64) error
}
