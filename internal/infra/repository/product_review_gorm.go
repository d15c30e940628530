package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductReviewGormRepository struct {
	db *gorm.DB
}

func NewProductReviewGormRepository(db *gorm.DB) *ProductReviewGormRepository {
	return &ProductReviewGormRepository{db: db}
}

func (r *ProductReviewGormRepository) FindByID(ctx context.Context, reviewID int64) (model.ProductReview, error) {
	var rv model.ProductReview
	err := r.db.WithContext(ctx).Where("id = ?", reviewID).First(&rv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductReview{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductReview{}, err
	}
	return rv, nil
}

func (r *ProductReviewGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.ProductReview, error) {
	var list []model.ProductReview
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return []model.ProductReview{}, err
	}
	return list, nil
}

func (r *ProductReviewGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.ProductReview, error) {
	var list []model.ProductReview
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return []model.ProductReview{}, err
	}
	return list, nil
}

func (r *ProductReviewGormRepository) Create(ctx context.Context, rv model.ProductReview) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&rv).Error; err != nil {
		return 0, err
	}
	return rv.ID, nil
}

func (r *ProductReviewGormRepository) Update(ctx context.Context, rv model.ProductReview) error {
	res := r.db.WithContext(ctx).Model(&model.ProductReview{}).
		Where("id = ?", rv.ID).
		Updates(map[string]interface{}{
			"rating":      rv.Rating,
			"review_text": rv.ReviewText,
			"updated_at":  time.Now(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductReviewGormRepository) Delete(ctx context.Context, reviewID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", reviewID).Delete(&model.ProductReview{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
