package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CheckoutSessionGormRepository struct {
	db *gorm.DB
}

func NewCheckoutSessionGormRepository(db *gorm.DB) *CheckoutSessionGormRepository {
	return &CheckoutSessionGormRepository{db: db}
}

func (r *CheckoutSessionGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.CheckoutSession, bool, error) {
	var s model.CheckoutSession
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&s).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CheckoutSession{}, false, nil
	}
	if err != nil {
		return model.CheckoutSession{}, false, err
	}
	return s, true, nil
}

func (r *CheckoutSessionGormRepository) Create(ctx context.Context, s model.CheckoutSession) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return 0, err
	}
	return s.ID, nil
}

func (r *CheckoutSessionGormRepository) Update(ctx context.Context, s model.CheckoutSession) error {
	res := r.db.WithContext(ctx).Model(&model.CheckoutSession{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"mpesa_receipt_number": s.MpesaReceiptNumber,
			"transaction_date":     s.TransactionDate,
			"status":               s.Status,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
