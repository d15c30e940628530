package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MpesaTransactionGormRepository struct {
	db *gorm.DB
}

func NewMpesaTransactionGormRepository(db *gorm.DB) *MpesaTransactionGormRepository {
	return &MpesaTransactionGormRepository{db: db}
}

func (r *MpesaTransactionGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.MpesaTransaction, bool, error) {
	var t model.MpesaTransaction
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&t).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MpesaTransaction{}, false, nil
	}
	if err != nil {
		return model.MpesaTransaction{}, false, err
	}
	return t, true, nil
}

// SELECT ... FOR UPDATE。
// 同じCheckoutRequestIDのコールバックが同時に来ても、2本目はここで待たされて
// コミット後の行を見る（冪等性ガードが効く）。
func (r *MpesaTransactionGormRepository) FindByCheckoutRequestIDForUpdate(ctx context.Context, checkoutRequestID string) (model.MpesaTransaction, error) {
	var t model.MpesaTransaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("checkout_request_id = ?", checkoutRequestID).
		First(&t).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MpesaTransaction{}, repo.ErrNotFound
	}
	if err != nil {
		return model.MpesaTransaction{}, err
	}
	return t, nil
}

func (r *MpesaTransactionGormRepository) Create(ctx context.Context, t model.MpesaTransaction) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return 0, err
	}
	return t.ID, nil
}

func (r *MpesaTransactionGormRepository) Update(ctx context.Context, t model.MpesaTransaction) error {
	res := r.db.WithContext(ctx).Model(&model.MpesaTransaction{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"checkout_session_id":  t.CheckoutSessionID,
			"merchant_request_id":  t.MerchantRequestID,
			"checkout_request_id":  t.CheckoutRequestID,
			"mpesa_receipt_number": t.MpesaReceiptNumber,
			"transaction_date":     t.TransactionDate,
			"phone_number":         t.PhoneNumber,
			"amount":               t.Amount,
			"result_code":          t.ResultCode,
			"result_desc":          t.ResultDesc,
			"status":               t.Status,
			"updated_at":           time.Now(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
