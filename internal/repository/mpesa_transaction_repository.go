package repository

import (
	"context"

	"app/internal/domain/model"
)

type MpesaTransactionRepository interface {
	FindByOrderID(ctx context.Context, orderID int64) (model.MpesaTransaction, bool, error)

	//コールバック照合用。行ロックを取ってから返す（二重配送ガード）。
	//トランザクション内でのみ呼ぶこと。
	FindByCheckoutRequestIDForUpdate(ctx context.Context, checkoutRequestID string) (model.MpesaTransaction, error)

	Create(ctx context.Context, t model.MpesaTransaction) (int64, error)
	Update(ctx context.Context, t model.MpesaTransaction) error
}
