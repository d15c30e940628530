package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/infra/mpesa"
)

// コールバックが届かないときの手動照会。台帳は変更しない。
type QueryUsecase struct {
	gateway PaymentGateway
}

func NewQueryUsecase(gateway PaymentGateway) *QueryUsecase {
	return &QueryUsecase{gateway: gateway}
}

func (u *QueryUsecase) QueryStatus(ctx context.Context, checkoutRequestID string) (mpesa.STKQueryResponse, error) {
	id := strings.TrimSpace(checkoutRequestID)
	if id == "" {
		return mpesa.STKQueryResponse{}, NewHTTPError(http.StatusBadRequest, "checkout_request_id required")
	}

	out, err := u.gateway.STKQuery(ctx, id)
	if err != nil {
		return mpesa.STKQueryResponse{}, NewHTTPError(http.StatusBadGateway, "payment gateway error")
	}

	//ゲートウェイの判定はそのまま返す。台帳への反映はコールバックの仕事。
	return out, nil
}
