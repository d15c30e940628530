package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// ResultCode 0 が成功
const mpesaResultSuccess = 0

// DarajaコールバックのJSON。トランスポートレベルの認証はないので中身は信用しない。
type STKCallbackPayload struct {
	Body struct {
		StkCallback STKCallback `json:"stkCallback"`
	} `json:"Body"`
}

type STKCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultCode        int    `json:"ResultCode"`
	ResultDesc        string `json:"ResultDesc"`
	CallbackMetadata  struct {
		Item []CallbackItem `json:"Item"`
	} `json:"CallbackMetadata"`
}

// Valueは数値のことも文字列のこともある
type CallbackItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

type CallbackResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type CallbackUsecase struct {
	tx  repo.TransactionManager
	loc *time.Location
}

func NewCallbackUsecase(tx repo.TransactionManager, loc *time.Location) *CallbackUsecase {
	return &CallbackUsecase{tx: tx, loc: loc}
}

// ProcessCallback は台帳・セッション・注文を1トランザクションで確定する。
// どんな失敗も構造化した結果に畳む（ゲートウェイ側のリトライを壊さない）。
func (u *CallbackUsecase) ProcessCallback(ctx context.Context, payload STKCallbackPayload) CallbackResult {
	cb := payload.Body.StkCallback
	if cb.CheckoutRequestID == "" {
		return CallbackResult{Status: "error", Message: "missing CheckoutRequestID"}
	}

	meta, err := parseCallbackMetadata(cb, u.loc)
	if err != nil {
		return CallbackResult{Status: "error", Message: err.Error()}
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//行ロック取得。同じIDの二重配送はここで直列化される。
		mt, err := r.MpesaTransactions().FindByCheckoutRequestIDForUpdate(ctx, cb.CheckoutRequestID)
		if err == repo.ErrNotFound {
			return fmt.Errorf("no matching transaction for CheckoutRequestID %s", cb.CheckoutRequestID)
		}
		if err != nil {
			return err
		}

		session, found, err := r.CheckoutSessions().FindByOrderID(ctx, mt.OrderID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("checkout session not found for order %d", mt.OrderID)
		}

		//冪等性ガード。適用済みセッションはCheckoutRequestIDをレシート欄に持っている。
		if session.MpesaReceiptNumber == cb.CheckoutRequestID {
			return fmt.Errorf("callback already processed")
		}

		if cb.ResultCode != mpesaResultSuccess {
			//失敗は台帳だけ更新する。注文・セッションは触らない。
			resultCode := cb.ResultCode
			mt.Status = model.MpesaStatusFailed
			mt.ResultCode = &resultCode
			mt.ResultDesc = cb.ResultDesc
			return r.MpesaTransactions().Update(ctx, mt)
		}

		//成功：セッション・台帳・注文の4書き込みを同時コミット
		session.MpesaReceiptNumber = cb.CheckoutRequestID
		session.TransactionDate = meta.TransactionDate
		session.Status = model.CheckoutStatusCompleted
		if err := r.CheckoutSessions().Update(ctx, session); err != nil {
			return err
		}

		resultCode := cb.ResultCode
		mt.Status = model.MpesaStatusSuccessful
		mt.MpesaReceiptNumber = meta.ReceiptNumber
		mt.Amount = meta.Amount
		mt.TransactionDate = meta.TransactionDate
		if meta.PhoneNumber != "" {
			mt.PhoneNumber = meta.PhoneNumber
		}
		mt.ResultCode = &resultCode
		mt.ResultDesc = cb.ResultDesc
		if err := r.MpesaTransactions().Update(ctx, mt); err != nil {
			return err
		}

		return r.Orders().UpdatePayment(ctx, mt.OrderID, model.OrderStatusProcessing, model.PaymentStatusPaid)
	})

	if err != nil {
		return CallbackResult{Status: "error", Message: err.Error()}
	}
	return CallbackResult{Status: "success", Message: "Callback processed successfully"}
}

type callbackMetadata struct {
	Amount          decimal.Decimal
	ReceiptNumber   string
	TransactionDate *time.Time
	PhoneNumber     string
}

func parseCallbackMetadata(cb STKCallback, loc *time.Location) (callbackMetadata, error) {
	meta := callbackMetadata{Amount: decimal.Zero}

	for _, item := range cb.CallbackMetadata.Item {
		switch item.Name {
		case "Amount":
			amount, err := decimalFromValue(item.Value)
			if err != nil {
				return callbackMetadata{}, fmt.Errorf("invalid Amount: %v", item.Value)
			}
			meta.Amount = amount
		case "MpesaReceiptNumber":
			meta.ReceiptNumber = stringFromValue(item.Value)
		case "TransactionDate":
			raw := stringFromValue(item.Value)
			if raw == "" {
				continue
			}
			//YYYYMMDDHHMMSSを設定タイムゾーンで解釈する
			t, err := time.ParseInLocation("20060102150405", raw, loc)
			if err != nil {
				return callbackMetadata{}, fmt.Errorf("invalid TransactionDate: %s", raw)
			}
			meta.TransactionDate = &t
		case "PhoneNumber":
			meta.PhoneNumber = stringFromValue(item.Value)
		}
	}

	return meta, nil
}

func decimalFromValue(v interface{}) (decimal.Decimal, error) {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		return decimal.NewFromString(t)
	case nil:
		return decimal.Zero, nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported number %T", v)
	}
}

func stringFromValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
