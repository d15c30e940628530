package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"app/internal/domain/model"
	"app/internal/infra/mpesa"
	repo "app/internal/repository"
)

// PaymentGatewayはDarajaクライアントの約束（テストでは差し替える）。
type PaymentGateway interface {
	STKPush(ctx context.Context, in mpesa.STKPushInput) (mpesa.STKPushResponse, error)
	STKQuery(ctx context.Context, checkoutRequestID string) (mpesa.STKQueryResponse, error)
}

type IDGenerator interface {
	NewID() string
}

type CheckoutUsecase struct {
	tx        repo.TransactionManager
	users     repo.UserRepository
	orders    repo.OrderRepository
	addresses repo.ShippingAddressRepository
	methods   repo.PaymentMethodRepository
	gateway   PaymentGateway
	idGen     IDGenerator
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	orders repo.OrderRepository,
	addresses repo.ShippingAddressRepository,
	methods repo.PaymentMethodRepository,
	gateway PaymentGateway,
	idGen IDGenerator,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:        tx,
		users:     users,
		orders:    orders,
		addresses: addresses,
		methods:   methods,
		gateway:   gateway,
		idGen:     idGen,
	}
}

type InitiateCheckoutInput struct {
	OrderID           int64
	ShippingAddressID int64
	PaymentMethodID   int64
	PhoneNumber       string
}

type CheckoutOutput struct {
	CheckoutRequestID   string `json:"checkout_request_id"`
	MerchantRequestID   string `json:"merchant_request_id"`
	ResponseCode        string `json:"response_code"`
	ResponseDescription string `json:"response_description"`
	CustomerMessage     string `json:"customer_message"`
}

// InitiateCheckout はSTK pushを発行して台帳にpending行を書く。
// 未払いチェックはゲートウェイ呼び出しより前。push失敗なら台帳は触らない。
func (u *CheckoutUsecase) InitiateCheckout(ctx context.Context, userID int64, in InitiateCheckoutInput) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.OrderID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order_id")
	}
	if !isValidMpesaPhone(in.PhoneNumber) {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid M-Pesa phone number")
	}

	//停止済みアカウントからは受け付けない
	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !user.IsActive {
		return CheckoutOutput{}, NewHTTPError(http.StatusForbidden, "account is disabled")
	}

	order, err := u.orders.FindByID(ctx, in.OrderID)
	if err == repo.ErrNotFound {
		return CheckoutOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.UserID != userID {
		return CheckoutOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	//支払い済み・失敗済みはゲートウェイを呼ばずに拒否する
	if order.PaymentStatus != model.PaymentStatusUnpaid {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "order already processed")
	}

	addr, err := u.addresses.FindByID(ctx, in.ShippingAddressID)
	if err == repo.ErrNotFound {
		return CheckoutOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if addr.UserID != userID {
		return CheckoutOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	method, err := u.methods.FindByID(ctx, in.PaymentMethodID)
	if err == repo.ErrNotFound {
		return CheckoutOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if method.UserID != userID {
		return CheckoutOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	//Darajaは整数額のみ。decimalはワイヤ境界でだけ丸める。
	push, err := u.gateway.STKPush(ctx, mpesa.STKPushInput{
		PhoneNumber:      in.PhoneNumber,
		Amount:           order.TotalAmount.IntPart(),
		AccountReference: fmt.Sprintf("Order_%d", order.ID),
		TransactionDesc:  fmt.Sprintf("Payment for Order %d", order.ID),
	})
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "payment gateway error")
	}

	//push成功後にセッションと台帳をまとめて書く（1トランザクション）
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		session, found, err := r.CheckoutSessions().FindByOrderID(ctx, order.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !found {
			session = model.CheckoutSession{
				OrderID:   order.ID,
				Token:     u.idGen.NewID(),
				Status:    model.CheckoutStatusDraft,
				CreatedAt: time.Now(),
			}
			sessionID, err := r.CheckoutSessions().Create(ctx, session)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			session.ID = sessionID
		}

		var resultCode *int
		if code, convErr := strconv.Atoi(push.ResponseCode); convErr == nil {
			resultCode = &code
		}

		//注文につき台帳は1行。既存行があれば更新（同時pushでも増殖しない）。
		existing, found, err := r.MpesaTransactions().FindByOrderID(ctx, order.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if found {
			existing.CheckoutSessionID = &session.ID
			existing.MerchantRequestID = push.MerchantRequestID
			existing.CheckoutRequestID = push.CheckoutRequestID
			existing.PhoneNumber = in.PhoneNumber
			existing.Amount = order.TotalAmount
			existing.ResultCode = resultCode
			existing.ResultDesc = push.ResponseDescription
			existing.Status = model.MpesaStatusPending
			if err := r.MpesaTransactions().Update(ctx, existing); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			return nil
		}

		_, err = r.MpesaTransactions().Create(ctx, model.MpesaTransaction{
			OrderID:           order.ID,
			CheckoutSessionID: &session.ID,
			MerchantRequestID: push.MerchantRequestID,
			CheckoutRequestID: push.CheckoutRequestID,
			PhoneNumber:       in.PhoneNumber,
			Amount:            order.TotalAmount,
			ResultCode:        resultCode,
			ResultDesc:        push.ResponseDescription,
			Status:            model.MpesaStatusPending,
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return CheckoutOutput{}, err
	}

	return CheckoutOutput{
		CheckoutRequestID:   push.CheckoutRequestID,
		MerchantRequestID:   push.MerchantRequestID,
		ResponseCode:        push.ResponseCode,
		ResponseDescription: push.ResponseDescription,
		CustomerMessage:     push.CustomerMessage,
	}, nil
}

// 254始まりの12桁のみ受ける（2547XXXXXXXX）
func isValidMpesaPhone(phone string) bool {
	if len(phone) != 12 {
		return false
	}
	if phone[:3] != "254" {
		return false
	}
	for _, c := range phone {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
