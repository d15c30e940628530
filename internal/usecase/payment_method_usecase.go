package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type PaymentMethodUsecase struct {
	methods repo.PaymentMethodRepository
}

func NewPaymentMethodUsecase(methods repo.PaymentMethodRepository) *PaymentMethodUsecase {
	return &PaymentMethodUsecase{methods: methods}
}

type CreatePaymentMethodInput struct {
	MethodType  string
	PhoneNumber string
}

type UpdatePaymentMethodInput struct {
	PhoneNumber *string
}

func (u *PaymentMethodUsecase) List(ctx context.Context, userID int64) ([]model.PaymentMethod, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	list, err := u.methods.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

func (u *PaymentMethodUsecase) Create(ctx context.Context, userID int64, in CreatePaymentMethodInput) (model.PaymentMethod, error) {
	if userID <= 0 {
		return model.PaymentMethod{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	mt := model.PaymentMethodType(strings.TrimSpace(in.MethodType))
	if mt == "" {
		mt = model.PaymentMethodMpesa
	}
	if mt != model.PaymentMethodMpesa && mt != model.PaymentMethodCard {
		return model.PaymentMethod{}, NewHTTPError(http.StatusBadRequest, "unsupported method_type")
	}
	phone := strings.TrimSpace(in.PhoneNumber)
	// mpesaは電話番号必須
	if mt == model.PaymentMethodMpesa && !isValidMpesaPhone(phone) {
		return model.PaymentMethod{}, NewHTTPError(http.StatusBadRequest, "phone number must be in the format 2547XXXXXXXX")
	}

	now := time.Now()
	m := model.PaymentMethod{
		UserID:      userID,
		MethodType:  mt,
		PhoneNumber: phone,
		IsDefault:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := u.methods.Create(ctx, m)
	if err != nil {
		return model.PaymentMethod{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	m.ID = id
	return m, nil
}

func (u *PaymentMethodUsecase) Update(ctx context.Context, userID int64, methodID int64, in UpdatePaymentMethodInput) (model.PaymentMethod, error) {
	if userID <= 0 {
		return model.PaymentMethod{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if methodID <= 0 {
		return model.PaymentMethod{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.PhoneNumber == nil {
		return model.PaymentMethod{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	m, err := u.methods.FindByID(ctx, methodID)
	if err == repo.ErrNotFound {
		return model.PaymentMethod{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.PaymentMethod{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if m.UserID != userID {
		return model.PaymentMethod{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	phone := strings.TrimSpace(*in.PhoneNumber)
	if m.MethodType == model.PaymentMethodMpesa && !isValidMpesaPhone(phone) {
		return model.PaymentMethod{}, NewHTTPError(http.StatusBadRequest, "phone number must be in the format 2547XXXXXXXX")
	}
	m.PhoneNumber = phone
	m.UpdatedAt = time.Now()

	if err := u.methods.Update(ctx, m); err != nil {
		if err == repo.ErrNotFound {
			return model.PaymentMethod{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.PaymentMethod{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return m, nil
}

func (u *PaymentMethodUsecase) Delete(ctx context.Context, userID int64, methodID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if methodID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	m, err := u.methods.FindByID(ctx, methodID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if m.UserID != userID {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if err := u.methods.Delete(ctx, methodID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *PaymentMethodUsecase) SetDefault(ctx context.Context, userID int64, methodID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if methodID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.methods.SetDefault(ctx, userID, methodID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
