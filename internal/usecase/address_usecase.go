package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AddressUsecase struct {
	addresses repo.ShippingAddressRepository
}

func NewAddressUsecase(addresses repo.ShippingAddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

type CreateAddressInput struct {
	FullName    string
	PhoneNumber string
	AddressLine string
	City        string
	PostalCode  string
}

// 部分更新：渡されたフィールドだけ反映する（リフレクションで全部上書きはしない）
type UpdateAddressInput struct {
	FullName    *string
	PhoneNumber *string
	AddressLine *string
	City        *string
	PostalCode  *string
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]model.ShippingAddress, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, in CreateAddressInput) (model.ShippingAddress, error) {
	if userID <= 0 {
		return model.ShippingAddress{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//入力チェック
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.AddressLine) == "" || strings.TrimSpace(in.City) == "" {
		return model.ShippingAddress{}, NewHTTPError(http.StatusBadRequest, "full_name, address_line and city are required")
	}

	now := time.Now()
	a := model.ShippingAddress{
		UserID:      userID,
		FullName:    strings.TrimSpace(in.FullName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		AddressLine: strings.TrimSpace(in.AddressLine),
		City:        strings.TrimSpace(in.City),
		PostalCode:  strings.TrimSpace(in.PostalCode),
		IsDefault:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := u.addresses.Create(ctx, a)
	if err != nil {
		return model.ShippingAddress{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	a.ID = id
	return a, nil
}

func (u *AddressUsecase) Update(ctx context.Context, userID int64, addressID int64, in UpdateAddressInput) (model.ShippingAddress, error) {
	if userID <= 0 {
		return model.ShippingAddress{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return model.ShippingAddress{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.FullName == nil && in.PhoneNumber == nil && in.AddressLine == nil && in.City == nil && in.PostalCode == nil {
		return model.ShippingAddress{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	a, err := u.addresses.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return model.ShippingAddress{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.ShippingAddress{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if a.UserID != userID {
		return model.ShippingAddress{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if in.FullName != nil {
		if strings.TrimSpace(*in.FullName) == "" {
			return model.ShippingAddress{}, NewHTTPError(http.StatusBadRequest, "full_name must not be empty")
		}
		a.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.PhoneNumber != nil {
		a.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.AddressLine != nil {
		if strings.TrimSpace(*in.AddressLine) == "" {
			return model.ShippingAddress{}, NewHTTPError(http.StatusBadRequest, "address_line must not be empty")
		}
		a.AddressLine = strings.TrimSpace(*in.AddressLine)
	}
	if in.City != nil {
		if strings.TrimSpace(*in.City) == "" {
			return model.ShippingAddress{}, NewHTTPError(http.StatusBadRequest, "city must not be empty")
		}
		a.City = strings.TrimSpace(*in.City)
	}
	if in.PostalCode != nil {
		a.PostalCode = strings.TrimSpace(*in.PostalCode)
	}
	a.UpdatedAt = time.Now()

	if err := u.addresses.Update(ctx, a); err != nil {
		if err == repo.ErrNotFound {
			return model.ShippingAddress{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.ShippingAddress{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return a, nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	a, err := u.addresses.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if a.UserID != userID {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if err := u.addresses.Delete(ctx, addressID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AddressUsecase) SetDefault(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	//user内でdefaultは1つ
	if err := u.addresses.SetDefault(ctx, userID, addressID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
