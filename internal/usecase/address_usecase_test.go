package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddressUsecase_Create_RequiredFields(t *testing.T) {
	addrs := new(AddressRepoMock)
	uc := usecase.NewAddressUsecase(addrs)

	_, err := uc.Create(context.Background(), 1, usecase.CreateAddressInput{
		FullName: "Jane Doe",
		City:     "Nairobi",
		// AddressLineなし
	})
	assertErrContains(t, err, "required")

	addrs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 部分更新：渡したフィールドだけ変わる
func TestAddressUsecase_Update_PatchAppliesOnlyProvidedFields(t *testing.T) {
	addrs := new(AddressRepoMock)

	addrs.On("FindByID", mock.Anything, int64(5)).Return(model.ShippingAddress{
		ID:          5,
		UserID:      1,
		FullName:    "Jane Doe",
		PhoneNumber: "254712345678",
		AddressLine: "Moi Avenue 12",
		City:        "Nairobi",
		PostalCode:  "00100",
	}, nil)

	addrs.On("Update", mock.Anything, mock.MatchedBy(func(a model.ShippingAddress) bool {
		return a.ID == 5 &&
			a.City == "Mombasa" &&
			// 触っていないフィールドは据え置き
			a.FullName == "Jane Doe" &&
			a.AddressLine == "Moi Avenue 12" &&
			a.PostalCode == "00100"
	})).Return(nil)

	city := "Mombasa"

	uc := usecase.NewAddressUsecase(addrs)

	out, err := uc.Update(context.Background(), 1, 5, usecase.UpdateAddressInput{City: &city})
	assert.NoError(t, err)
	assert.Equal(t, "Mombasa", out.City)
	assert.Equal(t, "Jane Doe", out.FullName)

	addrs.AssertExpectations(t)
}

func TestAddressUsecase_Update_EmptyPatch(t *testing.T) {
	addrs := new(AddressRepoMock)
	uc := usecase.NewAddressUsecase(addrs)

	_, err := uc.Update(context.Background(), 1, 5, usecase.UpdateAddressInput{})
	assertErrContains(t, err, "nothing to update")
}

func TestAddressUsecase_Update_OtherUsersAddress_Forbidden(t *testing.T) {
	addrs := new(AddressRepoMock)

	addrs.On("FindByID", mock.Anything, int64(5)).Return(model.ShippingAddress{
		ID: 5, UserID: 99,
	}, nil)

	city := "Mombasa"

	uc := usecase.NewAddressUsecase(addrs)

	_, err := uc.Update(context.Background(), 1, 5, usecase.UpdateAddressInput{City: &city})
	assertErrContains(t, err, "forbidden")

	addrs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddressUsecase_Delete_NotFound(t *testing.T) {
	addrs := new(AddressRepoMock)

	addrs.On("FindByID", mock.Anything, int64(5)).Return(model.ShippingAddress{}, repo.ErrNotFound)

	uc := usecase.NewAddressUsecase(addrs)

	err := uc.Delete(context.Background(), 1, 5)
	assertErrContains(t, err, "not found")
}

func TestPaymentMethodUsecase_Create_MpesaRequiresValidPhone(t *testing.T) {
	methods := new(PaymentMethodRepoMock)
	uc := usecase.NewPaymentMethodUsecase(methods)

	_, err := uc.Create(context.Background(), 1, usecase.CreatePaymentMethodInput{
		MethodType:  "mpesa",
		PhoneNumber: "0712345678",
	})
	assertErrContains(t, err, "2547XXXXXXXX")

	methods.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentMethodUsecase_Update_PatchPhoneOnly(t *testing.T) {
	methods := new(PaymentMethodRepoMock)

	methods.On("FindByID", mock.Anything, int64(4)).Return(model.PaymentMethod{
		ID:          4,
		UserID:      1,
		MethodType:  model.PaymentMethodMpesa,
		PhoneNumber: "254712345678",
	}, nil)
	methods.On("Update", mock.Anything, mock.MatchedBy(func(pm model.PaymentMethod) bool {
		return pm.ID == 4 && pm.PhoneNumber == "254798765432" && pm.MethodType == model.PaymentMethodMpesa
	})).Return(nil)

	phone := "254798765432"

	uc := usecase.NewPaymentMethodUsecase(methods)

	out, err := uc.Update(context.Background(), 1, 4, usecase.UpdatePaymentMethodInput{PhoneNumber: &phone})
	assert.NoError(t, err)
	assert.Equal(t, "254798765432", out.PhoneNumber)

	methods.AssertExpectations(t)
}
