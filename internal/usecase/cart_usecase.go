package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

var validSizes = map[string]bool{
	"XS": true, "S": true, "M": true, "L": true, "XL": true,
}

type CartUsecase struct {
	tx repo.TransactionManager
}

func NewCartUsecase(tx repo.TransactionManager) *CartUsecase {
	return &CartUsecase{tx: tx}
}

type CartItemOutput struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Size      string          `json:"size"`
}

type CartOutput struct {
	ID       int64            `json:"id"`
	UserID   int64            `json:"user_id"`
	IsActive bool             `json:"is_active"`
	Items    []CartItemOutput `json:"items"`
	Total    decimal.Decimal  `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
	Size      string
}

// 部分更新は「渡されたフィールドだけ」を明示のポインタで受ける
type UpdateCartItemInput struct {
	Quantity *int64
	Size     *string
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := getOrCreateActiveCart(ctx, r, userID)
		if err != nil {
			return err
		}
		return buildCartOutput(ctx, r, cart, &out)
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be greater than 0")
	}
	size := in.Size
	if size == "" {
		size = "M"
	}
	if !validSizes[size] {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid size")
	}

	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := getOrCreateActiveCart(ctx, r, userID)
		if err != nil {
			return err
		}

		p, err := r.Products().FindByID(ctx, in.ProductID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.InStock {
			return NewHTTPError(http.StatusBadRequest, "product out of stock")
		}

		//同一商品・同一サイズは数量を足す
		existing, found, err := r.CartItems().FindByCartProductSize(ctx, cart.ID, in.ProductID, size)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			existing.Quantity += in.Quantity
			if err := r.CartItems().Update(ctx, existing); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else {
			now := time.Now()
			_, err := r.CartItems().Create(ctx, model.CartItem{
				CartID:    cart.ID,
				ProductID: in.ProductID,
				Quantity:  in.Quantity,
				Size:      size,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		return buildCartOutput(ctx, r, cart, &out)
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, itemID int64, in UpdateCartItemInput) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity == nil && in.Size == nil {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be greater than 0")
	}
	if in.Size != nil && !validSizes[*in.Size] {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid size")
	}

	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindActiveByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		item, err := r.CartItems().FindByID(ctx, itemID)
		if err == repo.ErrNotFound || (err == nil && item.CartID != cart.ID) {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if in.Quantity != nil {
			item.Quantity = *in.Quantity
		}
		if in.Size != nil {
			item.Size = *in.Size
		}

		if err := r.CartItems().Update(ctx, item); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return buildCartOutput(ctx, r, cart, &out)
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

func (u *CartUsecase) RemoveCartItem(ctx context.Context, userID int64, itemID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindActiveByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		item, err := r.CartItems().FindByID(ctx, itemID)
		if err == repo.ErrNotFound || (err == nil && item.CartID != cart.ID) {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.CartItems().Delete(ctx, item.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func getOrCreateActiveCart(ctx context.Context, r repo.TxRepos, userID int64) (model.Cart, error) {
	cart, err := r.Carts().FindActiveByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if err != repo.ErrNotFound {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	cart = model.Cart{
		UserID:    userID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	cartID, err := r.Carts().Create(ctx, cart)
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	cart.ID = cartID
	return cart, nil
}

func buildCartOutput(ctx context.Context, r repo.TxRepos, cart model.Cart, out *CartOutput) error {
	items, err := r.CartItems().ListByCartID(ctx, cart.ID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outItems := make([]CartItemOutput, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		p, err := r.Products().FindByID(ctx, it.ProductID)
		if err == repo.ErrNotFound {
			continue
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outItems = append(outItems, CartItemOutput{
			ID:        it.ID,
			ProductID: it.ProductID,
			Title:     p.Title,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
			Size:      it.Size,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}

	*out = CartOutput{
		ID:       cart.ID,
		UserID:   cart.UserID,
		IsActive: cart.IsActive,
		Items:    outItems,
		Total:    total,
	}
	return nil
}
