package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ReviewUsecase struct {
	reviews  repo.ProductReviewRepository
	products repo.ProductRepository
}

func NewReviewUsecase(reviews repo.ProductReviewRepository, products repo.ProductRepository) *ReviewUsecase {
	return &ReviewUsecase{reviews: reviews, products: products}
}

type CreateReviewInput struct {
	Rating     int
	ReviewText string
}

// 部分更新：渡されたフィールドだけ反映する
type UpdateReviewInput struct {
	Rating     *int
	ReviewText *string
}

type ReviewOutput struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ProductID  int64     `json:"product_id"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *ReviewUsecase) Create(ctx context.Context, userID int64, productID int64, in CreateReviewInput) (ReviewOutput, error) {
	if userID <= 0 {
		return ReviewOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "invalid rating value")
	}

	_, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "product not found")
	}
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	rv := model.ProductReview{
		UserID:     userID,
		ProductID:  productID,
		Rating:     in.Rating,
		ReviewText: strings.TrimSpace(in.ReviewText),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	id, err := u.reviews.Create(ctx, rv)
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	rv.ID = id

	return toReviewOutput(rv), nil
}

func (u *ReviewUsecase) ListByProduct(ctx context.Context, productID int64) ([]ReviewOutput, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	list, err := u.reviews.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]ReviewOutput, 0, len(list))
	for _, rv := range list {
		out = append(out, toReviewOutput(rv))
	}
	return out, nil
}

func (u *ReviewUsecase) ListMine(ctx context.Context, userID int64) ([]ReviewOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	list, err := u.reviews.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]ReviewOutput, 0, len(list))
	for _, rv := range list {
		out = append(out, toReviewOutput(rv))
	}
	return out, nil
}

func (u *ReviewUsecase) Update(ctx context.Context, userID int64, reviewID int64, in UpdateReviewInput) (ReviewOutput, error) {
	if userID <= 0 {
		return ReviewOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if reviewID <= 0 {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Rating == nil && in.ReviewText == nil {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "invalid rating value")
	}

	rv, err := u.reviews.FindByID(ctx, reviewID)
	if err == repo.ErrNotFound {
		return ReviewOutput{}, NewHTTPError(http.StatusNotFound, "review not found")
	}
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if rv.UserID != userID {
		//他人のレビューは「存在しない扱い」にする
		return ReviewOutput{}, NewHTTPError(http.StatusNotFound, "review not found")
	}

	if in.Rating != nil {
		rv.Rating = *in.Rating
	}
	if in.ReviewText != nil {
		rv.ReviewText = strings.TrimSpace(*in.ReviewText)
	}

	if err := u.reviews.Update(ctx, rv); err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toReviewOutput(rv), nil
}

func (u *ReviewUsecase) Delete(ctx context.Context, userID int64, reviewID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if reviewID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	rv, err := u.reviews.FindByID(ctx, reviewID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "review not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if rv.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "review not found")
	}

	if err := u.reviews.Delete(ctx, reviewID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func toReviewOutput(rv model.ProductReview) ReviewOutput {
	return ReviewOutput{
		ID:         rv.ID,
		UserID:     rv.UserID,
		ProductID:  rv.ProductID,
		Rating:     rv.Rating,
		ReviewText: rv.ReviewText,
		CreatedAt:  rv.CreatedAt,
	}
}
