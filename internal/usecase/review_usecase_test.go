package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReviewUsecase_Create_InvalidRating(t *testing.T) {
	reviews := new(ReviewRepoMock)
	products := new(ProductRepoMock)
	uc := usecase.NewReviewUsecase(reviews, products)

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.Create(context.Background(), 1, 10, usecase.CreateReviewInput{Rating: rating})
		assertErrContains(t, err, "invalid rating value")
	}

	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewUsecase_Create_Success(t *testing.T) {
	reviews := new(ReviewRepoMock)
	products := new(ProductRepoMock)

	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, InStock: true}, nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv model.ProductReview) bool {
		return rv.UserID == 1 && rv.ProductID == 10 && rv.Rating == 4 && rv.ReviewText == "good fit"
	})).Return(int64(33), nil)

	uc := usecase.NewReviewUsecase(reviews, products)

	out, err := uc.Create(context.Background(), 1, 10, usecase.CreateReviewInput{
		Rating:     4,
		ReviewText: "  good fit  ",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(33), out.ID)
	assert.Equal(t, "good fit", out.ReviewText)

	reviews.AssertExpectations(t)
}

// 他人のレビューは404扱い（存在を教えない）
func TestReviewUsecase_Update_OtherUsersReview_NotFound(t *testing.T) {
	reviews := new(ReviewRepoMock)
	products := new(ProductRepoMock)

	reviews.On("FindByID", mock.Anything, int64(33)).Return(model.ProductReview{
		ID: 33, UserID: 99, ProductID: 10, Rating: 4,
	}, nil)

	rating := 5

	uc := usecase.NewReviewUsecase(reviews, products)

	_, err := uc.Update(context.Background(), 1, 33, usecase.UpdateReviewInput{Rating: &rating})
	assertErrContains(t, err, "review not found")

	reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// 部分更新：ReviewTextだけ渡すとRatingは据え置き
func TestReviewUsecase_Update_PatchTextOnly(t *testing.T) {
	reviews := new(ReviewRepoMock)
	products := new(ProductRepoMock)

	reviews.On("FindByID", mock.Anything, int64(33)).Return(model.ProductReview{
		ID: 33, UserID: 1, ProductID: 10, Rating: 4, ReviewText: "good",
	}, nil)
	reviews.On("Update", mock.Anything, mock.MatchedBy(func(rv model.ProductReview) bool {
		return rv.ID == 33 && rv.Rating == 4 && rv.ReviewText == "runs small"
	})).Return(nil)

	text := "runs small"

	uc := usecase.NewReviewUsecase(reviews, products)

	out, err := uc.Update(context.Background(), 1, 33, usecase.UpdateReviewInput{ReviewText: &text})
	assert.NoError(t, err)
	assert.Equal(t, 4, out.Rating)
	assert.Equal(t, "runs small", out.ReviewText)

	reviews.AssertExpectations(t)
}
