package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// STK push・コールバック・照会のHTTP
type CheckoutHandler struct {
	checkoutUC *usecase.CheckoutUsecase
	callbackUC *usecase.CallbackUsecase
	queryUC    *usecase.QueryUsecase
}

// DI
func NewCheckoutHandler(
	checkoutUC *usecase.CheckoutUsecase,
	callbackUC *usecase.CallbackUsecase,
	queryUC *usecase.QueryUsecase,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: checkoutUC,
		callbackUC: callbackUC,
		queryUC:    queryUC,
	}
}

type CheckoutRequest struct {
	OrderID           int64  `json:"order_id"`
	ShippingAddressID int64  `json:"shipping_address_id"`
	PaymentMethodID   int64  `json:"payment_method_id"`
	PhoneNumber       string `json:"phone_number"`
}

type QueryRequest struct {
	CheckoutRequestID string `json:"checkout_request_id"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/checkout")
	g.Use(middleware.AuthJWT(cfg))
	g.POST("/session", h.initiate)
	g.POST("/query", h.query)

	//Darajaが叩く口。認証ヘッダは付かないので公開ルート。
	e.POST("/mpesa/callback", h.callback)
}

func (h *CheckoutHandler) initiate(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.checkoutUC.InitiateCheckout(c.Request().Context(), userID, usecase.InitiateCheckoutInput{
		OrderID:           req.OrderID,
		ShippingAddressID: req.ShippingAddressID,
		PaymentMethodID:   req.PaymentMethodID,
		PhoneNumber:       req.PhoneNumber,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) callback(c echo.Context) error {
	var payload usecase.STKCallbackPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "invalid callback body"})
	}

	result := h.callbackUC.ProcessCallback(c.Request().Context(), payload)
	if result.Status == "error" {
		//ゲートウェイはbodyのdetailしか見ない
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": result.Message})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) query(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.queryUC.QueryStatus(c.Request().Context(), req.CheckoutRequestID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
