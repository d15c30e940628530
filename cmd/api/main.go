package main

import (
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/mpesa"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

func main() {
	//.envは任意（本番は環境変数直）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.CheckoutSession{},
		&model.MpesaTransaction{},
		&model.ShippingAddress{},
		&model.PaymentMethod{},
		&model.ProductReview{},
	); err != nil {
		log.Fatal(err)
	}

	//TransactionDateのタイムゾーン
	loc, err := time.LoadLocation(cfg.MpesaTimezone)
	if err != nil {
		log.Fatal(err)
	}

	//Darajaクライアント
	gateway := mpesa.NewClient(mpesa.Config{
		ConsumerKey:    cfg.MpesaConsumerKey,
		ConsumerSecret: cfg.MpesaConsumerSecret,
		ShortCode:      cfg.MpesaShortCode,
		Passkey:        cfg.MpesaPasskey,
		BaseURL:        cfg.MpesaBaseURL,
		CallbackURL:    cfg.MpesaCallbackURL,
	})

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	addressRepo := infraRepo.NewShippingAddressGormRepository(gormDB)
	methodRepo := infraRepo.NewPaymentMethodGormRepository(gormDB)
	reviewRepo := infraRepo.NewProductReviewGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(txManager)
	cartUC := usecase.NewCartUsecase(txManager)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, userRepo, orderRepo, addressRepo, methodRepo, gateway, idGen)
	callbackUC := usecase.NewCallbackUsecase(txManager, loc)
	queryUC := usecase.NewQueryUsecase(gateway)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	methodUC := usecase.NewPaymentMethodUsecase(methodRepo)

	//Handler生成
	handlers := server.Handlers{
		Order:         handler.NewOrderHandler(orderUC),
		Cart:          handler.NewCartHandler(cartUC),
		Checkout:      handler.NewCheckoutHandler(checkoutUC, callbackUC, queryUC),
		Review:        handler.NewReviewHandler(reviewUC),
		Address:       handler.NewAddressHandler(addressUC),
		PaymentMethod: handler.NewPaymentMethodHandler(methodUC),
	}

	//Server起動
	e := server.New(cfg, handlers)
	if err := server.Start(e, cfg); err != nil {
		log.Fatal(err)
	}
}
