package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/sirawitp/siamshop-backend/api/routes"
	addresssvc "github.com/sirawitp/siamshop-backend/internal/address"
	authsvc "github.com/sirawitp/siamshop-backend/internal/auth"
	cartsvc "github.com/sirawitp/siamshop-backend/internal/cart"
	checkoutsvc "github.com/sirawitp/siamshop-backend/internal/checkout"
	ordersvc "github.com/sirawitp/siamshop-backend/internal/orders"
	productsvc "github.com/sirawitp/siamshop-backend/internal/products"
	reportsvc "github.com/sirawitp/siamshop-backend/internal/reports"
	usersvc "github.com/sirawitp/siamshop-backend/internal/users"
	"github.com/sirawitp/siamshop-backend/pkg/auth/session"
	"github.com/sirawitp/siamshop-backend/pkg/config"
	"github.com/sirawitp/siamshop-backend/pkg/db"
	"github.com/sirawitp/siamshop-backend/pkg/geodata"
	"github.com/sirawitp/siamshop-backend/pkg/logger"
	"github.com/sirawitp/siamshop-backend/pkg/migrate"
	"github.com/sirawitp/siamshop-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := usersvc.NewRepository(dbClient.DB())
	productsRepo := productsvc.NewRepository(dbClient.DB())
	ordersRepo := ordersvc.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		Limiter:        redisClient,
		JWTConfig:      cfg.JWT,
		AuthConfig:     cfg.Auth,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	userService, err := usersvc.NewService(usersRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewStore(redisClient, redisClient, cfg.Checkout.CartTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartStore, productsRepo, cfg.Checkout.ShippingFee)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	eventPublisher, err := ordersvc.NewRedisPublisher(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create order event publisher", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(ordersRepo, eventPublisher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartStore, productsRepo, ordersRepo, dbClient, eventPublisher, logg, cfg.Checkout.ShippingFee)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	reportService, err := reportsvc.NewService(reportsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	geoClient, err := geodata.NewClient(cfg.Address.ProvinceURL, cfg.Address.DistrictURL, geodata.WithTimeout(cfg.Address.FetchTimeout))
	if err != nil {
		logg.Error(context.Background(), "failed to create geodata client", err)
		os.Exit(1)
	}

	addressService, err := addresssvc.NewService(geoClient, redisClient, redisClient, cfg.Address.CacheTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create address service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Sessions: sessionManager,
			Events:   redisClient,

			Auth:     authService,
			Products: productService,
			Cart:     cartService,
			Checkout: checkoutService,
			Orders:   orderService,
			Users:    userService,
			Reports:  reportService,
			Address:  addressService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
