package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/agriconnect/marketplace/internal/auth"
	"github.com/agriconnect/marketplace/internal/config"
	"github.com/agriconnect/marketplace/internal/db"
	"github.com/agriconnect/marketplace/internal/httpserver"
	"github.com/agriconnect/marketplace/internal/logging"
	"github.com/agriconnect/marketplace/internal/mykafka"
	"github.com/agriconnect/marketplace/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	ctx := context.Background()
	gormDB, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer(cfg.KAFKA_ADDRESS)
		defer producer.Close()
	}

	secret := []byte(cfg.JWT_SECRET)

	deps := &httpserver.Deps{
		Logger:        logger,
		Auth:          auth.NewMiddleware(secret),
		AuthHandler:   &httpserver.AuthHTTP{Svc: &service.AuthService{DB: gormDB, JWTSecret: secret, Producer: producer}},
		ProductHTTP:   &httpserver.ProductHTTP{Svc: &service.ProductService{DB: gormDB, Producer: producer}},
		OrderHTTP:     &httpserver.OrderHTTP{Svc: &service.OrderService{DB: gormDB, Producer: producer}},
		EventHTTP:     &httpserver.EventHTTP{Svc: &service.EventService{DB: gormDB, Producer: producer}},
		RequestHTTP:   &httpserver.RequestHTTP{Svc: &service.RequestService{DB: gormDB}},
		DashboardHTTP: &httpserver.DashboardHTTP{Svc: &service.DashboardService{DB: gormDB}},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	httpserver.Register(e, deps)

	logger.Info("server_starting", "port", cfg.HTTP_PORT)
	e.Logger.Fatal(e.Start(":" + cfg.HTTP_PORT))
}
