package main

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"nasa-mission-control/app/server/apidocs"
	"nasa-mission-control/app/server/handlers"
	"nasa-mission-control/app/server/inits"
	"nasa-mission-control/app/server/jwt"
	"nasa-mission-control/app/server/routes"
)

func main() {
	// Load config
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// Set up logging
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	l.Debug("logger initialized")

	// Database connection, migration and seed data
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// Redis connection
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// Handler app
	handlerApp := handlers.NewApp(l, db, rdb, j, cfg.Upstream.NasaAPIKey, cfg.Upstream.NasaEndpoint)

	// Echo service
	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	routes.Register(e, handlerApp, j)

	// API docs, kept out of production
	if !cfg.System.IsProd {
		e.Pre(apidocs.Doc("/api"))
	}

	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
