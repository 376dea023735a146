package handlers

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nasa-mission-control/app/server/jwt"
)

type App struct {
	l   *zap.Logger   // logging
	db  *gorm.DB      // database
	rdb *redis.Client // redis, caches upstream NASA responses
	jwt *jwt.JWT      // JWT, for stateless auth

	nasaKey      string       // upstream API key
	nasaEndpoint string       // upstream base URL
	hc           *http.Client // upstream HTTP client
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, j *jwt.JWT, nasaKey string, nasaEndpoint string) *App {
	return &App{
		l:   l,
		db:  db,
		rdb: rdb,
		jwt: j,

		nasaKey:      nasaKey,
		nasaEndpoint: nasaEndpoint,
		hc:           http.DefaultClient,
	}
}
