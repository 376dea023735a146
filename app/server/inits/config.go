package inits

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"nasa-mission-control/app/server/config"
)

func Config() (*config.Config, error) {
	// .env is optional, system environment always wins
	_ = godotenv.Load()

	cfg := &config.Config{}

	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":4000" // default listen address
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	if apiKey, exist := os.LookupEnv("NASA_API_KEY"); !exist {
		cfg.Upstream.NasaAPIKey = "DEMO_KEY" // heavily rate limited, fine for development
	} else {
		cfg.Upstream.NasaAPIKey = apiKey
	}

	if endpoint, exist := os.LookupEnv("NASA_ENDPOINT"); !exist {
		cfg.Upstream.NasaEndpoint = "https://api.nasa.gov"
	} else {
		cfg.Upstream.NasaEndpoint = endpoint
	}

	return cfg, nil
}
