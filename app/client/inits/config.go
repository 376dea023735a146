package inits

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"nasa-mission-control/app/client/config"
)

func Config() (*config.Config, error) {
	_ = godotenv.Load()

	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if serverEp, exist := os.LookupEnv("SERVER_ENDPOINT"); !exist {
		cfg.ServerEndpoint = "http://localhost:4000"
	} else {
		cfg.ServerEndpoint = serverEp
	}

	if tokenFile, exist := os.LookupEnv("TOKEN_FILE"); !exist {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.TokenFile = filepath.Join(home, ".mission-control", "token")
	} else {
		cfg.TokenFile = tokenFile
	}

	return &cfg, nil
}
