package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is loaded once at startup from the environment (plus .env via
// godotenv in main). Defaults target a single shop machine with a local
// SQLite file; set DB_DRIVER=mysql and DB_DSN for a shared server.
type Config struct {
	App struct {
		Port              int    `envconfig:"PORT" default:"8080"`
		BaseURL           string `envconfig:"BASE_URL" default:"http://localhost:8080"`
		AllowRegistration bool   `envconfig:"ALLOW_REGISTRATION" default:"false"`
		UploadDir         string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	}

	DB struct {
		Driver string `envconfig:"DB_DRIVER" default:"sqlite"`
		DSN    string `envconfig:"DB_DSN" default:"./dokon.db"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	}

	Telegram struct {
		BotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `envconfig:"TELEGRAM_CHAT_ID"`
	}

	Gemini struct {
		APIKey string `envconfig:"GEMINI_API_KEY"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
