package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	TicketShop TicketShopConfig
	CORS       CORSConfig
	Log        LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type TicketShopConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
}

type CORSConfig struct {
	AllowOrigins string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env file is fine, environment variables still apply
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		TicketShop: TicketShopConfig{
			BaseURL:        viper.GetString("TICKETSHOP_BASE_URL"),
			UserAgent:      viper.GetString("TICKETSHOP_USER_AGENT"),
			RequestTimeout: time.Duration(viper.GetInt("TICKETSHOP_REQUEST_TIMEOUT")) * time.Second,
		},
		CORS: CORSConfig{
			AllowOrigins: viper.GetString("CORS_ALLOW_ORIGINS"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.TicketShop.BaseURL == "" {
		cfg.TicketShop.BaseURL = "https://tickets.oebb.at/api"
	}
	if cfg.TicketShop.UserAgent == "" {
		cfg.TicketShop.UserAgent = "journey-service"
	}
	if cfg.TicketShop.RequestTimeout == 0 {
		cfg.TicketShop.RequestTimeout = 30 * time.Second
	}
	if cfg.CORS.AllowOrigins == "" {
		cfg.CORS.AllowOrigins = "http://localhost:3000,http://localhost:5173"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
