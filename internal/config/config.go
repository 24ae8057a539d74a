package config

import (
	"os"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Port        string
	DBURL       string
	RedisAddr   string
	KafkaBroker string
	JWTSecret   string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	MinimumForDiscount decimal.Decimal
	DiscountAmount     decimal.Decimal
}

func Load() Config {
	return Config{
		Port:        getenv("PORT", "3000"),
		DBURL:       getenv("DB_URL", "postgres://localhost:5432/shophub?sslmode=disable"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: getenv("KAFKA_BROKER", "localhost:9092"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,

		MinimumForDiscount: getenvDecimal("DISCOUNT_MINIMUM", "1000"),
		DiscountAmount:     getenvDecimal("DISCOUNT_AMOUNT", "150"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDecimal(key, fallback string) decimal.Decimal {
	raw := getenv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.RequireFromString(fallback)
	}
	return d
}
