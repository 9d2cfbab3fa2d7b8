package config

import (
	"fmt"
	"os"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

// HOLD_TTL is how long an unpaid reservation hold blocks a car before the
// expiry worker (or the store's own eviction) releases it.
const HOLD_TTL = 6 * time.Minute

// POINT_UNIT is the amount of currency that earns one base loyalty point.
const POINT_UNIT int64 = 10_000

const DEFAULT_CURRENCY = "vnd"

// EXPIRY_WORKER_COUNT bounds how many expiry jobs run concurrently.
const EXPIRY_WORKER_COUNT = 5

var API_ENV = os.Getenv("API_ENV")
