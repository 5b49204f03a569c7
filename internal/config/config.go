// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kinjal-s-patel/visitor-management-system/internal/db"
)

// Config holds server configuration.
type Config struct {
	Addr        string // listen address, e.g. :8080
	DBPath      string
	BaseURL     string // public origin, e.g. http://localhost:8080
	DevMode     bool
	UserHeader  string // request header carrying the current user's display name
	DefaultUser string // display name when the header is absent
	Location    *time.Location
}

// Load reads envFile (if it exists) into the process environment and
// returns the configuration. Variables already set take precedence over
// the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv creates a Config from environment variables.
func FromEnv() (Config, error) {
	dbPath := os.Getenv("VMS_DB_PATH")
	if dbPath == "" {
		p, err := db.DefaultPath()
		if err != nil {
			return Config{}, err
		}
		dbPath = p
	}

	loc := time.Local
	if tz := os.Getenv("VMS_TIMEZONE"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("VMS_TIMEZONE: %w", err)
		}
		loc = l
	}

	return Config{
		Addr:        envOrDefault("VMS_ADDR", ":8080"),
		DBPath:      dbPath,
		BaseURL:     strings.TrimRight(envOrDefault("VMS_BASE_URL", "http://localhost:8080"), "/"),
		DevMode:     os.Getenv("VMS_DEV_MODE") == "true",
		UserHeader:  envOrDefault("VMS_USER_HEADER", "X-User-Display-Name"),
		DefaultUser: envOrDefault("VMS_DEFAULT_USER", "Guest"),
		Location:    loc,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
