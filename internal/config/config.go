package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Server configures the matching service behind /search and /rate.
type Server struct {
	Port           string
	StoreDriver    string
	RecipesFile    string
	SQLitePath     string
	DictionaryURL  string
	MatchThreshold int
	MaxResults     int
	LogLevel       string
}

// Finder configures the terminal client.
type Finder struct {
	FinderURL   string
	HTTPTimeout time.Duration
	LogLevel    string
	LogFile     string
}

// LoadEnv loads variables from path, or from ./.env when path is empty. A
// missing default .env is not an error; variables already set win.
func LoadEnv(path string) error {
	if path == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env from %s: %w", path, err)
	}
	return nil
}

func LoadServer() (*Server, error) {
	threshold, err := getenvInt("MATCH_THRESHOLD", 80)
	if err != nil {
		return nil, err
	}
	maxResults, err := getenvInt("MAX_RESULTS", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Server{
		Port:           getenv("PORT", "8080"),
		StoreDriver:    getenv("STORE_DRIVER", DriverFile),
		RecipesFile:    getenv("RECIPES_FILE", "recipes_data.json"),
		SQLitePath:     getenv("SQLITE_PATH", "data/recipes.db"),
		DictionaryURL:  getenv("DICTIONARY_URL", ""),
		MatchThreshold: threshold,
		MaxResults:     maxResults,
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}
	if cfg.StoreDriver != DriverFile && cfg.StoreDriver != DriverSQLite {
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverFile, DriverSQLite, cfg.StoreDriver)
	}
	return cfg, nil
}

func LoadFinder() (*Finder, error) {
	timeout, err := getenvDuration("HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	return &Finder{
		FinderURL:   getenv("FINDER_URL", "http://localhost:8080"),
		HTTPTimeout: timeout,
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFile:     getenv("LOG_FILE", ".finder/finder.log"),
	}, nil
}

func getenv(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getenvInt(key string, defaultValue int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, val)
	}
	return n, nil
}

func getenvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, val)
	}
	return d, nil
}
