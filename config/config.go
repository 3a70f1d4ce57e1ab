package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds the settings shared by every command
type Config struct {
	// Artifacts
	PagesDir       string
	ImageMaxDim    int
	OptimizeImages bool

	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Google Drive
	CredentialsPath string
	CredentialsJSON string

	// Preview
	ChromePath string
	BaseURL    string
	Port       string

	// Catalog
	PricebookPath      string
	DefaultGarmentType string
}

// Load reads the configuration from the environment
func Load() *Config {
	imageMaxDim := getEnvInt("IMAGE_MAX_DIM", 800)
	port := strings.TrimPrefix(getEnv("PORT", "8080"), ":")

	return &Config{
		PagesDir:       getEnv("PAGES_DIR", "pages"),
		ImageMaxDim:    imageMaxDim,
		OptimizeImages: getEnv("OPTIMIZE_IMAGES", "false") == "true",

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		CredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		CredentialsJSON: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"),

		ChromePath: os.Getenv("CHROME_PATH"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:"+port),
		Port:       port,

		PricebookPath:      getEnv("PRICEBOOK_PATH", "config/pricebook.json"),
		DefaultGarmentType: getEnv("DEFAULT_GARMENT_TYPE", "adult-tshirt"),
	}
}

// DatabaseConnString returns DATABASE_URL or a DSN built from the DB_* variables
func (c *Config) DatabaseConnString() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		log.Printf("⚠️  Invalid %s %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
