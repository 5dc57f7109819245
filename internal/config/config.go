package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	MongoURI       string
	JWTSecret      string
	JWTExpiry      string
	AllowedOrigins []string
	Email          EmailConfig
	Redis          RedisConfig
}

// EmailConfig carries the OTP mail transport settings. SMTPHost empty means
// the default Gmail relay is used.
type EmailConfig struct {
	User        string
	AppPassword string
	From        string
	SMTPHost    string
	SMTPPort    int
	SMTPSecure  bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func Load() *Config {
	// load .env variables; absence is fine in containerized deploys
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI environment variable is not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173, http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Port:           port,
		MongoURI:       mongoURI,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiry:      os.Getenv("JWT_EXPIRY"),
		AllowedOrigins: origins,
		Email:          loadEmailConfig(),
		Redis:          loadRedisConfig(),
	}
}

func loadEmailConfig() EmailConfig {
	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || smtpPort <= 0 {
		smtpPort = 587
	}

	return EmailConfig{
		User:        os.Getenv("EMAIL_USER"),
		AppPassword: os.Getenv("EMAIL_APP_PASSWORD"),
		From:        os.Getenv("EMAIL_FROM"),
		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPPort:    smtpPort,
		SMTPSecure:  os.Getenv("SMTP_SECURE") == "true",
	}
}

func loadRedisConfig() RedisConfig {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	db, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		db = 0
	}

	return RedisConfig{
		Host:         host,
		Port:         port,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
