package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config gathers every environment-sourced setting the process needs. It is
// built once in main and handed to the constructors that need pieces of it;
// nothing reads the environment after startup.
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string

	PinningEndpoint string
	PinningJWT      string
	PinningGateway  string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "3001"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getEnv("MONGO_DATABASE", "vroomify"),
		JWTSecret:     os.Getenv("SECRET_KEY"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		FromEmail:    os.Getenv("FROM_EMAIL"),

		PinningEndpoint: getEnv("PINATA_ENDPOINT", "https://api.pinata.cloud/pinning/pinFileToIPFS"),
		PinningJWT:      os.Getenv("PINATA_JWT"),
		PinningGateway:  getEnv("PINATA_GATEWAY", "gateway.pinata.cloud"),
	}

	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, errors.New("SMTP_PORT must be a number")
	}
	cfg.SMTPPort = port

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI environment variable is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("SECRET_KEY environment variable is not set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
