package configs

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                   string
	MongoURI               string
	DBName                 string
	JWTSecret              string
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
	ExpiringSoonDays       int
	ExpiringWindowDays     int
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var expiringSoonDays, expiringWindowDays int

	fmt.Sscanf(os.Getenv("EXPIRING_SOON_DAYS"), "%d", &expiringSoonDays)
	fmt.Sscanf(os.Getenv("EXPIRING_WINDOW_DAYS"), "%d", &expiringWindowDays)

	if expiringSoonDays <= 0 {
		expiringSoonDays = 7
	}
	if expiringWindowDays <= 0 {
		expiringWindowDays = 30
	}

	return Config{
		Port:                   os.Getenv("PORT"),
		MongoURI:               os.Getenv("MONGO_URI"),
		DBName:                 os.Getenv("DB_NAME"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		BootstrapAdminEmail:    os.Getenv("BOOTSTRAP_ADMIN_EMAIL"),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		ExpiringSoonDays:       expiringSoonDays,
		ExpiringWindowDays:     expiringWindowDays,
	}
}
