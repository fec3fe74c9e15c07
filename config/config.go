package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig holds all runtime settings, sourced from the environment.
type AppConfig struct {
	Env  string
	Port string

	DatabaseURL string

	JWTSecret      string
	JWTExpiryHours int

	LogLevel string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string

	// Cron spec for the booking-confirmation job.
	ReminderCron string
}

var Cfg AppConfig

// LoadConfig reads .env (if present) and binds settings via viper.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("REMINDER_CRON", "0 * * * *")

	Cfg = AppConfig{
		Env:                  v.GetString("APP_ENV"),
		Port:                 v.GetString("PORT"),
		DatabaseURL:          v.GetString("DB_URL"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTExpiryHours:       v.GetInt("JWT_EXPIRY_HOURS"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		TwilioAccountSID:     v.GetString("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      v.GetString("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: v.GetString("TWILIO_WHATSAPP_NUMBER"),
		ReminderCron:         v.GetString("REMINDER_CRON"),
	}
}
