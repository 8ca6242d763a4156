package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	SMTP         SMTPConfig
	Notification NotificationConfig
	Admin        AdminConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  int // in minutes
	SessionExpiry int // in days
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NotificationConfig holds the recipient list for each form submission
// type. These were hard-coded addresses in an earlier incarnation of
// the site and must now come from the environment.
type NotificationConfig struct {
	QuoteRecipients        []string
	SupportRecipients      []string
	InquiryRecipients      []string
	RegistrationRecipients []string
}

// AdminConfig holds the bootstrap credentials for the default admin
// account created on first startup.
type AdminConfig struct {
	Username string
	Password string
	Email    string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"https://techbucket.com.np", "https://www.techbucket.com.np"})
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_ACCESS_EXPIRY", 60)
	viper.SetDefault("JWT_SESSION_EXPIRY", 7)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("NOTIFY_QUOTE", []string{"sales@techbucket.com.np"})
	viper.SetDefault("NOTIFY_SUPPORT", []string{"support@techbucket.com.np"})
	viper.SetDefault("NOTIFY_INQUIRY", []string{"sales@techbucket.com.np", "info@techbucket.com.np"})
	viper.SetDefault("NOTIFY_REGISTRATION", []string{"info@techbucket.com.np"})
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_EMAIL", "admin@techbucket.com.np")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  viper.GetInt("JWT_ACCESS_EXPIRY"),
			SessionExpiry: viper.GetInt("JWT_SESSION_EXPIRY"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
		},
		Notification: NotificationConfig{
			QuoteRecipients:        viper.GetStringSlice("NOTIFY_QUOTE"),
			SupportRecipients:      viper.GetStringSlice("NOTIFY_SUPPORT"),
			InquiryRecipients:      viper.GetStringSlice("NOTIFY_INQUIRY"),
			RegistrationRecipients: viper.GetStringSlice("NOTIFY_REGISTRATION"),
		},
		Admin: AdminConfig{
			Username: viper.GetString("ADMIN_USERNAME"),
			Password: viper.GetString("ADMIN_PASSWORD"),
			Email:    viper.GetString("ADMIN_EMAIL"),
		},
	}
}
