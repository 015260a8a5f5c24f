package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"os"
	"strconv"
)

func New() (Config, error) {
	privateKey, err := requireEnvAsRSAPrivateKey("PRIVATE_KEY")
	if err != nil {
		return Config{}, err
	}

	return Config{
		Environment: requireEnv("ENVIRONMENT"),
		Hostname:    requireEnv("HOSTNAME"),
		Port:        requireEnvAsInt("PORT"),
		UIURL:       requireEnv("UI_URL"),
		Postgresql: Postgresql{
			Host:         requireEnv("DATABASE_HOST"),
			Port:         requireEnvAsInt("DATABASE_PORT"),
			Username:     requireEnv("DATABASE_USERNAME"),
			Password:     requireEnv("DATABASE_PASSWORD"),
			DatabaseName: requireEnv("DATABASE_NAME"),
		},
		Redis: Redis{
			Host: requireEnv("REDIS_HOST"),
			Port: requireEnvAsInt("REDIS_PORT"),
		},
		SMTP: SMTP{
			Host:     requireEnv("SMTP_HOST"),
			Port:     requireEnvAsInt("SMTP_PORT"),
			Username: requireEnv("SMTP_USERNAME"),
			Password: requireEnv("SMTP_PASSWORD"),
		},
		Authentication: Authentication{
			PrivateKey:                    privateKey,
			RefreshTokenSecretKey:         requireEnv("REFRESH_TOKEN_SECRET_KEY"),
			AccessTokenExpirationSeconds:  requireEnvAsInt("ACCESS_TOKEN_EXPIRATION_IN_SECONDS"),
			RefreshTokenExpirationSeconds: requireEnvAsInt("REFRESH_TOKEN_EXPIRATION_IN_SECONDS"),
			PasswordTokenTTLSeconds:       requireEnvAsInt("PASSWORD_TOKEN_TTL_IN_SECONDS"),
		},
		Google: Google{
			ClientID:     requireEnv("GOOGLE_CLIENT_ID"),
			ClientSecret: requireEnv("GOOGLE_CLIENT_SECRET"),
			CallbackURL:  requireEnv("GOOGLE_CALLBACK_URL"),
		},
		AdminUser: AdminUser{
			Email:    requireEnv("ADMIN_USER_EMAIL"),
			Password: requireEnv("ADMIN_USER_PASSWORD"),
		},
	}, nil
}

type Config struct {
	Environment    string
	Hostname       string
	Port           int
	UIURL          string
	Postgresql     Postgresql
	Redis          Redis
	SMTP           SMTP
	Authentication Authentication
	Google         Google
	AdminUser      AdminUser
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

type Redis struct {
	Host string
	Port int
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
}

type Authentication struct {
	PrivateKey                    *rsa.PrivateKey
	RefreshTokenSecretKey         string
	AccessTokenExpirationSeconds  int
	RefreshTokenExpirationSeconds int
	PasswordTokenTTLSeconds       int
}

type Google struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

type AdminUser struct {
	Email    string
	Password string
}

func requireEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("Can't find environment variable: %s\n", key)
	}
	return value
}

func requireEnvAsInt(key string) int {
	valueStr := requireEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value as integer: %s", err.Error())
	}
	return value
}

func requireEnvAsRSAPrivateKey(key string) (*rsa.PrivateKey, error) {
	value := requireEnv(key)

	block, _ := pem.Decode([]byte(value))
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block in %s", key)
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA private key in %s: %v", key, err)
	}

	return privateKey, nil
}
