package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	// sqlite database path
	DatabasePath string

	// environment name (development, production, test)
	AppEnv string

	// enables SQL query logging
	Debug bool

	// HTTP listen port
	Port string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBoolOrDefault(envVar string, defaultVal bool) bool {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s'. Using default %t. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	cfg := Config{
		DatabasePath: getEnvOrDefault("DATABASE_PATH", "ym_library.db"),
		AppEnv:       getEnvOrDefault("APP_ENV", "development"),
		Debug:        getEnvBoolOrDefault("DEBUG", true),
		Port:         getEnvOrDefault("PORT", "8000"),
	}

	log.Printf("Loaded configuration (env: %s, debug: %t)", cfg.AppEnv, cfg.Debug)
	return cfg, nil
}
