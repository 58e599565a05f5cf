package config

import (
	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/wrap"
)

type Config struct {
	IsProduction bool `env:"PRODUCTION"`
	API          API
}

type API struct {
	Port string `env:"API_PORT"`
	// Uploads larger than this are rejected before parsing.
	MaxUploadSizeMB int64 `env:"UPLOAD_MAX_SIZE_MB" envDefault:"64"`
}

func ReadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	parseOptions := env.Options{RequiredIfNoDef: true}

	var config Config
	if err := env.ParseWithOptions(&config, parseOptions); err != nil {
		return Config{}, err
	}

	return config, nil
}
