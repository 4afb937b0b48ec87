package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string   `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string   `env:"DATABASE_URL,required"`
	JWTSecret     string   `env:"JWT_SECRET"`
	TokenTTLHours int      `env:"TOKEN_TTL_HOURS" envDefault:"720"`
	CORSOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:8081,http://localhost:19006,http://127.0.0.1:3000"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
