package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort          string `env:"HTTP_PORT" envDefault:"8080"`
	SessionTTLMinutes int    `env:"SESSION_TTL_MINUTES" envDefault:"60"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	VoiceBaseURL string `env:"VOICE_BASE_URL"`
	VoiceAPIKey  string `env:"VOICE_API_KEY"`
	VoiceID      string `env:"VOICE_ID"`

	SessionRateWindowMinutes int `env:"SESSION_RATE_WINDOW_MINUTES" envDefault:"10"`
	SessionRateMax           int `env:"SESSION_RATE_MAX" envDefault:"20"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
