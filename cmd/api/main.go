package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"money-mind/internal/config"
	apihttp "money-mind/internal/http"
	"money-mind/internal/service"
	"money-mind/internal/voice"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	sessionStore := service.NewMemorySessionStore(sessionTTL)

	var limiter service.SessionRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory sessions", zap.Error(err))
		} else {
			sessionStore = service.NewRedisSessionStore(redisClient, sessionTTL)
			limiter = service.NewRedisSessionRateLimiter(
				redisClient,
				time.Duration(cfg.SessionRateWindowMinutes)*time.Minute,
				cfg.SessionRateMax,
			)
		}
		cancel()
	}

	speaker := voice.NewDisabledSpeaker("voice provider not configured")
	if cfg.VoiceBaseURL != "" && cfg.VoiceAPIKey != "" {
		speaker = voice.NewHTTPSpeaker(cfg.VoiceBaseURL, cfg.VoiceAPIKey, cfg.VoiceID, logger)
	}

	sessionSvc := service.NewSessionService(sessionStore, logger)
	recommendationSvc := service.NewRecommendationService()

	sessionHandler := apihttp.NewSessionHandler(logger, sessionSvc, speaker, limiter)
	recommendationHandler := apihttp.NewRecommendationHandler(logger, sessionSvc, recommendationSvc)
	router := apihttp.NewRouter(logger, sessionHandler, recommendationHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
