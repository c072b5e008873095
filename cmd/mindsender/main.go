package main

import (
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/mindsender/mindsender/db"
	"github.com/mindsender/mindsender/internal/ai"
	"github.com/mindsender/mindsender/internal/assistant"
	"github.com/mindsender/mindsender/internal/auth"
	"github.com/mindsender/mindsender/internal/config"
	"github.com/mindsender/mindsender/internal/handlers"
	"github.com/mindsender/mindsender/internal/quota"
	"github.com/mindsender/mindsender/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using process environment")
	}

	cfg, err := config.LoadServer()

	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if err := auth.Init(cfg.JWTSecret); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth")
	}

	handlers.CookieDomain = cfg.CookieDomain

	if err := db.ConnectDatabase(cfg.DatabaseDSN); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})

	var senderAI *assistant.Assistant

	if cfg.LLM.APIKey != "" {
		llm, err := ai.NewClient(cfg.LLM)

		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create LLM client")
		}

		senderAI = assistant.New(llm, db.DB)
		log.Info().Str("provider", llm.Name()).Str("model", cfg.LLM.Model).Msg("Assistant enabled")
	} else {
		log.Warn().Msg("GROQ_API_KEY not set, assistant endpoint will report unconfigured")
	}

	r := router.NewRouter(router.Dependencies{
		Assistant: senderAI,
		Quota:     quota.NewLimiter(rdb),
	})

	log.Info().Str("port", cfg.Port).Msg("Starting server")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
