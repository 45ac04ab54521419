package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/diegoclair/slack-reminder-bot/internal/config"
	"github.com/diegoclair/slack-reminder-bot/internal/database"
	"github.com/diegoclair/slack-reminder-bot/internal/domain/service"
	"github.com/diegoclair/slack-reminder-bot/internal/handlers"
	"github.com/diegoclair/slack-reminder-bot/migrator/sqlite"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg(".env file not found")
	}

	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone")
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	logger.Info().Msg("running migrations")
	if err := sqlite.Migrate(db.DB()); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	slackClient := slack.New(cfg.SlackBotToken)

	dm := database.NewInstance(db)
	services := service.NewInstance(dm, slackClient, loc, cfg.PollInterval, logger)

	services.Scheduler.Start()
	defer services.Scheduler.Stop()

	handler := handlers.New(services.Reminder, cfg.SlackSigningSecret, logger)

	http.HandleFunc("/slack/commands", handler.HandleSlashCommand)
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
