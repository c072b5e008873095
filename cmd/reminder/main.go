// The reminder binary runs one reminder cycle and exits. It is meant to be
// invoked by an external scheduler (cron, systemd timer) at the cadence
// declared in REMINDER_CADENCE.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mindsender/mindsender/db"
	"github.com/mindsender/mindsender/internal/config"
	"github.com/mindsender/mindsender/internal/mailer"
	"github.com/mindsender/mindsender/internal/reminder"
	"github.com/mindsender/mindsender/internal/taskstore"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using process environment")
	}

	cfg, err := config.LoadReminder()

	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if err := db.ConnectDatabase(cfg.DatabaseDSN); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	job := reminder.Job{
		Store:  taskstore.Admin(db.DB),
		Mailer: mailer.NewSMTP(cfg.SMTP, cfg.AppURL),
		Config: reminder.Config{
			WindowLead: cfg.WindowLead,
			WindowSpan: cfg.WindowSpan,
			SendDelay:  cfg.SendDelay,
		},
		Log: log.Logger,
	}

	if err := job.Run(context.Background(), time.Now()); err != nil {
		log.Fatal().Err(err).Msg("Reminder cycle failed")
	}
}
