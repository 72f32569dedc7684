package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/alert"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/cloud"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/config"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/database"
	httpHandlers "github.com/ANIKETSHETTY47/socket-load-advisor/internal/http"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/metrics"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	m := metrics.New()
	history := alert.NewHistory(config.AlertHistorySize())
	svcs := service.New(db, service.NewAlertSink(history, nil), m)
	svcs.Advisor.Notifier = service.NewBatchNotifier()

	deps := httpHandlers.Deps{
		Groups:   svcs.Repos,
		Advisor:  svcs.Advisor,
		History:  history,
		Gatherer: m.Registry,
	}
	if config.UseCloudServices() {
		s3, err := cloud.NewS3Client(config.AWSRegion(), config.S3Bucket())
		if err != nil {
			log.Error().Err(err).Msg("s3 disabled")
		} else {
			deps.Reports = s3
			svcs.Advisor.Archive = s3
		}
	}

	app := fiber.New()
	httpHandlers.Register(app, deps)

	addr := config.APIAddr()
	if addr == "" {
		addr = ":8080"
	}
	log.Info().Str("addr", addr).Msg("api listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server exit")
}
