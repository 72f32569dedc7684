package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/alert"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/cloud"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/config"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/database"
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

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID(config.MQTTClientID())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	history := alert.NewHistory(config.AlertHistorySize())
	svcs := service.New(db, service.NewAlertSink(history, client), metrics.New())
	svcs.Advisor.Notifier = service.NewBatchNotifier()

	if config.UseCloudServices() {
		if s3, err := cloud.NewS3Client(config.AWSRegion(), config.S3Bucket()); err != nil {
			log.Error().Err(err).Msg("s3 disabled")
		} else {
			svcs.Advisor.Archive = s3
		}
	}

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		if err := svcs.Readings.FromMQTT(msg.Topic(), msg.Payload()); err != nil {
			log.Error().Err(err).Msg("ingest failed")
		}
	}

	topic := config.MQTTReadingsTopic()
	if token := client.Subscribe(topic, 0, handler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := config.EvaluationInterval()
	log.Info().Str("topic", topic).Dur("interval", interval).Msg("ingestor running; Ctrl+C to stop")
	svcs.Advisor.Run(ctx, interval)
	log.Info().Msg("ingestor stopped")
}
