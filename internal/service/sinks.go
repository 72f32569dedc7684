package service

import (
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/alert"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/cloud"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/config"
)

// NewAlertSink assembles the per-message delivery channels: the log and
// history always, the MQTT alerts topic when a client is given.
func NewAlertSink(history *alert.History, client mqtt.Client) alert.Multi {
	sinks := alert.Multi{alert.LogSink{}, history}

	if client != nil {
		sinks = append(sinks, alert.NewMQTTSink(client, config.MQTTAlertsTopic()))
	}

	return sinks
}

// NewBatchNotifier returns the SNS client used to push one notification per
// evaluation cycle, or nil when cloud services are off.
func NewBatchNotifier() BatchNotifier {
	if !config.UseCloudServices() || config.SNSTopicArn() == "" {
		return nil
	}
	sns, err := cloud.NewSNSClient(config.AWSRegion(), config.SNSTopicArn())
	if err != nil {
		log.Error().Err(err).Msg("sns disabled")
		return nil
	}
	return sns
}
