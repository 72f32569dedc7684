package alert

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/recommendation"
)

// LogSink writes every advisory message to the global logger.
type LogSink struct{}

func (LogSink) Alert(message string) {
	log.Warn().Str("component", "advisor").Msg(message)
}

// Multi forwards each message to every sink, in order.
type Multi []recommendation.AlertSink

func (m Multi) Alert(message string) {
	for _, s := range m {
		s.Alert(message)
	}
}

// Counting counts messages before handing them on.
type Counting struct {
	Next    recommendation.AlertSink
	Counter prometheus.Counter
}

func (c Counting) Alert(message string) {
	c.Counter.Inc()
	c.Next.Alert(message)
}

type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTSink publishes advisory messages to a broker topic so that displays
// and phones on the local network can pick them up.
type MQTTSink struct {
	client  publisher
	topic   string
	timeout time.Duration
}

func NewMQTTSink(client mqtt.Client, topic string) *MQTTSink {
	return &MQTTSink{client: client, topic: topic, timeout: 2 * time.Second}
}

func (s *MQTTSink) Alert(message string) {
	token := s.client.Publish(s.topic, 1, false, message)
	if !token.WaitTimeout(s.timeout) {
		log.Error().Str("topic", s.topic).Msg("mqtt alert publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		log.Error().Err(err).Str("topic", s.topic).Msg("mqtt alert publish failed")
	}
}
