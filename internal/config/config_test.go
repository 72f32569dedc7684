package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	require.NoError(t, Load())

	assert.Equal(t, ":8080", APIAddr())
	assert.Equal(t, "tcp://localhost:1883", MQTTBroker())
	assert.Equal(t, "energy/appliances", MQTTReadingsTopic())
	assert.Equal(t, "energy/alerts", MQTTAlertsTopic())
	assert.Equal(t, 40.0, HouseMainLimit())
	assert.Equal(t, 10*time.Second, EvaluationInterval())
	assert.Equal(t, 100, AlertHistorySize())
	assert.False(t, UseCloudServices())
}

func TestLoadFromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("HOUSE_MAIN_LIMIT", "63.5")
	t.Setenv("EVALUATION_INTERVAL", "1m")
	t.Setenv("USE_CLOUD_SERVICES", "true")
	require.NoError(t, Load())

	assert.Equal(t, 63.5, HouseMainLimit())
	assert.Equal(t, time.Minute, EvaluationInterval())
	assert.True(t, UseCloudServices())
}

func TestLoadRejectsNonPositiveLimit(t *testing.T) {
	viper.Reset()
	t.Setenv("HOUSE_MAIN_LIMIT", "0")
	assert.Error(t, Load())
}
