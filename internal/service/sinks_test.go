package service

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/alert"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/config"
)

func TestNewAlertSinkLocal(t *testing.T) {
	viper.Reset()
	require.NoError(t, config.Load())

	history := alert.NewHistory(5)
	sinks := NewAlertSink(history, nil)
	require.Len(t, sinks, 2)

	sinks.Alert("Recommended actions:")
	assert.Equal(t, []string{"Recommended actions:"}, history.Messages())
}

func TestNewBatchNotifierDisabledLocally(t *testing.T) {
	viper.Reset()
	require.NoError(t, config.Load())
	assert.Nil(t, NewBatchNotifier())

	viper.Reset()
	t.Setenv("USE_CLOUD_SERVICES", "true")
	require.NoError(t, config.Load())
	assert.Nil(t, NewBatchNotifier(), "no topic configured")
}
