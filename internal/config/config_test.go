package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 360, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 2*time.Minute, cfg.Pairing.PinTTL())
	assert.Equal(t, 10*time.Minute, cfg.Pairing.PinStoreTTL())
	assert.Equal(t, 10, cfg.Pairing.PinMaxAttempts)
}

func TestLoadRejectsStoreTTLNotExceedingPinTTL(t *testing.T) {
	t.Setenv("PAIRING_PIN_TTL_SECONDS", "600")
	t.Setenv("PAIRING_PIN_STORE_TTL_SECONDS", "600")

	_, err := Load()
	require.Error(t, err)
}
