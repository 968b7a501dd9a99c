package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, Default().HTTPAddr, c.HTTPAddr)
	assert.Equal(t, "dealer.actions", c.ActionSubject)
	assert.Equal(t, time.Second, c.ClockInterval)
	assert.Equal(t, 10, c.ReadyTimeout)
}

func Test_Load_EnvFileAndOverrides(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("DEALER_DB_PATH=/tmp/dealer-test.db\nDEALER_READY_TIMEOUT=3\n"), 0644))

	t.Setenv("DEALER_HTTP_ADDR", ":9090")
	t.Setenv("DEALER_CLOCK_INTERVAL", "250ms")
	t.Setenv("DEALER_DB_PATH", "")
	t.Setenv("DEALER_READY_TIMEOUT", "")

	// godotenv.Load skips variables that are already set
	os.Unsetenv("DEALER_DB_PATH")
	os.Unsetenv("DEALER_READY_TIMEOUT")

	c, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.HTTPAddr)
	assert.Equal(t, 250*time.Millisecond, c.ClockInterval)
	assert.Equal(t, "/tmp/dealer-test.db", c.DBPath)
	assert.Equal(t, 3, c.ReadyTimeout)
}

func Test_Load_InvalidValues(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("DEALER_CLOCK_INTERVAL", "soon")
	_, err := Load(missing)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	t.Setenv("DEALER_CLOCK_INTERVAL", "")
	t.Setenv("DEALER_READY_TIMEOUT", "-1")
	_, err = Load(missing)
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func Test_SetupLogging(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	c := Default()
	c.LogLevel = "debug"
	c.SetupLogging()
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	c.LogLevel = "loud"
	c.SetupLogging()
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}
