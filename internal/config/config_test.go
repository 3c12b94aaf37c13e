package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBrokers = "broker1:9092, broker2:9092"

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cmbfit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.RemoteEnabled)
	assert.Equal(t, DefaultSourceURL, cfg.SourceURL)
	assert.Equal(t, "Mozilla/5.0", cfg.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.PlotEnabled)
	assert.Equal(t, "cobe_analysis_result.png", cfg.PlotPath)
	assert.Empty(t, cfg.MetricsTextfile)
	assert.Empty(t, cfg.Brokers())
	assert.Equal(t, "cmb-fit-results", cfg.KafkaTopic)
	assert.Empty(t, cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("CMB_LOG_LEVEL", "debug")
	t.Setenv("CMB_LOG_FORMAT", "json")
	t.Setenv("CMB_REMOTE_ENABLED", "false")
	t.Setenv("CMB_FETCH_TIMEOUT", "3s")
	t.Setenv("CMB_PLOT_PATH", "out/spectrum.png")
	t.Setenv("CMB_METRICS_TEXTFILE", "/var/lib/node_exporter/cmb.prom")
	t.Setenv("CMB_KAFKA_BROKERS", testBrokers)
	t.Setenv("CMB_KAFKA_TOPIC", "fits")
	t.Setenv("CMB_HTTP_ADDR", ":9090")
	t.Setenv("CMB_SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.RemoteEnabled)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "out/spectrum.png", cfg.PlotPath)
	assert.Equal(t, "/var/lib/node_exporter/cmb.prom", cfg.MetricsTextfile)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.Brokers())
	assert.Equal(t, "fits", cfg.KafkaTopic)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfigFile(t, `
log_level: warn
fetch_timeout: 5s
plot_path: from-file.png
http_addr: ":8081"
`)
	t.Setenv("CMB_CONFIG", path)
	t.Setenv("CMB_HTTP_ADDR", ":9091")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "from-file.png", cfg.PlotPath)
	assert.Equal(t, ":9091", cfg.HTTPAddr)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CMB_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml")
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("CMB_CONFIG", writeConfigFile(t, "log_level: [unterminated"))
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidFetchTimeout(t *testing.T) {
	t.Setenv("CMB_FETCH_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_NegativeFetchTimeout(t *testing.T) {
	t.Setenv("CMB_FETCH_TIMEOUT", "-1s")
	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "fetch_timeout")
}

func TestLoad_FetchTimeoutIgnoredWhenRemoteDisabled(t *testing.T) {
	t.Setenv("CMB_REMOTE_ENABLED", "false")
	t.Setenv("CMB_FETCH_TIMEOUT", "0s")
	_, err := Load()
	require.NoError(t, err)
}

func TestLoad_InvalidSourceURL(t *testing.T) {
	t.Setenv("CMB_SOURCE_URL", "ftp://lambda.gsfc.nasa.gov/firas.txt")
	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "source_url")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("CMB_LOG_LEVEL", "verbose")
	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("CMB_LOG_FORMAT", "xml")
	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "log_format")
}

func TestLoad_PlotEnabledWithoutPath(t *testing.T) {
	t.Setenv("CMB_PLOT_PATH", "")
	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "plot_path")
}

func TestLoad_BrokersWithoutTopic(t *testing.T) {
	t.Setenv("CMB_KAFKA_BROKERS", testBrokers)
	t.Setenv("CMB_KAFKA_TOPIC", "")
	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "kafka_topic")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("CMB_SHUTDOWN_TIMEOUT", "0s")
	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "shutdown_timeout")
}

func TestBrokers_DropsEmptyEntries(t *testing.T) {
	cfg := &Config{KafkaBrokers: " a:9092,, b:9092 ,"}
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Brokers())
}
