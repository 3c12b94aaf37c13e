//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/cmb-spectrum/internal/adapter/kafka"
	"github.com/couchcryptid/cmb-spectrum/internal/adapter/lambda"
	"github.com/couchcryptid/cmb-spectrum/internal/domain"
	"github.com/couchcryptid/cmb-spectrum/internal/fit"
	"github.com/couchcryptid/cmb-spectrum/internal/observability"
	"github.com/couchcryptid/cmb-spectrum/internal/pipeline"
)

const testTopic = "test-cmb-fit-results"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("cmb-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// serveBackupTable serves the backup spectrum in the archive's column layout.
func serveBackupTable(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "# freq  intensity  residual  uncert  galaxy")
		for _, o := range domain.BackupTable() {
			fmt.Fprintf(w, "%g %g 0 %g 0\n", o.Frequency, o.Intensity, o.Uncertainty*domain.UncertaintyScale)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestPipelinePublishesReport runs fetch, fit and publish against a real
// broker and reads the report back from the topic.
func TestPipelinePublishesReport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	archive := serveBackupTable(t)
	metrics := observability.NewMetricsForTesting()
	client := lambda.NewClient(archive.URL, "Mozilla/5.0", 5*time.Second, discardLogger())
	provider := pipeline.NewProvider(client, discardLogger(), metrics)

	publisher := kafka.NewPublisher([]string{broker}, testTopic, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	p := pipeline.New(provider, fit.New(), []pipeline.Reporter{publisher}, discardLogger(), metrics)
	report, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OriginRemote, report.Dataset.Origin)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from report topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, report.RunID, string(msg.Key))
	assert.Equal(t, "remote", headers["origin"])
	_, err = time.Parse(time.RFC3339, headers["created_at"])
	assert.NoError(t, err, "created_at should be valid RFC3339")

	var got domain.Report
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, report.RunID, got.RunID)
	assert.InDelta(t, domain.LiteratureTemperature, got.Fit.Temperature, 0.05)
	assert.Len(t, got.Dataset.Observations, 43)
}
