package influx

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/pkg/config"
)

// Client wraps an InfluxDB connection scoped to one health-metrics bucket
type Client struct {
	client   influxdb2.Client
	queryAPI api.QueryAPI
	bucket   string
}

// NewClient creates a new InfluxDB client for the configured org and bucket
func NewClient(cfg *config.HealthSyncConfig) (*Client, error) {
	if cfg.InfluxURL == "" || cfg.InfluxToken == "" {
		return nil, fmt.Errorf("influx url and token are required")
	}

	client := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	return &Client{
		client:   client,
		queryAPI: client.QueryAPI(cfg.InfluxOrg),
		bucket:   cfg.Bucket,
	}, nil
}

// QueryMetrics fetches health metric points recorded in [from, to)
func (c *Client) QueryMetrics(ctx context.Context, from, to time.Time) ([]entities.HealthMetric, error) {
	query := fmt.Sprintf(`
		from(bucket: "%s")
		  |> range(start: %s, stop: %s)
		  |> filter(fn: (r) => r._measurement == "health_metrics")
		  |> sort(columns: ["_time"], desc: false)
	`, c.bucket, from.Format(time.RFC3339), to.Format(time.RFC3339))

	result, err := c.queryAPI.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("influx query failed: %w", err)
	}
	if result == nil {
		return nil, nil
	}

	var metrics []entities.HealthMetric
	for result.Next() {
		record := result.Record()

		value, ok := record.Value().(float64)
		if !ok {
			continue
		}

		metric := entities.HealthMetric{
			Type:      record.Field(),
			Value:     value,
			Timestamp: record.Time(),
		}
		if unit, ok := record.ValueByKey("unit").(string); ok {
			metric.Unit = unit
		}
		metrics = append(metrics, metric)
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("influx result iteration failed: %w", result.Err())
	}

	return metrics, nil
}

// Close shuts down the underlying HTTP clients
func (c *Client) Close() {
	c.client.Close()
}
