package report

import (
	"context"
	"fmt"
	"log"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"NetSentry/internal/config"
	"NetSentry/internal/model"
)

const createTableStatement = `
CREATE TABLE IF NOT EXISTS flagged_events (
    ID        String,
    Timestamp DateTime,
    SrcIP     String,
    DstIP     String,
    Port      String,
    Protocol  String,
    Magnitude UInt64,
    Reason    String
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY (SrcIP, Timestamp);
`

// ClickHouseReporter implements the model.Reporter interface for ClickHouse.
type ClickHouseReporter struct {
	conn driver.Conn
}

// NewClickHouseReporter connects to ClickHouse and ensures the event table
// exists.
func NewClickHouseReporter(cfg config.ClickHouseConfig) (model.Reporter, error) {
	conn, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	if err := conn.Exec(context.Background(), createTableStatement); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	log.Println("Successfully connected to ClickHouse and ensured table exists.")

	return &ClickHouseReporter{conn: conn}, nil
}

func connect(cfg config.ClickHouseConfig) (driver.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Debug: false,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})

	if err != nil {
		return nil, err
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return conn, nil
}

// Report batch-inserts one window's events into the flagged_events table.
func (r *ClickHouseReporter) Report(events []model.FlaggedEvent) error {
	batch, err := r.conn.PrepareBatch(context.Background(), "INSERT INTO flagged_events")
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, ev := range events {
		err = batch.Append(
			ev.ID,
			ev.Timestamp,
			ev.SrcIP,
			ev.DstIP,
			ev.Port,
			ev.Protocol,
			ev.Magnitude,
			ev.Reason,
		)
		if err != nil {
			return fmt.Errorf("failed to append event to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}
	log.Printf("Inserted %d event(s) into ClickHouse.", len(events))
	return nil
}
