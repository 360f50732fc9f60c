package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"NetSentry/internal/config"
	"NetSentry/internal/model"
)

// EventFilter narrows an event query. Zero values mean "no constraint".
type EventFilter struct {
	SrcIP  string
	Reason string
	Since  time.Time
	Limit  int
}

// SourceCount is one row of the top-sources aggregation.
type SourceCount struct {
	SrcIP string `json:"src_ip"`
	Count uint64 `json:"count"`
}

// Querier defines the interface for querying stored flagged events.
type Querier interface {
	Events(ctx context.Context, filter EventFilter) ([]model.FlaggedEvent, error)
	TopSources(ctx context.Context, since time.Time, limit int) ([]SourceCount, error)
}

// clickhouseQuerier implements the Querier interface for ClickHouse.
type clickhouseQuerier struct {
	conn clickhouse.Conn
}

// NewClickHouseQuerier creates a new querier for ClickHouse.
func NewClickHouseQuerier(cfg config.ClickHouseConfig) (Querier, error) {
	conn, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}
	return &clickhouseQuerier{conn: conn}, nil
}

func connect(cfg config.ClickHouseConfig) (clickhouse.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
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

// Events returns stored events matching the filter, most recent first.
func (q *clickhouseQuerier) Events(ctx context.Context, filter EventFilter) ([]model.FlaggedEvent, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ID, Timestamp, SrcIP, DstIP, Port, Protocol, Magnitude, Reason
		FROM flagged_events
	`)

	var whereClauses []string
	args := []interface{}{}

	if filter.SrcIP != "" {
		whereClauses = append(whereClauses, "SrcIP = ?")
		args = append(args, filter.SrcIP)
	}
	if filter.Reason != "" {
		whereClauses = append(whereClauses, "Reason LIKE ?")
		args = append(args, filter.Reason+"%")
	}
	if !filter.Since.IsZero() {
		whereClauses = append(whereClauses, "Timestamp >= ?")
		args = append(args, filter.Since)
	}

	if len(whereClauses) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(whereClauses, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY Timestamp DESC")
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	queryBuilder.WriteString(" LIMIT ?")
	args = append(args, limit)

	rows, err := q.conn.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var events []model.FlaggedEvent
	for rows.Next() {
		var ev model.FlaggedEvent
		if err := rows.Scan(&ev.ID, &ev.Timestamp, &ev.SrcIP, &ev.DstIP, &ev.Port, &ev.Protocol, &ev.Magnitude, &ev.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}

	return events, nil
}

// TopSources aggregates event counts per source since the given instant.
func (q *clickhouseQuerier) TopSources(ctx context.Context, since time.Time, limit int) ([]SourceCount, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := q.conn.Query(ctx, `
		SELECT SrcIP, count(*) AS Hits
		FROM flagged_events
		WHERE Timestamp >= ?
		GROUP BY SrcIP
		ORDER BY Hits DESC
		LIMIT ?
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var counts []SourceCount
	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.SrcIP, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan source count: %w", err)
		}
		counts = append(counts, sc)
	}

	return counts, nil
}
