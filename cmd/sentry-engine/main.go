package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"NetSentry/internal/config"
	"NetSentry/internal/detector"
	"NetSentry/internal/model"
	"NetSentry/internal/notification"
	"NetSentry/internal/publish"
	"NetSentry/internal/report"
	"NetSentry/internal/response"
	"NetSentry/internal/tailer"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file.")
	flag.Parse()

	log.Println("Starting sentry-engine...")

	// 1. Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Wire the responders
	responders, cleanup, err := buildResponders(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize responders: %v", err)
	}
	defer cleanup()

	// 3. Start the tail source and the detector
	filePoll, err := time.ParseDuration(cfg.Ingest.FilePollInterval)
	if err != nil {
		log.Fatalf("Invalid file_poll_interval: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := tailer.New(cfg.Ingest.LogPath, filePoll).Run(ctx)

	det, err := detector.New(cfg, lines, responders)
	if err != nil {
		log.Fatalf("Failed to create detector: %v", err)
	}

	// 4. Stop cleanly on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutdown signal received, stopping detector...")
		cancel()
	}()

	det.Run(ctx)
	log.Println("Shutdown complete.")
}

// buildResponders assembles the configured reporters, blocker, notifier and
// publisher. The returned cleanup closes held connections.
func buildResponders(cfg *config.Config) (detector.Responders, func(), error) {
	var responders detector.Responders
	var closers []func()
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	responders.Reporters = []model.Reporter{report.NewCSVReporter(cfg.Report.CSVPath)}

	if cfg.Report.ClickHouse.Enabled {
		ch, err := report.NewClickHouseReporter(cfg.Report.ClickHouse)
		if err != nil {
			return responders, cleanup, err
		}
		responders.Reporters = append(responders.Reporters, ch)
	}

	if cfg.Report.Redis.Enabled {
		rd, err := report.NewRedisReporter(cfg.Report.Redis)
		if err != nil {
			return responders, cleanup, err
		}
		responders.Reporters = append(responders.Reporters, rd)
		closers = append(closers, func() { rd.Close() })
		log.Println("Redis event store enabled.")
	}

	if cfg.SMTP.To != "" {
		minInterval, err := time.ParseDuration(cfg.SMTP.MinInterval)
		if err != nil {
			return responders, cleanup, err
		}
		responders.Notifier = notification.NewRateLimited(notification.NewEmailNotifier(cfg.SMTP), minInterval)
		log.Printf("Email alerts enabled for %s.", cfg.SMTP.To)
	} else {
		log.Println("No alert recipient configured, email alerts disabled.")
	}

	if cfg.Firewall.Enabled {
		responders.Blocker = response.NewUFWBlocker(cfg.Firewall.Command)
		log.Println("Firewall blocking enabled.")
	}

	if cfg.NATS.Enabled {
		pub, err := publish.NewPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			return responders, cleanup, err
		}
		responders.Publisher = pub
		closers = append(closers, pub.Close)
	}

	return responders, cleanup, nil
}
