package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// IngestConfig describes where the connection log lives and how often to
// poll for it before it exists.
type IngestConfig struct {
	LogPath          string `yaml:"log_path"`
	FilePollInterval string `yaml:"file_poll_interval"`
}

// WindowConfig holds the analysis window parameters and the unusual-port
// rule inputs.
type WindowConfig struct {
	Interval             string `yaml:"interval"`
	ConnectionThreshold  uint64 `yaml:"connection_threshold"`
	VolumeThreshold      uint64 `yaml:"volume_threshold"`
	NormalPorts          []int  `yaml:"normal_ports"`
	PrivilegedPortCutoff int    `yaml:"privileged_port_cutoff"`
}

// ClickHouseConfig holds the connection details for the ClickHouse event store.
type ClickHouseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// RedisConfig holds the connection details for the Redis event history.
type RedisConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Addr         string `yaml:"addr"`
	Password     string `yaml:"password"`
	DB           int    `yaml:"db"`
	HistorySize  int64  `yaml:"history_size"`
	AlertChannel string `yaml:"alert_channel"`
}

// ReportConfig groups the reporting sinks. The CSV report is always on;
// ClickHouse and Redis are optional.
type ReportConfig struct {
	CSVPath    string           `yaml:"csv_path"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
	Redis      RedisConfig      `yaml:"redis"`
}

// SMTPConfig holds the mail transport settings. Username and Password are
// optional; when either is empty the notifier sends unauthenticated.
type SMTPConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	From        string `yaml:"from"`
	To          string `yaml:"to"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	MinInterval string `yaml:"min_interval"`
}

// FirewallConfig holds the block-response settings. Command is the argv
// prefix the flagged address is appended to.
type FirewallConfig struct {
	Enabled bool     `yaml:"enabled"`
	Command []string `yaml:"command"`
}

// NATSConfig holds the event bus settings.
type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// APIConfig holds the query API settings.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Ingest   IngestConfig   `yaml:"ingest"`
	Window   WindowConfig   `yaml:"window"`
	Report   ReportConfig   `yaml:"report"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Firewall FirewallConfig `yaml:"firewall"`
	NATS     NATSConfig     `yaml:"nats"`
	API      APIConfig      `yaml:"api"`
}

// LoadConfig reads the configuration from a YAML file, applies defaults and
// returns a Config struct.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in every field a minimal config file may omit. The
// defaults mirror the classic single-host deployment: a local log, a local
// CSV report and an unauthenticated local MTA.
func (c *Config) applyDefaults() {
	if c.Ingest.LogPath == "" {
		c.Ingest.LogPath = "network_traffic.log"
	}
	if c.Ingest.FilePollInterval == "" {
		c.Ingest.FilePollInterval = "5s"
	}
	if c.Window.Interval == "" {
		c.Window.Interval = "300s"
	}
	if c.Window.ConnectionThreshold == 0 {
		c.Window.ConnectionThreshold = 100
	}
	if c.Window.VolumeThreshold == 0 {
		c.Window.VolumeThreshold = 100
	}
	if len(c.Window.NormalPorts) == 0 {
		c.Window.NormalPorts = []int{22, 80, 443}
	}
	if c.Window.PrivilegedPortCutoff == 0 {
		c.Window.PrivilegedPortCutoff = 1024
	}
	if c.Report.CSVPath == "" {
		c.Report.CSVPath = "attack_report.csv"
	}
	if c.Report.Redis.HistorySize == 0 {
		c.Report.Redis.HistorySize = 1000
	}
	if c.Report.Redis.AlertChannel == "" {
		c.Report.Redis.AlertChannel = "netsentry.alerts"
	}
	if c.SMTP.Host == "" {
		c.SMTP.Host = "localhost"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 25
	}
	if c.SMTP.MinInterval == "" {
		c.SMTP.MinInterval = "5m"
	}
	if len(c.Firewall.Command) == 0 {
		c.Firewall.Command = []string{"sudo", "ufw", "deny", "from"}
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = "netsentry.events"
	}
	if c.API.ListenAddr == "" {
		c.API.ListenAddr = ":8080"
	}
}
