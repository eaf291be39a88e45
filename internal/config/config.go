package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all bot settings, populated from environment variables.
type Config struct {
	DiscordToken   string
	DiscordChannel string
	DatasetFile    string

	// SourceTZ is the timezone the dataset timestamps are recorded in;
	// DisplayTZ is the one used when rendering times to users.
	SourceTZ  *time.Location
	DisplayTZ *time.Location

	NotifyBefore    time.Duration // lead time ahead of a storm's start
	Language        string
	NextStormCount  int // storms included per notification, candidate included
	TickInterval    time.Duration
	DispatchTimeout time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka notification audit log, disabled unless AUDIT_ENABLED=true.
	AuditEnabled    bool
	KafkaBrokers    []string
	KafkaAuditTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	sourceTZ, err := parseTZOffset("SOURCE_TZ_OFFSET", 9)
	if err != nil {
		return nil, err
	}
	displayTZ, err := parseTZOffset("DISPLAY_TZ_OFFSET", 8)
	if err != nil {
		return nil, err
	}

	notifyBefore, err := parseMinutes("NOTIFY_BEFORE", 10)
	if err != nil {
		return nil, err
	}

	nextCount, err := parsePositiveInt("NEXT_STORM_COUNT", 3)
	if err != nil {
		return nil, err
	}

	tickInterval, err := parsePositiveDuration("TICK_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	dispatchTimeout, err := parsePositiveDuration("DISPATCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordChannel: os.Getenv("DISCORD_CHANNEL"),
		DatasetFile:    envOrDefault("DATASET_FILE", "./predicted_dataset"),

		SourceTZ:  sourceTZ,
		DisplayTZ: displayTZ,

		NotifyBefore:    notifyBefore,
		Language:        envOrDefault("LANG_CODE", "tc"),
		NextStormCount:  nextCount,
		TickInterval:    tickInterval,
		DispatchTimeout: dispatchTimeout,

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		AuditEnabled:    os.Getenv("AUDIT_ENABLED") == "true",
		KafkaBrokers:    parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaAuditTopic: envOrDefault("KAFKA_AUDIT_TOPIC", "weather-bot-notifications"),
	}

	if cfg.DiscordToken == "" {
		return nil, ErrTokenMissing
	}
	if cfg.DiscordChannel == "" {
		return nil, ErrChannelMissing
	}
	if cfg.AuditEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, ErrBrokersMissing
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseTZOffset reads a whole-hour UTC offset and returns a fixed zone.
func parseTZOffset(key string, def int) (*time.Location, error) {
	hours := def
	if s := os.Getenv(key); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < -12 || v > 14 {
			return nil, fmt.Errorf("%s must be a whole-hour UTC offset between -12 and 14", key)
		}
		hours = v
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", hours), hours*3600), nil
}

func parseMinutes(key string, def int) (time.Duration, error) {
	mins := def
	if s := os.Getenv(key); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return 0, fmt.Errorf("%s must be a positive integer of minutes", key)
		}
		mins = v
	}
	return time.Duration(mins) * time.Minute, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	if s := os.Getenv(key); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return 0, fmt.Errorf("%s must be a positive integer", key)
		}
		return v, nil
	}
	return def, nil
}

func parsePositiveDuration(key string, def time.Duration) (time.Duration, error) {
	if s := os.Getenv(key); s != "" {
		v, err := time.ParseDuration(s)
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("%s must be a positive duration", key)
		}
		return v, nil
	}
	return def, nil
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
