package config

import "errors"

var (
	ErrTokenMissing   = errors.New("DISCORD_TOKEN is required")
	ErrChannelMissing = errors.New("DISCORD_CHANNEL is required")
	ErrBrokersMissing = errors.New("AUDIT_ENABLED is true but KAFKA_BROKERS is not set")
)
