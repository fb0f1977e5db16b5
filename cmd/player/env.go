package main

import (
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const deviceIDFile = ".device_id"

type Environment struct {
	ServerURL         string
	DeviceID          string
	PollInterval      time.Duration
	HeartbeatInterval time.Duration
}

// LoadEnvironment reads player settings. A .env file is honored when
// present.
func LoadEnvironment() Environment {
	_ = godotenv.Load()

	env := Environment{
		ServerURL:         os.Getenv("SERVER_URL"),
		DeviceID:          os.Getenv("DEVICE_ID"),
		PollInterval:      durationEnv("POLL_INTERVAL", 15*time.Second),
		HeartbeatInterval: durationEnv("HEARTBEAT_INTERVAL", 30*time.Second),
	}

	if env.ServerURL == "" {
		log.Fatal().Msg("SERVER_URL is required")
	}
	if env.DeviceID == "" {
		env.DeviceID = loadOrCreateDeviceID()
	}

	return env
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid duration, using default")
		return fallback
	}
	return d
}

// loadOrCreateDeviceID keeps the device identity stable across restarts.
func loadOrCreateDeviceID() string {
	if data, err := os.ReadFile(deviceIDFile); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}

	id := uuid.NewString()
	if err := os.WriteFile(deviceIDFile, []byte(id), 0o600); err != nil {
		log.Warn().Err(err).Msg("could not persist device id, using ephemeral identity")
	}
	return id
}

// newPairingCode derives a short code an operator can type into the
// admin console.
func newPairingCode() string {
	return strings.ToUpper(uuid.NewString()[:6])
}
