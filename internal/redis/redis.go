package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

// Pairing codes are short-lived: a device registers one, an admin claims
// it within the TTL or the device shows a fresh code.
const pairingCodeTTL = 10 * time.Minute

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func pairingKey(code string) string {
	return "pairing:" + code
}

// SetPairingCode stores code -> deviceID for the pairing window.
func SetPairingCode(ctx context.Context, code, deviceID string) error {
	if err := Rdb.Set(ctx, pairingKey(code), deviceID, pairingCodeTTL).Err(); err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to store pairing code")
		return err
	}
	return nil
}

// ClaimPairingCode resolves a pairing code to its device ID and consumes
// it, so a code pairs at most one display.
func ClaimPairingCode(ctx context.Context, code string) (string, error) {
	deviceID, err := Rdb.GetDel(ctx, pairingKey(code)).Result()
	if err != nil {
		return "", err
	}
	return deviceID, nil
}
