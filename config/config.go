package config

import (
	"os"
	"time"
)

type Config struct {
	Port      string
	LogFile   string
	MongoURI  string
	MongoDB   string
	JWTSecret string
	// RoomTTL reclaims rooms with no player activity for this long.
	// Zero disables the sweep.
	RoomTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		LogFile:   getEnv("LOG_FILE", "app.log"),
		MongoURI:  os.Getenv("MONGO_URI"),
		MongoDB:   getEnv("MONGO_DB", "pacman"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	if raw := os.Getenv("ROOM_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil {
			cfg.RoomTTL = ttl
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
