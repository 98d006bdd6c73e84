package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("SAHITYAHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("SAHITYAHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "sahityahub"
	}

	duration := 24 * time.Hour
	if ttl := os.Getenv("SAHITYAHUB_JWT_TTL_HOURS"); ttl != "" {
		if h, err := strconv.Atoi(ttl); err == nil && h > 0 {
			duration = time.Duration(h) * time.Hour
		}
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: duration,
	}
}

// IngestConfig carries the source file locations. Paths are resolved here
// once and handed to the pipeline.
type IngestConfig struct {
	WritersPath string
	PoetsPath   string
}

func LoadIngestConfig() IngestConfig {
	writers := os.Getenv("SAHITYAHUB_WRITERS_JSON")
	if writers == "" {
		writers = "databases/writers.json"
	}
	poets := os.Getenv("SAHITYAHUB_POETS_JSON")
	if poets == "" {
		poets = "databases/poets.json"
	}
	return IngestConfig{WritersPath: writers, PoetsPath: poets}
}
