package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Pipeline holds the tunables for the crisis ingestion pipeline.
type Pipeline struct {
	BindAddr            string
	DedupeRadiusKM      float64
	LeaseTTL            time.Duration
	LeaseBucketDeg      float64
	CollaboratorTimeout time.Duration
	ClassifierURL       string
	OpenAIModel         string
	RefineNonCrisis     bool
	FeedCronEnabled     bool
}

// Load builds a Pipeline config from environment variables.
func Load() (*Pipeline, error) {
	c := &Pipeline{
		BindAddr:            getEnv("BIND_ADDR", ":8080"),
		DedupeRadiusKM:      getFloat("DEDUPE_RADIUS_KM", 20),
		LeaseTTL:            getDuration("DEDUPE_LEASE_TTL", "30s"),
		LeaseBucketDeg:      getFloat("DEDUPE_LEASE_BUCKET_DEG", 0.2),
		CollaboratorTimeout: getDuration("COLLABORATOR_TIMEOUT", "15s"),
		ClassifierURL:       getEnv("CLASSIFIER_URL", ""),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		RefineNonCrisis:     getBool("REFINE_NON_CRISIS", true),
		FeedCronEnabled:     getBool("FEED_CRON_ENABLED", true),
	}

	if c.DedupeRadiusKM <= 0 {
		return nil, fmt.Errorf("DEDUPE_RADIUS_KM must be positive")
	}
	if c.LeaseBucketDeg <= 0 {
		return nil, fmt.Errorf("DEDUPE_LEASE_BUCKET_DEG must be positive")
	}
	if c.LeaseTTL <= 0 {
		return nil, fmt.Errorf("DEDUPE_LEASE_TTL must be positive")
	}
	if c.CollaboratorTimeout <= 0 {
		return nil, fmt.Errorf("COLLABORATOR_TIMEOUT must be positive")
	}
	if c.ClassifierURL == "" {
		return nil, fmt.Errorf("CLASSIFIER_URL must be set")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}
