package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration loaded from environment variables.
//
// The admin credential defaults mirror the values the site shipped with;
// they are a convenience for a single-operator deployment, not a security
// boundary.
type Config struct {
	DataDir             string
	ValueQuotaBytes     int
	AdminUsername       string
	AdminPassword       string
	AdminEmail          string
	SiteName            string
	SendGridKey         string
	SessionTTL          time.Duration
	ExtendedSessionTTL  time.Duration
	LockoutDuration     time.Duration
	MaxLoginAttempts    int
	HealthSampleSeconds int
	CorsOrigins         []string
}

func Load() Config {
	return Config{
		DataDir:             envOr("ESI_DATA_DIR", "storage/data"),
		ValueQuotaBytes:     envOrInt("ESI_VALUE_QUOTA_BYTES", 5*1024*1024),
		AdminUsername:       envOr("ESI_ADMIN_USERNAME", "admin"),
		AdminPassword:       envOr("ESI_ADMIN_PASSWORD", "martin2024"),
		AdminEmail:          envOr("ESI_ADMIN_EMAIL", ""),
		SiteName:            envOr("ESI_SITE_NAME", "ESI"),
		SendGridKey:         envOr("SENDGRID_API_KEY", ""),
		SessionTTL:          envOrDuration("ESI_SESSION_TTL", 2*time.Hour),
		ExtendedSessionTTL:  envOrDuration("ESI_EXTENDED_SESSION_TTL", 24*time.Hour),
		LockoutDuration:     envOrDuration("ESI_LOCKOUT_DURATION", 15*time.Minute),
		MaxLoginAttempts:    envOrInt("ESI_MAX_LOGIN_ATTEMPTS", 5),
		HealthSampleSeconds: envOrInt("ESI_HEALTH_SAMPLE_INTERVAL", 30),
		CorsOrigins:         parseCSV(envOr("CORS_ORIGINS", "")),
	}
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
