package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS    = "" // e.g. "example.com,example2.com"
	BIND_ADDRESS   = "0.0.0.0:8080"
	MYSQL_DSN      = "" // MySQL will be used if this is set
	SQLITE_FILE    = "" // SQLite will be used if MYSQL_DSN is not configured and this is set
	DEBUG_MODE     = true
	JWT_SECRET     = "" // Required for Bearer token clients (mobile app)
	JWT_EXPIRES_IN = 7 * 86400

	TMP_DIR            = "/tmp" // Used as local scratch space for S3 photo buckets
	DEFAULT_BUCKET_DIR = ""     // Used for creating the initial photo bucket

	// Contact form relay
	CONTACT_EMAIL = ""
	SMTP_HOST     = ""
	SMTP_PORT     = 465
	SMTP_USER     = ""
	SMTP_PASS     = ""

	// Requests per client IP within the rate limiter window
	RATE_LIMIT_WINDOW_SEC = 900
	RATE_LIMIT_MAX        = 200
	RATE_LIMIT_AUTH_MAX   = 20

	MAX_PHOTOS_PER_MEMORIAL = 50
	MAX_UPLOAD_SIZE_MB      = 5
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("JWT_SECRET", &JWT_SECRET)
	readEnvInt("JWT_EXPIRES_IN", &JWT_EXPIRES_IN)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvString("CONTACT_EMAIL", &CONTACT_EMAIL)
	readEnvString("SMTP_HOST", &SMTP_HOST)
	readEnvInt("SMTP_PORT", &SMTP_PORT)
	readEnvString("SMTP_USER", &SMTP_USER)
	readEnvString("SMTP_PASS", &SMTP_PASS)
	readEnvInt("RATE_LIMIT_WINDOW_SEC", &RATE_LIMIT_WINDOW_SEC)
	readEnvInt("RATE_LIMIT_MAX", &RATE_LIMIT_MAX)
	readEnvInt("RATE_LIMIT_AUTH_MAX", &RATE_LIMIT_AUTH_MAX)
	readEnvInt("MAX_PHOTOS_PER_MEMORIAL", &MAX_PHOTOS_PER_MEMORIAL)
	readEnvInt("MAX_UPLOAD_SIZE_MB", &MAX_UPLOAD_SIZE_MB)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
