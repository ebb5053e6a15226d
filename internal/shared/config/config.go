package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	LogFormat       string
	CORSAllowOrigin []string
	CompanyName     string
	MaxUploadBytes  int64

	ObjectStoreType string
	ResumesDir      string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	RecordStoreType string
	ApplicationsDB  string
	DatabaseURL     string

	TemplatesDir string
	AssetsDir    string

	Mail MailConfig
}

// MailConfig holds outbound email settings.
type MailConfig struct {
	Transport      string
	SMTPServer     string
	SMTPPort       int
	SMTPUseTLS     bool
	SMTPTimeout    time.Duration
	SenderEmail    string
	SenderPassword string
	ReceiverEmail  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dataDir := getEnv("DATA_DIR", ".")
	recordStore := normalizeRecordStore(getEnv("RECORD_STORE", "file"))
	dbURL := os.Getenv("DATABASE_URL")

	if recordStore == "postgres" && dbURL == "" {
		log.Printf("RECORD_STORE=postgres requires DATABASE_URL")
	}

	return Config{
		Port:            getEnv("PORT", "5000"),
		Env:             env,
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "json")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		CompanyName:     getEnv("COMPANY_NAME", "InGrowwth Innovations"),
		MaxUploadBytes:  getInt64("MAX_UPLOAD_BYTES", 10<<20),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		ResumesDir:      getEnv("RESUMES_DIR", filepath.Join(dataDir, "resumes")),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),

		RecordStoreType: recordStore,
		ApplicationsDB:  getEnv("APPLICATIONS_DB", filepath.Join(dataDir, "applications.json")),
		DatabaseURL:     dbURL,

		TemplatesDir: getEnv("TEMPLATES_DIR", filepath.Join(dataDir, "templates")),
		AssetsDir:    getEnv("ASSETS_DIR", filepath.Join(dataDir, "assets", "images")),

		Mail: MailConfig{
			Transport:      normalizeTransport(getEnv("MAIL_TRANSPORT", "smtp")),
			SMTPServer:     getEnv("SMTP_SERVER", "smtp.gmail.com"),
			SMTPPort:       getInt("SMTP_PORT", 587),
			SMTPUseTLS:     getBool("SMTP_USE_TLS", true),
			SMTPTimeout:    getDuration("SMTP_TIMEOUT", 15*time.Second),
			SenderEmail:    getEnv("SENDER_EMAIL", ""),
			SenderPassword: getEnv("SENDER_PASSWORD", ""),
			ReceiverEmail:  strings.TrimSpace(getEnv("RECEIVER_EMAIL", "")),
		},
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config env %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("config env %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config env %s invalid bool: %v", key, err)
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config env %s invalid duration: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeRecordStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	default:
		return "file"
	}
}

func normalizeTransport(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ses":
		return "ses"
	case "log", "none":
		return "log"
	default:
		return "smtp"
	}
}
