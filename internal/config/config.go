package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	// EphemeralBackend selects the OTP / verification-token store: "memory" | "redis" | "dynamo".
	EphemeralBackend string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTIssuer         string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration

	OTPTTL               time.Duration
	OTPLength            int
	VerificationTokenTTL time.Duration
	LegacyOTPTTL         time.Duration
	LoginRequireVerified bool

	OTPRequestInterval time.Duration
	OTPRequestBurst    int
	OTPVerifyInterval  time.Duration
	OTPVerifyBurst     int

	// EmailBackend selects the mailer: "console" | "smtp" | "sendgrid".
	EmailBackend   string
	EmailFrom      string
	EmailFromName  string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	SendGridAPIKey string

	AllowedOrigins []string // CORS allowed origins
	// TrustProxyHeaders keys client throttling on X-Forwarded-For and
	// X-Real-Ip. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users     string
	Ephemeral string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:     getEnv("DYNAMO_TABLE_USERS", "users"),
			Ephemeral: getEnv("DYNAMO_TABLE_EPHEMERAL", "ephemeral_keys"),
		},

		EphemeralBackend: strings.ToLower(getEnv("EPHEMERAL_BACKEND", "memory")),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTIssuer:         getEnv("JWT_ISSUER", "job-portal-accounts"),
		AccessTokenTTL:    getEnvDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL:   getEnvDuration("REFRESH_TOKEN_TTL", 24*time.Hour),

		OTPTTL:               getEnvDuration("OTP_TTL", 5*time.Minute),
		OTPLength:            getEnvInt("OTP_LENGTH", 6),
		VerificationTokenTTL: getEnvDuration("VERIFICATION_TOKEN_TTL", 10*time.Minute),
		LegacyOTPTTL:         getEnvDuration("LEGACY_OTP_TTL", 5*time.Minute),
		LoginRequireVerified: getEnvBool("LOGIN_REQUIRE_VERIFIED", true),

		OTPRequestInterval: getEnvDuration("OTP_REQUEST_INTERVAL", 20*time.Second),
		OTPRequestBurst:    getEnvInt("OTP_REQUEST_BURST", 3),
		OTPVerifyInterval:  getEnvDuration("OTP_VERIFY_INTERVAL", 10*time.Second),
		OTPVerifyBurst:     getEnvInt("OTP_VERIFY_BURST", 5),

		EmailBackend:   strings.ToLower(getEnv("EMAIL_BACKEND", "console")),
		EmailFrom:      getEnv("EMAIL_FROM", "noreply@example.com"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Job Portal"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnvInt("SMTP_PORT", 1025),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		TrustProxyHeaders: getEnvBool("TRUST_PROXY_HEADERS", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("90s", "5m").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
