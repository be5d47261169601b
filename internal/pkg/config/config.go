package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   signing keys), security settings
// - default: Values common across all environments (timeouts, intervals)
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	CORS   CORSConfig
	Log    LogConfig
	JWT    JWTConfig
	Signer SignerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// SignerConfig holds the Ed25519 voucher signing key. The seed is the
// 32-byte private seed, hex-encoded; terminals only ever receive the
// derived public key.
type SignerConfig struct {
	KeySeed string `envconfig:"VOUCHER_SIGNING_SEED" required:"true"`
}

// TerminalConfig is loaded by the cafeteria terminal binary, not the server.
type TerminalConfig struct {
	ServerURL     string        `envconfig:"TERMINAL_SERVER_URL" required:"true"`
	DeviceID      string        `envconfig:"TERMINAL_DEVICE_ID" required:"true"`
	DeviceKey     string        `envconfig:"TERMINAL_DEVICE_KEY" required:"true"`
	CafeteriaID   string        `envconfig:"TERMINAL_CAFETERIA_ID" required:"true"`
	QueuePath     string        `envconfig:"TERMINAL_QUEUE_PATH" default:"terminal.db"`
	SyncInterval  time.Duration `envconfig:"TERMINAL_SYNC_INTERVAL" default:"30s"`
	MaxAttempts   int           `envconfig:"TERMINAL_SYNC_MAX_ATTEMPTS" default:"10"`
	HTTPTimeout   time.Duration `envconfig:"TERMINAL_HTTP_TIMEOUT" default:"10s"`
	CacheSize     int           `envconfig:"TERMINAL_VOUCHER_CACHE_SIZE" default:"512"`
	SignerPubKey  string        `envconfig:"TERMINAL_SIGNER_PUBKEY" default:""`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func LoadTerminalConfig() (TerminalConfig, error) {
	var cfg TerminalConfig
	err := envconfig.Process("", &cfg)
	if err != nil {
		return TerminalConfig{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-jwt-secret",
			Duration: "24h",
		},
		Signer: SignerConfig{
			// Fixed seed so signatures are stable across test processes
			KeySeed: "6465736179756e6f2d746573742d7369676e696e672d736565642d3030303031",
		},
	}
}
