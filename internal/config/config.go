package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // あればPOSTGRES_*より優先
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string

	JWTSecret         string // JWT署名シークレット
	AccessTokenTTLMin int
	BcryptCost        int

	GoEnv    string // dev/prod
	FEURL    string // CORS許可オリジン
	LogLevel string

	RabbitMQURL string // 空ならイベント発行しない

	// クーポンコード -> 割引率(%)
	Coupons map[string]int
}

// DefaultCoupons is used when COUPONS is not set.
const DefaultCoupons = "SAVE10:10"

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	ttl, err := atoiDefault("ACCESS_TOKEN_TTL_MIN", 15)
	if err != nil {
		return Config{}, err
	}
	cost, err := atoiDefault("BCRYPT_COST", 12)
	if err != nil {
		return Config{}, err
	}
	coupons, err := ParseCoupons(getenv("COUPONS", DefaultCoupons))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       getenv("POSTGRES_DB", "backoffice"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AccessTokenTTLMin: ttl,
		BcryptCost:        cost,

		GoEnv:    getenv("GO_ENV", "dev"),
		FEURL:    getenv("FE_URL", "*"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),

		Coupons: coupons,
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" && cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("DATABASE_URL or POSTGRES_PASSWORD is required")
	}
	if cfg.AccessTokenTTLMin <= 0 {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_TTL_MIN must be positive")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}

	return cfg, nil
}

// DSN returns DATABASE_URL or a key/value DSN built from POSTGRES_*.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// ParseCoupons parses "CODE:PERCENT,CODE:PERCENT". Codes are upper-cased.
func ParseCoupons(raw string) (map[string]int, error) {
	out := map[string]int{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, pct, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("COUPONS: invalid entry %q", part)
		}
		code = strings.ToUpper(strings.TrimSpace(code))
		p, err := strconv.Atoi(strings.TrimSpace(pct))
		if err != nil {
			return nil, fmt.Errorf("COUPONS: percent must be number: %w", err)
		}
		if code == "" || p <= 0 || p > 100 {
			return nil, fmt.Errorf("COUPONS: invalid entry %q", part)
		}
		out[code] = p
	}
	return out, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
