package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Reco     RecoConfig
	Models   ModelsConfig
	Alert    AlertConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type AuthConfig struct {
	// bcrypt hash of the operator API key that the token endpoint accepts
	OperatorKeyHash string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	PoolSize      int
	MinIdleConns  int
	CacheEnabled  bool
	CacheTTLSecs  int
}

// RecoConfig carries the pipeline knobs. Zero or missing values fall back
// to the serving defaults baked into business/reco.
type RecoConfig struct {
	ItemsFromHistory     int
	CovisitsPerItem      int
	CandidatesPerSession int
	TopK                 int
	NativeIterations     int
}

type ModelsConfig struct {
	ClicksPath string
	CartsPath  string
	OrdersPath string
}

type AlertConfig struct {
	WebhookURL string
	Username   string
	Password   string
	PerMinute  int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "ShopReco API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "shop_reco"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Auth: AuthConfig{
			OperatorKeyHash: getEnv("OPERATOR_API_KEY_HASH", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
			PoolSize:      getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns:  getEnvInt("REDIS_MIN_IDLE_CONNS", 5),
			CacheEnabled:  getEnv("RECO_CACHE_ENABLED", "false") == "true",
			CacheTTLSecs:  getEnvInt("RECO_CACHE_TTL_SECONDS", 300),
		},
		Reco: RecoConfig{
			ItemsFromHistory:     getEnvInt("RECO_ITEMS_FROM_HISTORY", 0),
			CovisitsPerItem:      getEnvInt("RECO_COVISITS_PER_ITEM", 0),
			CandidatesPerSession: getEnvInt("RECO_CANDIDATES_PER_SESSION", 0),
			TopK:                 getEnvInt("RECO_TOP_K", 0),
			NativeIterations:     getEnvInt("MODEL_NATIVE_ITERATIONS", 0),
		},
		Models: ModelsConfig{
			ClicksPath: getEnv("MODEL_CLICKS_PATH", "models/clicks.txt"),
			CartsPath:  getEnv("MODEL_CARTS_PATH", "models/carts.txt"),
			OrdersPath: getEnv("MODEL_ORDERS_PATH", "models/orders.txt"),
		},
		Alert: AlertConfig{
			WebhookURL: getEnv("ALERT_WEBHOOK_URL", ""),
			Username:   getEnv("ALERT_BASIC_AUTH_USERNAME", ""),
			Password:   getEnv("ALERT_BASIC_AUTH_PASSWORD", ""),
			PerMinute:  getEnvInt("ALERT_PER_MINUTE", 6),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Auth.OperatorKeyHash == "" {
		return nil, errors.New("missing operator api key hash")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return n
}
