package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	// DriverMemory keeps everything in process memory; for local demos only.
	DriverMemory = "memory"

	// MinJWTSecretLength is the shortest HS256 key accepted.
	MinJWTSecretLength = 32
)

type Config struct {
	App struct {
		Port           string   `mapstructure:"port"`
		Env            string   `mapstructure:"env"`
		BaseURL        string   `mapstructure:"base_url"`
		SiteURL        string   `mapstructure:"site_url"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"app"`
	DB struct {
		Driver   string `mapstructure:"driver"`
		DSN      string `mapstructure:"dsn"`
		MaxConns int32  `mapstructure:"max_conns"`
	} `mapstructure:"db"`
	Mongo struct {
		URI      string `mapstructure:"uri"`
		Database string `mapstructure:"database"`
	} `mapstructure:"mongo"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret      string        `mapstructure:"jwt_secret"`
		TokenLifespan  time.Duration `mapstructure:"token_lifespan"`
		CookieName     string        `mapstructure:"cookie_name"`
		CookieSecure   bool          `mapstructure:"cookie_secure"`
		ProtectWrites  bool          `mapstructure:"protect_writes"`
		LoginRateLimit int           `mapstructure:"login_rate_limit"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
		SampleRatio  float64 `mapstructure:"sample_ratio"`
	} `mapstructure:"jaeger"`
	Dashboard struct {
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
		Months   int           `mapstructure:"months"`
	} `mapstructure:"dashboard"`
}

// LoadConfig reads .env and config.yaml from the given directories (default ".")
// and lets environment variables override both.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	v := viper.New()

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, strings.TrimSuffix(p, "/")+"/.env")
		v.AddConfigPath(p)
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use environment and defaults.")
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"app.port":                 "APP_PORT",
		"app.env":                  "APP_ENV",
		"app.base_url":             "APP_BASE_URL",
		"app.site_url":             "APP_SITE_URL",
		"app.allowed_origins":      "APP_ALLOWED_ORIGINS",
		"db.driver":                "DB_DRIVER",
		"db.dsn":                   "DB_DSN",
		"db.max_conns":             "DB_MAX_CONNS",
		"mongo.uri":                "MONGO_URI",
		"mongo.database":           "MONGO_DATABASE",
		"redis.addr":               "REDIS_ADDR",
		"redis.password":           "REDIS_PASSWORD",
		"kafka.brokers":            "KAFKA_BROKERS",
		"kafka.group_id":           "KAFKA_GROUP_ID",
		"auth.jwt_secret":          "JWT_SECRET",
		"auth.token_lifespan":      "TOKEN_LIFESPAN",
		"auth.cookie_name":         "AUTH_COOKIE_NAME",
		"auth.cookie_secure":       "AUTH_COOKIE_SECURE",
		"auth.protect_writes":      "AUTH_PROTECT_WRITES",
		"auth.login_rate_limit":    "AUTH_LOGIN_RATE_LIMIT",
		"cloudinary.cloud_name":    "CLOUDINARY_CLOUD_NAME",
		"cloudinary.api_key":       "CLOUDINARY_API_KEY",
		"cloudinary.api_secret":    "CLOUDINARY_API_SECRET",
		"jaeger.otlp_endpoint":     "JAEGER_OTLP_ENDPOINT",
		"jaeger.sample_ratio":      "JAEGER_SAMPLE_RATIO",
		"dashboard.cache_ttl":      "DASHBOARD_CACHE_TTL",
		"dashboard.months":         "DASHBOARD_MONTHS",
	}
	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	// comma separated lists arrive from the environment as a single element
	cfg.App.AllowedOrigins = splitList(cfg.App.AllowedOrigins)
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)

	if err = cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the server must not start with.
func (c Config) Validate() error {
	if len(c.Auth.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("auth.jwt_secret (JWT_SECRET) must be at least %d bytes, got %d", MinJWTSecretLength, len(c.Auth.JWTSecret))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("app.site_url", "http://localhost:3000")
	v.SetDefault("app.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("db.driver", DriverMongo)
	v.SetDefault("db.max_conns", 10)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "portfolio")
	v.SetDefault("kafka.group_id", "portfolio-dashboard-group")
	v.SetDefault("auth.token_lifespan", 24*time.Hour)
	v.SetDefault("auth.cookie_name", "portfolio_session")
	v.SetDefault("auth.login_rate_limit", 5)
	v.SetDefault("dashboard.cache_ttl", 5*time.Minute)
	v.SetDefault("dashboard.months", 6)
	v.SetDefault("jaeger.sample_ratio", 1.0)
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
