package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Redis      RedisConfig
	Logger     LoggerConfig
	Auth       AuthConfig
	CacheTTLs  CacheTTLConfig
	Submission SubmissionConfig
	Abandon    AbandonConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ClientURL    string // Frontend origin used for OAuth redirects and CORS
	CORSOrigins  string
}

type DBConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

type AuthConfig struct {
	JWT         JWTConfig
	GoogleOAuth GoogleOAuthConfig
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// CacheTTLConfig holds raw duration strings, parsed with ParseTTLStringOrDefault.
type CacheTTLConfig struct {
	QuizQuestions string
}

type SubmissionConfig struct {
	ScoringConcurrency int
}

type AbandonConfig struct {
	QueueSize    int
	WriteTimeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "20s")
	v.SetDefault("server.client_url", "http://localhost:5173")
	v.SetDefault("server.cors_origins", "http://localhost:5173")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("jwt.access_token_ttl", "1h")
	v.SetDefault("jwt.refresh_token_ttl", "168h")

	v.SetDefault("cache_ttls.quiz_questions", "10m")
	v.SetDefault("submission.scoring_concurrency", 8)
	v.SetDefault("abandon.queue_size", 256)
	v.SetDefault("abandon.write_timeout", "3s")
}

// LoadConfig reads config.yaml and applies APP_-prefixed environment overrides.
// A .env file in the working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			ClientURL:    strings.TrimRight(v.GetString("server.client_url"), "/"),
			CORSOrigins:  v.GetString("server.cors_origins"),
		},
		DB: DBConfig{
			Host:         v.GetString("db.host"),
			Port:         v.GetInt("db.port"),
			User:         v.GetString("db.user"),
			Password:     v.GetString("db.password"),
			DBName:       v.GetString("db.dbname"),
			SSLMode:      v.GetString("db.sslmode"),
			MaxOpenConns: v.GetInt("db.max_open_conns"),
			MaxIdleConns: v.GetInt("db.max_idle_conns"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Auth: AuthConfig{
			JWT: JWTConfig{
				SecretKey:       v.GetString("jwt.secret_key"),
				AccessTokenTTL:  v.GetDuration("jwt.access_token_ttl"),
				RefreshTokenTTL: v.GetDuration("jwt.refresh_token_ttl"),
			},
			GoogleOAuth: GoogleOAuthConfig{
				ClientID:     v.GetString("google_oauth.client_id"),
				ClientSecret: v.GetString("google_oauth.client_secret"),
				RedirectURL:  v.GetString("google_oauth.redirect_url"),
			},
		},
		CacheTTLs: CacheTTLConfig{
			QuizQuestions: v.GetString("cache_ttls.quiz_questions"),
		},
		Submission: SubmissionConfig{
			ScoringConcurrency: v.GetInt("submission.scoring_concurrency"),
		},
		Abandon: AbandonConfig{
			QueueSize:    v.GetInt("abandon.queue_size"),
			WriteTimeout: v.GetDuration("abandon.write_timeout"),
		},
	}
}

// GetDSN returns a postgres URL usable by both pgx and golang-migrate.
func (c *Config) GetDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DB.User, c.DB.Password),
		Host:   fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:   "/" + c.DB.DBName,
	}
	q := u.Query()
	if c.DB.SSLMode != "" {
		q.Set("sslmode", c.DB.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ParseTTLStringOrDefault parses a duration string, falling back when it is empty or invalid.
func (c *Config) ParseTTLStringOrDefault(ttlString string, defaultTTL time.Duration) time.Duration {
	if ttlString == "" {
		return defaultTTL
	}
	d, err := time.ParseDuration(ttlString)
	if err != nil || d <= 0 {
		return defaultTTL
	}
	return d
}
