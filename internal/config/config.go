package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Tenancy   TenancyConfig
	Providers ProvidersConfig
	OIDC      OIDCConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// TenancyConfig controls host-based routing. Every host other than RootDomain
// is treated as a tenant domain and resolved against the users collection.
type TenancyConfig struct {
	RootDomain string
}

// ProvidersConfig groups the external profile API settings. Each provider
// exposes an explicit Configured predicate so callers branch deliberately
// instead of probing for empty fields.
type ProvidersConfig struct {
	GitHub      GitHubConfig
	LeetCode    LeetCodeConfig
	LinkedIn    LinkedInConfig
	CacheTTL    time.Duration
	HTTPTimeout time.Duration
}

type GitHubConfig struct {
	APIBaseURL string
	Username   string
	Token      string
}

// Configured reports whether live GitHub fetches are possible. The token is
// optional (unauthenticated requests work at a lower rate limit).
func (c GitHubConfig) Configured() bool { return c.Username != "" }

type LeetCodeConfig struct {
	APIBaseURL string
	Username   string
}

// Configured treats the historical placeholder the same as unset.
func (c LeetCodeConfig) Configured() bool {
	return c.Username != "" && c.Username != "sample-user"
}

type LinkedInConfig struct {
	APIBaseURL  string
	AccessToken string
	PublicID    string
}

func (c LinkedInConfig) Configured() bool { return c.AccessToken != "" }

type OIDCConfig struct {
	IssuerURL string
	ClientID  string
}

type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("ROOT_DOMAIN", "localhost:3000")
	viper.SetDefault("GITHUB_API_URL", "https://api.github.com")
	viper.SetDefault("LEETCODE_API_URL", "https://leetcode-api-faisalshohag.vercel.app")
	viper.SetDefault("LINKEDIN_API_URL", "https://api.linkedin.com")
	viper.SetDefault("PROVIDER_CACHE_TTL", 3600)
	viper.SetDefault("PROVIDER_HTTP_TIMEOUT", 10)
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 15)
	viper.SetDefault("JWT_REFRESH_TOKEN_TTL", 10080)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      getEnvOrPanic("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		Tenancy: TenancyConfig{
			RootDomain: viper.GetString("ROOT_DOMAIN"),
		},
		Providers: ProvidersConfig{
			GitHub: GitHubConfig{
				APIBaseURL: viper.GetString("GITHUB_API_URL"),
				Username:   viper.GetString("GITHUB_USERNAME"),
				Token:      os.Getenv("GITHUB_TOKEN"),
			},
			LeetCode: LeetCodeConfig{
				APIBaseURL: viper.GetString("LEETCODE_API_URL"),
				Username:   viper.GetString("LEETCODE_USERNAME"),
			},
			LinkedIn: LinkedInConfig{
				APIBaseURL:  viper.GetString("LINKEDIN_API_URL"),
				AccessToken: os.Getenv("LINKEDIN_ACCESS_TOKEN"),
				PublicID:    viper.GetString("LINKEDIN_USER_ID"),
			},
			CacheTTL:    time.Duration(viper.GetInt("PROVIDER_CACHE_TTL")) * time.Second,
			HTTPTimeout: time.Duration(viper.GetInt("PROVIDER_HTTP_TIMEOUT")) * time.Second,
		},
		OIDC: OIDCConfig{
			IssuerURL: viper.GetString("OIDC_ISSUER_URL"),
			ClientID:  viper.GetString("OIDC_CLIENT_ID"),
		},
		JWT: JWTConfig{
			Secret:          os.Getenv("JWT_SECRET"),
			AccessTokenTTL:  time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
			RefreshTokenTTL: time.Duration(viper.GetInt("JWT_REFRESH_TOKEN_TTL")) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	// Basic validation
	if cfg.JWT.Secret == "" {
		log.Println("WARNING: JWT_SECRET is not set; set a secure value in production")
	}

	return cfg, nil
}

func getEnvOrPanic(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("environment variable %s is required", key)
	}
	return v
}
