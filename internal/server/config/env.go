package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over the file.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.RedisAddr = v
	}
	if v := os.Getenv("ACCESS_TOKEN_SECRET"); v != "" {
		config.AccessTokenSecret = v
	}
	if v := os.Getenv("REFRESH_TOKEN_SECRET"); v != "" {
		config.RefreshTokenSecret = v
	}
	if n, ok := envInt("ACCESS_TOKEN_TTL_MINUTES"); ok {
		config.AccessTokenTTL = time.Duration(n) * time.Minute
	}
	if n, ok := envInt("REFRESH_TOKEN_TTL_DAYS"); ok {
		config.RefreshTokenTTL = time.Duration(n) * 24 * time.Hour
	}
	if n, ok := envInt("STORE_TIMEOUT_SECONDS"); ok {
		config.StoreTimeout = time.Duration(n) * time.Second
	}
	if n, ok := envInt("LOGIN_RATE_LIMIT"); ok {
		config.LoginRateLimit = int64(n)
	}
	if n, ok := envInt("LOGIN_RATE_WINDOW_SECONDS"); ok {
		config.LoginRateWindow = time.Duration(n) * time.Second
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.AllowedOrigins = origins
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		config.AdminUsername = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		config.AdminPassword = v
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
