package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	StorageURL          string // base URL of the file store, e.g. https://xyz.supabase.co
	StorageSecretKey    string // service key for the file store (not the anon key)
	GoogleClientID      string // OAuth client ID for Google sign-in token verification
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" {
		if u := viper.GetString("DATABASE_URL_TEST"); u != "" {
			dbURL = u
		}
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		StorageURL:          viper.GetString("STORAGE_URL"),
		StorageSecretKey:    viper.GetString("STORAGE_SECRET_KEY"),
		GoogleClientID:      viper.GetString("GOOGLE_CLIENT_ID"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
	}, nil
}
