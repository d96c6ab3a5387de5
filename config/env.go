package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DefaultEnvFile      = "config.env"
	passwordPlaceholder = "<password>"
)

// legacy keys read straight from the environment, as written in config.env
var legacyEnv = map[string]string{
	"database":          "DATABASE",
	"database-password": "DATABASE_PASSWORD",
	"api-key":           "STOCK_API_KEY",
	"port":              "PORT",
}

// loadEnvFile copies the dotenv file into the process environment without
// overriding variables that are already set.
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.WithField("file", path).Debug("no env file; relying on the environment")
			return
		}
		log.WithError(err).WithField("file", path).Warn("failed to load env file")
	}
}

// bindLegacyEnv maps the unprefixed variable names onto their keys; the
// prefixed forms are still found through AutomaticEnv.
func bindLegacyEnv() {
	for key, env := range legacyEnv {
		if err := viper.BindEnv(key, env); err != nil {
			log.WithError(err).WithField("key", key).Warn("could not bind env var")
		}
	}
}

// DatabaseURL substitutes password for the <password> placeholder in url.
func DatabaseURL(url, password string) string {
	return strings.Replace(url, passwordPlaceholder, password, 1)
}
