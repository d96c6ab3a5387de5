package config

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type LogConfig struct {
	Level  string
	JSON   bool
	Text   bool
	Output io.Writer
}

func (lc LogConfig) SetLevel() {
	level, err := log.ParseLevel(lc.Level)
	if err == nil {
		log.SetLevel(level)
		return
	}

	log.WithError(err).
		WithFields(log.Fields{"level": lc.Level, "default": defLogConfig.Level}).
		Info("using default log level")

	level, derr := log.ParseLevel(defLogConfig.Level)
	if derr != nil {
		log.WithError(derr).
			WithFields(log.Fields{"level": defLogConfig.Level}).
			Fatal("unable to set log level")
	}

	log.SetLevel(level)
}

// SetFormat picks the formatter; text wins when both are requested.
func (lc *LogConfig) SetFormat() {
	if lc.Text {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		lc.JSON = false
		return
	}
	log.SetFormatter(&log.JSONFormatter{})
	lc.JSON = true
}

func (lc LogConfig) Set() {
	lc.SetFormat()
	lc.SetLevel()
	if lc.Output != nil {
		log.SetOutput(lc.Output)
	}

	log.WithFields(
		log.Fields{
			"json":  lc.JSON,
			"text":  lc.Text,
			"level": lc.Level,
		},
	).Debug("log configured")
}

// error is for compat with ChangeHandler
func setLogger() error {
	LogConfig{
		Level:  viper.GetString("log-level"),
		JSON:   viper.GetBool("log-json"),
		Text:   viper.GetBool("log-text"),
		Output: os.Stderr,
	}.Set()
	return nil
}
