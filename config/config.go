package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

type ChangeHandler func() error

var (
	handlersMu     sync.Mutex
	changeHandlers = map[string]ChangeHandler{}
)

// OnChange registers a handler that runs whenever the configuration file is
// reloaded.
func OnChange(name string, handler ChangeHandler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()

	log.WithField("handler", name).Debug("added change handler")
	if _, exists := changeHandlers[name]; exists {
		log.WithField("handler", name).Warn("config change handler reassigned")
	}
	changeHandlers[name] = handler
}

func changed() {
	handlersMu.Lock()
	defer handlersMu.Unlock()

	for name, handler := range changeHandlers {
		if err := handler(); err != nil {
			log.WithError(err).
				WithField("handler", name).
				Error("config handler failed")
		}
	}
}

var flagsOnce = sync.Once{}
var defLogConfig = LogConfig{
	Level:  "info",
	JSON:   true,
	Text:   false,
	Output: os.Stdout,
}

func AddStringSlice(name string, defVal []string, help string) {
	flag.StringSlice(name, defVal, help)
}

func AddString(name, defVal, help string) {
	flag.String(name, defVal, help)
}

func AddFloat64(name string, defVal float64, help string) {
	flag.Float64(name, defVal, help)
}

func AddInt(name string, defVal int, help string) {
	flag.Int(name, defVal, help)
}

func AddInt64(name string, defVal int64, help string) {
	flag.Int64(name, defVal, help)
}

func AddBool(name string, defVal bool, help string) {
	flag.Bool(name, defVal, help)
}

func AddDuration(name string, defVal time.Duration, help string) {
	flag.Duration(name, defVal, help)
}

func addVars() {
	AddString("log-level", defLogConfig.Level, "show logs at or above this level; choices: trace, debug, info, warn, error, fatal, panic")
	AddBool("log-text", false, "log in text format")
	AddBool("log-json", true, "log in json format")
	AddString("env-file", DefaultEnvFile, "dotenv file loaded into the environment before anything else")
}

//dynConfigFileName builds a configuration file name from dynamic components;
// empty components are dropped
type dynConfigFileName []string

//String joins the non-empty components with '.'
func (c dynConfigFileName) String() string {
	var r dynConfigFileName
	for _, str := range c {
		if str != "" {
			r = append(r, str)
		}
	}
	return strings.Join(r, ".")
}

func parse(name string) error {
	var (
		configFileName  string
		configFilePath  string
		configEnvPrefix string
		env             string
	)

	if len(name) == 0 {
		name = "stockboard"
	}

	flagsOnce.Do(func() {
		flag.StringVar(&configEnvPrefix, "config-env-prefix", name, "env var name prefix")
		flag.StringVar(&configFileName, "config-name", "", "configuration file name (default config[.ENV])")
		flag.StringVar(&configFilePath, "config-path", ".", "directory containing configuration file")

		addVars()
	})

	flag.Parse()

	// the dotenv file may define ENV itself, so it is read before the
	// config file name is settled
	envFile, _ := flag.CommandLine.GetString("env-file")
	loadEnvFile(envFile)

	env = os.Getenv(fmt.Sprintf("%s_ENV", strings.ToUpper(name)))
	if len(env) == 0 {
		env = os.Getenv("ENV")
	}
	if configFileName == "" {
		configFileName = dynConfigFileName{"config", env}.String()
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.SetEnvPrefix(configEnvPrefix)
	viper.AutomaticEnv()
	bindLegacyEnv()

	viper.SetConfigName(configFileName)
	viper.AddConfigPath(fmt.Sprintf("/etc/%s/", name))
	viper.AddConfigPath(fmt.Sprintf("$HOME/.%s", name))
	viper.AddConfigPath(configFilePath)

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.WithField("name", configFileName).
				Info("config file not found; using flags and environment")
			err = nil
		} else {
			log.WithError(err).
				WithField("file", viper.ConfigFileUsed()).
				Fatal("couldn't read config file")
		}
	}

	viper.BindPFlags(flag.CommandLine)
	setLogger()

	OnChange("log", setLogger)

	// Flags given on the command line win over anything the file changes to.
	if viper.ConfigFileUsed() != "" {
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			log.WithField("file", e.Name).Warn("config file changed")
			changed()
		})
	}

	changed()
	return err
}

func Load(name string) error {
	defLogConfig.Set()
	return parse(name)
}

//LoadDirect loads a configuration from a byte array and triggers any
//subscribed callbacks. It does not merge the configuration with the
//environment or command line variables; it is mostly useful for testing.
func LoadDirect(name string, yaml []byte) error {
	defLogConfig.Set()
	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(bytes.NewBuffer(yaml)); err != nil {
		log.WithError(err).Info("failed to load config")
		return err
	}
	setLogger()
	changed()
	return nil
}
