// Package config handles application configuration. Values come from the
// environment (optionally loaded from a .env file) layered over the defaults
// registered by the files in the top-level config directory.
package config

import (
	"os"

	"github.com/spf13/cast"
	viperlib "github.com/spf13/viper"
)

// viper instance, kept private so all reads go through the helpers below
var viper *viperlib.Viper

// ConfigFunc produces the default map for one configuration section
type ConfigFunc func() map[string]interface{}

// ConfigFuncs holds the registered sections, loaded by InitConfig
var ConfigFuncs map[string]ConfigFunc

func init() {
	viper = viperlib.New()

	// .env files hold KEY=VALUE pairs
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// read matching environment variables automatically
	viper.SetEnvPrefix("appenv")
	viper.AutomaticEnv()

	ConfigFuncs = make(map[string]ConfigFunc)
}

// InitConfig loads the .env file (suffixed when env is set, e.g. .env.testing)
// and then materializes every registered configuration section.
func InitConfig(env string) {
	loadEnv(env)
	loadConfig()
}

func loadEnv(envSuffix string) {
	envPath := ".env"
	if len(envSuffix) > 0 {
		filepath := ".env." + envSuffix
		if _, err := os.Stat(filepath); err == nil {
			envPath = filepath
		}
	}

	viper.SetConfigName(envPath)
	// a missing .env file is fine, the environment itself may be enough
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viperlib.ConfigFileNotFoundError); !ok {
			panic(err)
		}
	}
	viper.WatchConfig()
}

func loadConfig() {
	for name, fn := range ConfigFuncs {
		viper.Set(name, fn())
	}
}

// Env reads an environment variable with an optional default value.
func Env(envName string, defaultValue ...interface{}) interface{} {
	if len(defaultValue) > 0 {
		return internalGet(envName, defaultValue[0])
	}
	return internalGet(envName)
}

// Add registers a configuration section.
func Add(name string, configFn ConfigFunc) {
	ConfigFuncs[name] = configFn
}

func internalGet(path string, defaultValue ...interface{}) interface{} {
	if !viper.IsSet(path) || isEmpty(viper.Get(path)) {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return nil
	}
	return viper.Get(path)
}

func isEmpty(value interface{}) bool {
	switch v := value.(type) {
	case string:
		return v == ""
	case nil:
		return true
	}
	return false
}

// Get reads a config entry as string, dot notation supported (e.g. app.name)
func Get(path string, defaultValue ...interface{}) string {
	return GetString(path, defaultValue...)
}

// GetString reads a config entry as string
func GetString(path string, defaultValue ...interface{}) string {
	return cast.ToString(internalGet(path, defaultValue...))
}

// GetInt reads a config entry as int
func GetInt(path string, defaultValue ...interface{}) int {
	return cast.ToInt(internalGet(path, defaultValue...))
}

// GetFloat64 reads a config entry as float64
func GetFloat64(path string, defaultValue ...interface{}) float64 {
	return cast.ToFloat64(internalGet(path, defaultValue...))
}

// GetInt64 reads a config entry as int64
func GetInt64(path string, defaultValue ...interface{}) int64 {
	return cast.ToInt64(internalGet(path, defaultValue...))
}

// GetBool reads a config entry as bool
func GetBool(path string, defaultValue ...interface{}) bool {
	return cast.ToBool(internalGet(path, defaultValue...))
}

// GetStringMapString reads a config entry as map[string]string
func GetStringMapString(path string) map[string]string {
	return viper.GetStringMapString(path)
}
