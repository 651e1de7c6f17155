// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors_origins", "host_cors_origins")

	v.BindEnv("upload.max_size", "upload_max_size")
	v.BindEnv("upload.dir", "upload_dir")

	v.BindEnv("blob.endpoint", "blob_endpoint")
	v.BindEnv("blob.region", "blob_region")
	v.BindEnv("blob.access_key_id", "blob_access_key_id")
	v.BindEnv("blob.secret_access_key", "blob_secret_access_key")
	v.BindEnv("blob.bucket", "blob_bucket")
	v.BindEnv("blob.public_base_url", "blob_public_base_url")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 5000)
	v.SetDefault("host.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("upload.max_size", 10)
	v.SetDefault("upload.dir", "./uploads")

	v.SetDefault("blob.region", "auto")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetString("blob.access_key_id") == "" {
		return errors.New("blob access key id can't be empty")
	}
	if v.GetString("blob.secret_access_key") == "" {
		return errors.New("blob secret access key can't be empty")
	}
	if v.GetString("blob.bucket") == "" {
		return errors.New("blob bucket can't be empty")
	}
	if v.GetString("blob.public_base_url") == "" {
		return errors.New("blob public base url can't be empty")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
