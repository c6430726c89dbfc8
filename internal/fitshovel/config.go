// Package fitshovel is the ingest daemon that watches a directory for FIT
// files, decodes each one and forwards the decoded records onward over
// STOMP. It supplements spec.md's decoder with the "something else" its own
// scope note assumes exists — a file-watching, queueing, forwarding front
// end — built in the shape of opensciencegrid's xrootd-monitoring-shoveler,
// whose whole job is exactly that pipeline for a different wire format.
package fitshovel

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the daemon's runtime configuration, read from a YAML file with
// environment-variable overrides, following
// opensciencegrid-xrootd-monitoring-shoveler/config.go's viper conventions.
type Config struct {
	WatchDir    string
	FilePattern string

	StompURL      string
	StompHost     string
	StompTopic    string
	StompUser     string
	StompPassword string
	StompTLS      bool

	TokenPrivateKeyFile string
	TokenHours          int

	QueueDirectory string

	MetricsEnable bool
	MetricsPort   int

	Debug bool
}

// ReadConfig loads Config from a "config.yaml" found on viper's search path,
// then applies FITSHOVEL_-prefixed environment overrides.
func (c *Config) ReadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/fitshovel/")
	viper.AddConfigPath("$HOME/.fitshovel")
	viper.AddConfigPath(".")
	viper.AddConfigPath("config/")

	viper.SetEnvPrefix("fitshovel")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("watch.dir", "/var/spool/fitshovel/incoming")
	viper.SetDefault("watch.pattern", "*.fit")
	viper.SetDefault("stomp.topic", "fit-records")
	viper.SetDefault("queue_directory", "/tmp/fitshovel-queue")
	viper.SetDefault("metrics.enable", true)
	viper.SetDefault("metrics.port", 8010)
	viper.SetDefault("token.hours", 1)

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("fitshovel: reading config: %w", err)
		}
		logrus.Warnln("No config file found, using defaults and environment")
	}

	c.WatchDir = viper.GetString("watch.dir")
	c.FilePattern = viper.GetString("watch.pattern")

	c.StompURL = viper.GetString("stomp.url")
	c.StompHost = viper.GetString("stomp.host")
	c.StompTopic = viper.GetString("stomp.topic")
	c.StompUser = viper.GetString("stomp.user")
	c.StompPassword = viper.GetString("stomp.password")
	c.StompTLS = viper.GetBool("stomp.tls")

	c.TokenPrivateKeyFile = viper.GetString("token.private_key_file")
	c.TokenHours = viper.GetInt("token.hours")

	c.QueueDirectory = viper.GetString("queue_directory")

	c.MetricsEnable = viper.GetBool("metrics.enable")
	c.MetricsPort = viper.GetInt("metrics.port")

	c.Debug = viper.GetBool("debug")

	return nil
}
