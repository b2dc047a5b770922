// Package config loads ticktime's runtime configuration with viper.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-i2p/logger"
	"github.com/spf13/viper"
)

var (
	// CfgFile is an explicit config file path, set from the command line.
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const TICKTIME_BASE_DIR = ".ticktime"

// NTPConfig controls the background clock synchroniser.
type NTPConfig struct {
	Enabled       bool
	Servers       []string
	QueryInterval time.Duration
	Concurring    int
}

// SkewConfig controls timestamp validation tolerances.
type SkewConfig struct {
	MaxSkew time.Duration
}

// Config is the full runtime configuration.
type Config struct {
	NTP  *NTPConfig
	Skew *SkewConfig
}

// DefaultNTPConfig mirrors the public pool defaults used when no config
// file is present.
var DefaultNTPConfig = NTPConfig{
	Enabled:       true,
	Servers:       []string{"0.pool.ntp.org", "1.pool.ntp.org", "2.pool.ntp.org"},
	QueryInterval: 11 * time.Minute,
	Concurring:    3,
}

// DefaultSkewConfig is the 60-minute window most subsystems use.
var DefaultSkewConfig = SkewConfig{
	MaxSkew: 60 * time.Minute,
}

// InitConfig wires viper to the config file (explicit via CfgFile, or the
// default location), creating a default file when none exists.
func InitConfig() {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(BuildConfigDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	handleConfigFile()
}

func setDefaults() {
	viper.SetDefault("ntp.enabled", DefaultNTPConfig.Enabled)
	viper.SetDefault("ntp.servers", DefaultNTPConfig.Servers)
	viper.SetDefault("ntp.query_interval", DefaultNTPConfig.QueryInterval)
	viper.SetDefault("ntp.concurring", DefaultNTPConfig.Concurring)
	viper.SetDefault("skew.max_skew", DefaultSkewConfig.MaxSkew)
}

// NewConfigFromViper builds a Config from current viper settings.
func NewConfigFromViper() *Config {
	return &Config{
		NTP: &NTPConfig{
			Enabled:       viper.GetBool("ntp.enabled"),
			Servers:       viper.GetStringSlice("ntp.servers"),
			QueryInterval: viper.GetDuration("ntp.query_interval"),
			Concurring:    viper.GetInt("ntp.concurring"),
		},
		Skew: &SkewConfig{
			MaxSkew: viper.GetDuration("skew.max_skew"),
		},
	}
}

func createDefaultConfig(defaultConfigDir string) {
	defaultConfigFile := filepath.Join(defaultConfigDir, "config.yaml")
	if err := os.MkdirAll(defaultConfigDir, 0o755); err != nil {
		log.Fatalf("Could not create config directory: %s", err)
	}

	if err := viper.WriteConfigAs(defaultConfigFile); err != nil {
		log.Fatalf("Could not write default config file: %s", err)
	}

	log.Debugf("Created default configuration at: %s", defaultConfigFile)
}

func handleConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if CfgFile != "" {
				log.Fatalf("Config file %s is not found: %s", CfgFile, err)
			} else {
				createDefaultConfig(BuildConfigDirPath())
			}
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	} else {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

// BuildConfigDirPath returns the default configuration directory.
func BuildConfigDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %s", err)
		home = "."
	}
	return filepath.Join(home, TICKTIME_BASE_DIR)
}
