package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestDefaults(t *testing.T) {
	assert := assert.New(t)
	resetViper(t)

	setDefaults()
	cfg := NewConfigFromViper()

	assert.True(cfg.NTP.Enabled)
	assert.Equal(DefaultNTPConfig.Servers, cfg.NTP.Servers)
	assert.Equal(11*time.Minute, cfg.NTP.QueryInterval)
	assert.Equal(3, cfg.NTP.Concurring)
	assert.Equal(60*time.Minute, cfg.Skew.MaxSkew)
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	assert := assert.New(t)
	resetViper(t)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := []byte("ntp:\n  enabled: false\n  query_interval: 30m\n  servers:\n    - ntp.example.org\nskew:\n  max_skew: 5m\n")
	assert.NoError(os.WriteFile(cfgPath, body, 0o644))

	CfgFile = cfgPath
	t.Cleanup(func() { CfgFile = "" })

	InitConfig()
	cfg := NewConfigFromViper()

	assert.False(cfg.NTP.Enabled)
	assert.Equal(30*time.Minute, cfg.NTP.QueryInterval)
	assert.Equal([]string{"ntp.example.org"}, cfg.NTP.Servers)
	assert.Equal(5*time.Minute, cfg.Skew.MaxSkew)
	// Values the file omits fall back to defaults.
	assert.Equal(DefaultNTPConfig.Concurring, cfg.NTP.Concurring)
}

func TestBuildConfigDirPath(t *testing.T) {
	assert := assert.New(t)

	path := BuildConfigDirPath()
	assert.Equal(TICKTIME_BASE_DIR, filepath.Base(path))
}
