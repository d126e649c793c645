package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("SHOPTAG_TEST_VALUE", "from-env")

	// Flag wins over env.
	assert.Equal(t, "from-flag", getConfigValue("from-flag", "SHOPTAG_TEST_VALUE", "default"))
	// Env wins over default.
	assert.Equal(t, "from-env", getConfigValue("", "SHOPTAG_TEST_VALUE", "default"))
	// Default when nothing else set.
	assert.Equal(t, "default", getConfigValue("", "SHOPTAG_TEST_UNSET", "default"))
}

func TestParseDurationValue(t *testing.T) {
	d, err := parseDurationValue("", "SHOPTAG_TEST_DURATION_UNSET", "45s")
	require.NoError(t, err)
	assert.Equal(t, "45s", d.String())

	t.Setenv("SHOPTAG_TEST_DURATION", "2m")
	d, err = parseDurationValue("", "SHOPTAG_TEST_DURATION", "45s")
	require.NoError(t, err)
	assert.Equal(t, "2m0s", d.String())

	_, err = parseDurationValue("not-a-duration", "SHOPTAG_TEST_DURATION", "45s")
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")

	content := "# comment line\nSHOPTAG_ENVFILE_A=alpha\nSHOPTAG_ENVFILE_B=\"quoted\"\nmalformed line\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0644))

	t.Setenv("SHOPTAG_ENVFILE_A", "preexisting")
	defer os.Unsetenv("SHOPTAG_ENVFILE_B")

	require.NoError(t, loadEnvFile(envPath))

	// Existing env vars are not overwritten.
	assert.Equal(t, "preexisting", os.Getenv("SHOPTAG_ENVFILE_A"))
	// Quotes are stripped.
	assert.Equal(t, "quoted", os.Getenv("SHOPTAG_ENVFILE_B"))
}

func TestConfigValidate(t *testing.T) {
	valid := &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Storage: StorageConfig{DataPath: "/tmp/shoptag"},
		I18n:    I18nConfig{DefaultLanguage: "en"},
	}
	assert.NoError(t, valid.Validate())

	badEnv := *valid
	badEnv.App.Environment = "qa"
	assert.Error(t, badEnv.Validate())

	badLevel := *valid
	badLevel.Logger.Level = "verbose"
	assert.Error(t, badLevel.Validate())

	noLang := *valid
	noLang.I18n.DefaultLanguage = ""
	assert.Error(t, noLang.Validate())
}

func TestStorageConfigPaths(t *testing.T) {
	s := StorageConfig{DataPath: "/var/lib/shoptag"}
	assert.Equal(t, filepath.Join("/var/lib/shoptag", "db"), s.DBPath())
	assert.Equal(t, filepath.Join("/var/lib/shoptag", "media"), s.MediaPath())
}
