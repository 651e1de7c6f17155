package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func stubArgs(t *testing.T) {
	t.Helper()
	old := os.Args
	os.Args = []string{"chat-api"}
	t.Cleanup(func() { os.Args = old })
}

func TestSetup_FailsWithoutBlobCredentials(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	stubArgs(t)

	require.NoError(t, os.WriteFile("config.toml", []byte("[app]\nlog_level = \"info\"\n"), 0o644))

	err := Setup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blob")
}

func TestSetup_DefaultsAndSizeShift(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	stubArgs(t)

	toml := `[blob]
access_key_id = "id"
secret_access_key = "secret"
bucket = "chat-files"
public_base_url = "https://files.example.com"
`
	require.NoError(t, os.WriteFile("config.toml", []byte(toml), 0o644))

	require.NoError(t, Setup())

	assert.Equal(t, 5000, viper.GetInt("host.port"))
	assert.Equal(t, "./uploads", viper.GetString("upload.dir"))
	assert.Equal(t, "auto", viper.GetString("blob.region"))

	// max_size is configured in MiB and stored in bytes
	assert.Equal(t, int64(10<<20), viper.GetInt64("upload.max_size"))
}
