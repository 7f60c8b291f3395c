package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfig_Defaults(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := buildConfig(cmd, "shop")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, "shop", cfg.Database)
	assert.Empty(t, cfg.Password)
	assert.NotEmpty(t, cfg.User, "user defaults to the current OS user")
}

func TestBuildConfig_Flags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"-u", "alice", "-p", "s3cret", "-H", "db.example.com", "-P", "3307",
	}))

	cfg, err := buildConfig(cmd, "shop")
	require.NoError(t, err)

	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, "s3cret", cfg.Password)
	assert.Equal(t, "db.example.com", cfg.Host)
	assert.Equal(t, 3307, cfg.Port)
	assert.Equal(t, "shop", cfg.Database)
}

func TestBuildConfig_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
host: db.internal
port: 3310
user: reporter
password: hunter2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Run("file values apply when flags are unset", func(t *testing.T) {
		cmd := newRootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"-c", path}))

		cfg, err := buildConfig(cmd, "shop")
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.Host)
		assert.Equal(t, 3310, cfg.Port)
		assert.Equal(t, "reporter", cfg.User)
		assert.Equal(t, "hunter2", cfg.Password)
	})

	t.Run("explicit flags win over file values", func(t *testing.T) {
		cmd := newRootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"-c", path, "-H", "override.host", "-u", "bob"}))

		cfg, err := buildConfig(cmd, "shop")
		require.NoError(t, err)

		assert.Equal(t, "override.host", cfg.Host)
		assert.Equal(t, "bob", cfg.User)
		// Untouched settings still come from the file.
		assert.Equal(t, 3310, cfg.Port)
		assert.Equal(t, "hunter2", cfg.Password)
	})
}

func TestBuildConfig_MissingConfigFile(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}))

	_, err := buildConfig(cmd, "shop")
	assert.Error(t, err)
}

func TestRootCmd_RequiresSchemaArgument(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs(nil)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	assert.Error(t, err, "missing schema name must fail before any connection attempt")
}
