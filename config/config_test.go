package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWithNoFlags(t *testing.T) {
	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Bind(v, fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.NumWorkers)
	assert.Equal(t, 8, cfg.NumMCTasks)
	assert.Equal(t, "localhost:6379", cfg.QueueAddr)
}

func TestLoadOverridesFromFlag(t *testing.T) {
	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Bind(v, fs)
	require.NoError(t, fs.Parse([]string{"--num-mc-tasks=32", "--queue-addr=redis:6380"}))

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.NumMCTasks)
	assert.Equal(t, "redis:6380", cfg.QueueAddr)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "voxdock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_results: 50\n"), 0o644))

	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Bind(v, fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxResults)
}
