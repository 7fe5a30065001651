package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv isolates a test from variables set in the calling shell
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "ENV", "NODE_ENV", "HASHER_SERVER_PORT", "HASHER_ENV", "HASHER_HASH_CHUNK_SIZE"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, ":1234", cfg.Addr())
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"md4", "sha1"}, cfg.Hash.Algorithms)
	assert.Equal(t, 64*1024, cfg.Hash.ChunkSize)
	assert.Equal(t, "error.log", cfg.Log.ErrorFile)
	assert.Equal(t, "combined.log", cfg.Log.CombinedFile)
	assert.Equal(t, StorageLocal, cfg.Storage.Type)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	p := writeConfig(t, `
env: production
server:
  port: 8080
hash:
  algorithms: [md5, sha256]
  chunk_size: 4096
storage:
  type: seaweedfs
  seaweedfs:
    filer_url: http://seaweedfs-filer:8888
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"md5", "sha256"}, cfg.Hash.Algorithms)
	assert.Equal(t, 4096, cfg.Hash.ChunkSize)
	assert.Equal(t, StorageSeaweedFS, cfg.Storage.Type)
	assert.Equal(t, "http://seaweedfs-filer:8888", cfg.Storage.SeaweedFS.FilerURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("PORT", "4321")
	t.Setenv("ENV", "Production")
	t.Setenv("HASHER_HASH_CHUNK_SIZE", "1024")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4321, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 1024, cfg.Hash.ChunkSize)
}

func TestLoad_OtherEnvIsDevelopment(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("ENV", "staging")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Env)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_NodeEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("NODE_ENV", "production")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_PrefixedPortWins(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("PORT", "4321")
	t.Setenv("HASHER_SERVER_PORT", "5555")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5555, cfg.Server.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
	}{
		{"port", "server:\n  port: 70000\n"},
		{"chunk size", "hash:\n  chunk_size: 0\n"},
		{"algorithms", "hash:\n  algorithms: []\n"},
		{"storage type", "storage:\n  type: s3\n"},
		{"filer url", "storage:\n  type: seaweedfs\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

// chdir changes the working directory for the test and restores it on
// cleanup (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
