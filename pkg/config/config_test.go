package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	_ "liyu1981.xyz/consumable-wear-service/pkg/testing"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o644))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, wear.DefaultThresholds, cfg.Wear.Thresholds)
	assert.Equal(t, wear.DefaultLifeLimit, cfg.Wear.DefaultLifeLimit)
	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.Equal(t, 2*time.Second, cfg.Retry.Delay)
	assert.Equal(t, "file", cfg.DB.Type)
	assert.True(t, cfg.Notify.Log)
	assert.False(t, cfg.Notify.SMTP.Enabled)
	assert.Equal(t, 465, cfg.Notify.SMTP.Port)
}

func TestLoadRepoConfig(t *testing.T) {
	// pkg/testing moved us to the repo root
	cfg, err := Load("configs")
	require.NoError(t, err)
	assert.Equal(t, wear.DefaultThresholds, cfg.Wear.Thresholds)
	assert.Equal(t, ":50051", cfg.Server.GRPCHostPort)
}

func TestLoadFromFile(t *testing.T) {
	dir := writeConfig(t, `
wear:
  default_life_limit: 500
  thresholds:
    imminent_failure:
      hours: 0.5
      inclusive: true
    critical:
      hours: 24
      inclusive: true
retry:
  attempts: 5
  delay: 10ms
notify:
  smtp:
    enabled: true
    from: ops@example.com
    to: [a@example.com, b@example.com]
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 500.0, cfg.Wear.DefaultLifeLimit)
	assert.Equal(t, wear.Bound{Hours: 0.5, Inclusive: true}, cfg.Wear.Thresholds.ImminentFailure)
	assert.Equal(t, wear.Bound{Hours: 24, Inclusive: true}, cfg.Wear.Thresholds.Critical)
	assert.Equal(t, wear.DefaultThresholds.Warning, cfg.Wear.Thresholds.Warning)
	assert.Equal(t, 5, cfg.Retry.Attempts)
	assert.Equal(t, 10*time.Millisecond, cfg.Retry.Delay)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Notify.SMTP.To)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WEAR_RETRY_ATTEMPTS", "7")
	t.Setenv(common.EnvKeyWearHttpHostPort, ":9999")
	t.Setenv(common.EnvKeyWearDBType, "memory")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Retry.Attempts)
	assert.Equal(t, ":9999", cfg.Server.HTTPHostPort)
	assert.Equal(t, "memory", cfg.DB.Type)
}

func TestLoadRejectsBadThresholds(t *testing.T) {
	dir := writeConfig(t, `
wear:
  thresholds:
    critical:
      hours: 500
`)
	_, err := Load(dir)
	assert.ErrorIs(t, err, wear.ErrInvalidThresholds)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "wear:\n  default_life_limit: -1\n"))
	assert.ErrorIs(t, err, wear.ErrInvalidLifeLimit)

	_, err = Load(writeConfig(t, "retry:\n  attempts: 0\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "notify:\n  smtp:\n    enabled: true\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "wear: [broken"))
	assert.Error(t, err)
}
