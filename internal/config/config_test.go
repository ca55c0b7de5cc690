package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://sheets.local/api/v1/abc/")
	t.Setenv("BACKEND_TIMEOUT", "30")
	t.Setenv("ID_SCHEME", "SNOWFLAKE")

	cfg := Load()

	assert.Equal(t, "http://sheets.local/api/v1/abc", cfg.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.BackendTimeout)
	assert.Equal(t, IDSchemeSnowflake, cfg.IDScheme)
	assert.Equal(t, int64(5<<20), cfg.MaxImageBytes)
}

func TestGetenvDurationFallsBackOnGarbage(t *testing.T) {
	t.Setenv("VITRINE_TEST_DURATION", "soon")
	assert.Equal(t, time.Minute, getenvDuration("VITRINE_TEST_DURATION", time.Minute))

	t.Setenv("VITRINE_TEST_DURATION", "250ms")
	assert.Equal(t, 250*time.Millisecond, getenvDuration("VITRINE_TEST_DURATION", time.Minute))
}

func TestPanelConfigDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	holder, err := NewPanelConfigHolder(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, DefaultPanelConfig(), holder.Get())
}

func TestPanelConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	content := "panel:\n  title: Loja Central\n  currencyPrefix: \"US$\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "panel.yml"), []byte(content), 0o600))

	holder, err := NewPanelConfigHolder(zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, "Loja Central", cfg.Title)
	assert.Equal(t, "US$", cfg.CurrencyPrefix)
}

func TestNilHolderReturnsDefaults(t *testing.T) {
	var holder *PanelConfigHolder
	assert.Equal(t, DefaultPanelConfig(), holder.Get())
}
