package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickmany/internal/domain"
	"pickmany/internal/eventbus"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cs := &configService{bus: eventbus.NullBus{}, filePath: filepath.Join(t.TempDir(), "nope.toml")}

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cs := NewConfigService()

	cfg := DefaultConfig()
	cfg.Prompt.PageSize = 12
	cfg.Prompt.VimMode = true
	cfg.Prompt.Max = 3
	cfg.UI.Checked = "(*)"
	require.NoError(t, cs.SaveToPath(cfg, path))

	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[prompt]\nfuzzy = true\n"), 0644))

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)
	assert.True(t, cfg.Prompt.Fuzzy)
	assert.Equal(t, 7, cfg.Prompt.PageSize)
	assert.Equal(t, "[ ]", cfg.UI.Unchecked)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PICKMANY_PROMPT_PAGE_SIZE", "3")
	t.Setenv("PICKMANY_UI_CURSOR", "*")
	cs := &configService{bus: eventbus.NullBus{}, filePath: filepath.Join(t.TempDir(), "none.toml")}

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Prompt.PageSize)
	assert.Equal(t, "*", cfg.UI.Cursor)
}

func TestLoadFromPathMissing(t *testing.T) {
	_, err := NewConfigService().LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "config file not found")
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[prompt]\npage_size = 0\n"), 0644))

	_, err := NewConfigService().LoadFromPath(path)
	var cfgErr *domain.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Reason, "page_size")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[prompt\n"), 0644))

	_, err := NewConfigService().LoadFromPath(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidateBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Prompt.Min = 4
	cfg.Prompt.Max = 2
	assert.Error(t, cfg.Validate())

	cfg.Prompt.Max = 0
	assert.NoError(t, cfg.Validate(), "max 0 is unbounded")
}

func TestLoadPublishesEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, NewConfigService().SaveToPath(DefaultConfig(), path))

	bus := eventbus.New()
	var got []string
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		got = append(got, e.(domain.ConfigLoadedEvent).Path)
	})

	_, err := NewConfigServiceWithBus(bus).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, got)
}
