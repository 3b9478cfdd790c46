package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	clear1 := setEnv("POKER_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := setEnv("POKER_GAME_ANTE", "100")
	defer clear2()

	a := assert.New(t)
	assert.NoError(t, Load())
	cfg := Instance()
	a.Equal(":9000", cfg.TCPAddress)
	a.Equal(4, cfg.Game.MaxPlayers)
	a.Equal(100, cfg.Game.Ante)
	a.Equal("debug", cfg.Log.Level)
	a.True(cfg.Log.DisableAccessLogs)

	// ensure that it's only loaded once
	_ = os.Setenv("POKER_GAME_ANTE", "200")
	// ensure we aren't using a pointer
	cfg.Game.Ante = -1
	cfg = Instance()
	a.Equal(100, cfg.Game.Ante)
}

func TestDefaults(t *testing.T) {
	clear := setEnv("POKER_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, ":8080", cfg.TCPAddress)
	assert.Equal(t, ":8081", cfg.HTTPAddress)
	assert.Equal(t, "five-card-draw", cfg.Game.Name)
	assert.Equal(t, 2, cfg.Game.MaxPlayers)
	assert.Equal(t, 25, cfg.Game.Ante)
	assert.Equal(t, "info", cfg.Log.Level)
}

func setEnv(key, val string) func() {
	orig := os.Getenv(key)
	_ = os.Setenv(key, val)
	return func() {
		if orig == "" {
			_ = os.Unsetenv(key)
		} else {
			_ = os.Setenv(key, orig)
		}
	}
}
