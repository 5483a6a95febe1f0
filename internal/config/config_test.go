package config

import (
	"os"
	"testing"

	"chatpoker-server/internal/util"
	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	defer util.SetEnv("CPK_CONFIG_FILE", "testdata/config.yaml")()
	defer util.SetEnv("CPK_JWT_PRIVATE_KEY", "private2.key")()
	defer util.SetEnv("CPK_GAME_MAX_SEATS", "6")()
	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("postgres://poker@db:5432/poker?sslmode=disable", cfg.PGDSN)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal("debug", cfg.Log.Level)
	a.Equal("json", cfg.Log.Format)
	a.Equal(50, cfg.Game.BaseBet)
	a.Equal(6, cfg.Game.MaxSeats)
	a.Equal(1000, cfg.Game.StartBalance, "defaults fill what the file leaves out")
	a.Equal("CAACAgIAAxkBAAEBwin", cfg.Stickers.Win)
	a.Equal("", cfg.Stickers.GameOver)

	// ensure that it's only loaded once
	_ = os.Setenv("CPK_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestDefaults(t *testing.T) {
	defer util.SetEnv("CPK_CONFIG_FILE", "testdata/missing.yaml")()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, DefaultConfig().Game, cfg.Game)
	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_invalidEnv(t *testing.T) {
	defer util.SetEnv("CPK_CONFIG_FILE", "testdata/missing.yaml")()
	defer util.SetEnv("CPK_GAME_BASE_BET", "lots")()

	assert.Error(t, Load())
}
