package prefstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestModule(t *testing.T) {
	var cfg Config
	var store *Store

	app := fx.New(
		fx.NopLogger,
		fx.Supply(Options{Defaults: `{"abra":42}`}),
		Module,
		fx.Populate(&cfg, &store),
	)
	require.NoError(t, app.Err())

	assert.Equal(t, 42, cfg.GetInt("abra"))
	assert.Same(t, store, cfg, "Config resolves to the provided Store")
}

func TestModuleFailsOnInvalidDefaults(t *testing.T) {
	var cfg Config
	app := fx.New(
		fx.NopLogger,
		fx.Supply(Options{Defaults: `{"abra":42`}),
		Module,
		fx.Populate(&cfg),
	)
	assert.Error(t, app.Err())
}
