package zaplog

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mapoio/prefstore/prefstore"
)

// Module provides the zap-backed prefstore.Logger to the fx container.
// The application supplies the *zap.Logger.
//
// Example usage:
//
//	fx.New(
//	    fx.Provide(zap.NewProduction),
//	    zaplog.Module,
//	    prefstore.Module,
//	)
var Module = fx.Module("prefstore.zaplog",
	fx.Provide(New),
)

// NewDevelopment builds a prefstore.Logger on a zap development
// logger, for tools and tests that want readable console output.
func NewDevelopment() (prefstore.Logger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return New(logger), nil
}
