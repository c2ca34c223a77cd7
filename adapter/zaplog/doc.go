// Package zaplog adapts go.uber.org/zap to the prefstore.Logger
// facade.
//
//	logger, _ := zap.NewProduction()
//	store, err := prefstore.New(prefstore.Options{
//	    Defaults: defaultsJSON,
//	    Storage:  storage,
//	    Logger:   zaplog.New(logger),
//	})
package zaplog
