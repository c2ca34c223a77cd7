package prefstore

import "go.uber.org/fx"

// Module provides the store to the fx dependency injection container.
// The application supplies an Options value; the module builds the
// Store from it and exposes it under the Config interface as well.
//
// Example usage:
//
//	fx.New(
//	    fx.Supply(prefstore.Options{
//	        Defaults: defaultsJSON,
//	        Storage:  storage,
//	    }),
//	    prefstore.Module,
//	    fx.Invoke(func(cfg prefstore.Config) {
//	        // Use configuration
//	    }),
//	)
var Module = fx.Module("prefstore",
	fx.Provide(New),
	fx.Provide(func(s *Store) Config { return s }),
)
