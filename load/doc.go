// Package load fills a confz.Configuration from YAML files, environment
// variables and maps.
//
// Sources are merged in the order they are loaded, later sources winning:
//
//	l := load.New(load.WithFile("/etc/myapp/config.yaml"), load.WithEnvPrefix("MYAPP_"))
//	if err := l.Load(); err != nil {
//	    return err
//	}
//	if err := l.Apply(ctx, cfg); err != nil {
//	    return err // unknown key or rejected value, nothing applied
//	}
//
// Environment variables map to keys by dropping the prefix and lowercasing:
// MYAPP_API_KEY becomes api_key. Their values are always strings; no
// coercion is performed, so keys fed from the environment need validators
// that accept strings. Nested YAML mappings flatten to dotted keys
// (server.port).
package load
