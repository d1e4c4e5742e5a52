// Package reload keeps a confz.Configuration in sync with an external
// source.
//
// A Reloader watches a source for changes, decodes each document into a
// flat key/value map and applies it to the Configuration in one atomic
// step. A document with an unknown key or a rejected value is discarded
// as a whole and the previous values stay in effect:
//
//	Source → Decode → Merge (or Replace) → Configuration
//
// # State Machine
//
//   - Loading: no document processed yet
//   - Healthy: last document applied
//   - Degraded: last document rejected, earlier values still active
//   - Empty: every document so far was rejected
//
// # Sources
//
// FileWatcher follows a file on disk, ChannelWatcher takes documents the
// host produces itself, and the redis subpackage follows a Redis key.
// Documents are JSON by default; CodecFor picks YAML or JSON from a file
// name.
//
// # Concurrency
//
// The Reloader applies documents from its own goroutine, so it guards the
// Configuration with a lock. While a Reloader is running, read and write
// the Configuration through Reloader.Get, Reloader.Current and
// Reloader.Update.
//
// # Example
//
//	cfg := confz.New()
//	cfg.Rules().Has("port", confz.Default(8080), confz.Validate(validate.Tag("min=1,max=65535")))
//
//	r := reload.New(cfg, reload.NewFileWatcher(path)).
//	    Codec(reload.CodecFor(path)).
//	    Debounce(200 * time.Millisecond)
//
//	if err := r.Start(ctx); err != nil {
//	    log.Printf("initial config rejected: %v", err)
//	}
//
//	port, _ := r.Get("port")
package reload
