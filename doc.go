// Package confz provides an embeddable registry of configuration options.
//
// A host declares the keys it understands on a Rules registry, each with an
// optional default and an optional Validator. Values are then read and
// written through a Configuration, which rejects unknown keys and values
// the validator refuses, and falls back to the default for keys that were
// never set.
//
// # Rules
//
//	cfg := confz.New()
//	cfg.Rules().Has("host", confz.Default("localhost"))
//	cfg.Rules().Has("port", confz.Default(8080), confz.Validate(confz.OfType[int]()))
//	cfg.Rules().Has("api_key")
//
// Registering a key twice replaces its rule; the key keeps its original
// position in snapshots.
//
// # Reading and Writing
//
//	if err := cfg.Set("port", 9090); err != nil {
//	    // *confz.InvalidValueError or *confz.UnknownKeyError
//	}
//	port, _ := cfg.Get("port")      // 9090
//	_ = cfg.Unset("port")           // back to 8080
//	cfg.Reset()                     // every key back to its default
//	snapshot := cfg.Current()       // every key, registration order
//
// An explicit nil is a value: after Set("host", nil), Get("host") returns
// nil rather than the default.
//
// Merge and Replace apply many values at once. All values are checked
// before any is stored.
//
// # Typed Accessors
//
//	port := confz.MustBind[int](cfg, "port")
//	_ = port.Set(443)
//	p, err := port.Get()
//
// # Errors
//
// Unknown keys produce *UnknownKeyError (errors.Is ErrUnknownKey). Rejected
// values produce *InvalidValueError (errors.Is ErrInvalidValue), which
// unwraps to the validator's error.
//
// # Concurrency
//
// Configuration is not safe for concurrent use. The reload package wraps a
// Configuration with a lock for hosts that update it from a watcher.
//
// # Related Packages
//
//   - validate: go-playground/validator tags as Validators
//   - load: one-shot loading from YAML files, environment and maps
//   - reload: watcher-driven reloading with rollback on invalid documents
package confz
