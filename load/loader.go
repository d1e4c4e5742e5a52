package load

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/confz"
)

// DefaultEnvPrefix is the environment variable prefix used when none is set.
const DefaultEnvPrefix = "CONFZ_"

// Loader collects values from several sources before applying them.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithFile sets the YAML file read by Load.
func WithFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the configured file, if any, and then the environment.
func (l *Loader) Load() error {
	if l.filePath != "" {
		if err := l.LoadFile(l.filePath); err != nil {
			return err
		}
	}
	return l.LoadEnv()
}

// LoadFile merges a YAML file.
func (l *Loader) LoadFile(path string) error {
	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}
	return nil
}

// LoadEnv merges environment variables carrying the prefix.
func (l *Loader) LoadEnv() error {
	prefix := l.envPrefix
	transform := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	}
	if err := l.k.Load(env.Provider(prefix, ".", transform), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// LoadMap merges values from m.
func (l *Loader) LoadMap(m map[string]any) error {
	if err := l.k.Load(mapProvider(m), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// Values returns everything loaded so far as flat keys.
func (l *Loader) Values() map[string]any {
	return l.k.All()
}

// Apply merges the loaded values into cfg. Either every value is applied
// or, on the first unknown key or rejected value, none are.
func (l *Loader) Apply(ctx context.Context, cfg *confz.Configuration) error {
	values := l.Values()
	if err := cfg.Merge(values); err != nil {
		capitan.Emit(ctx, ApplyFailed,
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("apply loaded values: %w", err)
	}
	capitan.Emit(ctx, Applied,
		KeyCount.Field(len(values)),
	)
	return nil
}
