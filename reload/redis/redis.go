// Package redis feeds a reload.Reloader from Redis.
//
// Two layouts are supported. By default the key holds a whole document
// (JSON or YAML, decoded by the Reloader's Codec). With AsHash the key is
// a hash whose fields are configuration keys; its contents are emitted as
// a JSON object of string values, so pair it with reload.JSONCodec and
// string-typed rules.
//
// Changes arrive through keyspace notifications, which must be enabled:
//
//	CONFIG SET notify-keyspace-events KEA
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/zoobzio/confz/reload"
)

// Keyspace events that change the watched key, per layout.
var (
	stringEvents = map[string]bool{
		"set": true, "setex": true, "psetex": true, "setnx": true,
		"mset": true, "setrange": true, "append": true,
	}
	hashEvents = map[string]bool{
		"hset": true, "hsetnx": true, "hdel": true, "hincrby": true, "hincrbyfloat": true,
	}
	// removal events emit a blank document
	removeEvents = map[string]bool{
		"del": true, "expired": true, "evicted": true,
	}
)

// Watcher emits the configuration stored under one Redis key.
type Watcher struct {
	client *redis.Client
	key    string
	db     int
	hash   bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDatabase sets the database number used in the keyspace channel.
// It must match the client's database. Default: 0.
func WithDatabase(db int) Option {
	return func(w *Watcher) {
		w.db = db
	}
}

// AsHash reads the key as a hash of configuration keys.
func AsHash() Option {
	return func(w *Watcher) {
		w.hash = true
	}
}

// New creates a Watcher for key.
func New(client *redis.Client, key string, opts ...Option) *Watcher {
	w := &Watcher{client: client, key: key}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ reload.Watcher = (*Watcher)(nil)

// Watch subscribes to the key's keyspace channel, emits the current
// contents if the key exists, and emits again after every change. Deleting
// or expiring the key emits a blank document. A failure to read the
// current contents, such as a key of the wrong type, is returned here.
func (w *Watcher) Watch(ctx context.Context) (<-chan []byte, error) {
	pubsub := w.client.Subscribe(ctx, w.channel())
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", w.channel(), err)
	}

	initial, err := w.read(ctx)
	exists := err == nil
	if err != nil && !errors.Is(err, redis.Nil) {
		pubsub.Close()
		return nil, fmt.Errorf("failed to read %s: %w", w.key, err)
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer pubsub.Close()

		if exists && !emit(ctx, out, initial) {
			return
		}

		msgs := pubsub.Channel()
		for {
			var msg *redis.Message
			var ok bool
			select {
			case <-ctx.Done():
				return
			case msg, ok = <-msgs:
			}
			if !ok {
				return
			}

			var doc []byte
			switch {
			case removeEvents[msg.Payload]:
				doc = []byte{}
			case w.changedBy(msg.Payload):
				current, err := w.read(ctx)
				if err != nil {
					continue
				}
				doc = current
			default:
				continue
			}
			if !emit(ctx, out, doc) {
				return
			}
		}
	}()

	return out, nil
}

func (w *Watcher) changedBy(event string) bool {
	if w.hash {
		return hashEvents[event]
	}
	return stringEvents[event]
}

// read returns the key's contents as a document, or redis.Nil if the key
// does not exist.
func (w *Watcher) read(ctx context.Context) ([]byte, error) {
	if !w.hash {
		return w.client.Get(ctx, w.key).Bytes()
	}
	fields, err := w.client.HGetAll(ctx, w.key).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, redis.Nil
	}
	return json.Marshal(fields)
}

func (w *Watcher) channel() string {
	return fmt.Sprintf("__keyspace@%d__:%s", w.db, w.key)
}

func emit(ctx context.Context, out chan<- []byte, doc []byte) bool {
	select {
	case out <- doc:
		return true
	case <-ctx.Done():
		return false
	}
}
