package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/Austionian/gathering-surf/internal/domain/readthrough"
)

// ValkeyStore keeps cached payloads in a Valkey-compatible server.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey. Keys are namespaced by prefix.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "surf"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get returns the value under key; a missing key is not an error.
func (s *ValkeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	cmd := s.client.B().Get().Key(s.key(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return payload, true, nil
}

// Set writes value with a TTL rounded up to whole seconds.
func (s *ValkeyStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	builder := s.client.B().Set().Key(s.key(key)).Value(value)
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

// Ping checks connectivity.
func (s *ValkeyStore) Ping(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Ping().Build()).Error()
}

func (s *ValkeyStore) key(k string) string {
	return fmt.Sprintf("%s:%s", s.prefix, k)
}

var _ readthrough.Store = (*ValkeyStore)(nil)
