// Package redis provides a Store backed by Redis string keys.
package redis

import (
	"context"
	stderrors "errors"
	"slices"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/agentstation/tripmap/pkg/errors"
)

// DefaultPrefix namespaces tripmap keys inside a shared Redis database.
const DefaultPrefix = "tripmap:"

// Store keeps each document under prefix+key.
type Store struct {
	client goredis.UniversalClient
	prefix string
}

// Open parses a redis:// URL, connects and pings the server.
func Open(ctx context.Context, url string) (*Store, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, errors.NewConfigError("redis", "invalid redis URL", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapIO("connect", opts.Addr, err)
	}
	return New(client, DefaultPrefix), nil
}

// New wraps an existing client.
func New(client goredis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Load returns the document stored under key.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if stderrors.Is(err, goredis.Nil) {
		return nil, errors.NewNotFoundError("document", key)
	}
	if err != nil {
		return nil, errors.WrapIO("read", key, err)
	}
	return data, nil
}

// Save stores the document under key with no expiry.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return errors.WrapIO("write", key, err)
	}
	return nil
}

// Keys scans for keys under the prefix.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.WrapIO("scan", s.prefix, err)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}
