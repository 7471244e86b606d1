/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package statedb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultSocket is the unix socket the switch redis server listens on
	DefaultSocket = "/var/run/redis/redis.sock"
	// DefaultDB is the redis database number of STATE_DB
	DefaultDB = 6
	// Separator joins a table name and a key
	Separator = "|"
)

var (
	// ErrNotFound is returned when a key or field does not exist
	ErrNotFound = errors.New("not found")
)

// Client is the subset of the state database used by the sensor adapters
type Client interface {
	HGet(ctx context.Context, key, field string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Parameters configures the redis connection
type Parameters struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Redis is a Client backed by the switch redis server
type Redis struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisClient returns a client for the given parameters. An address
// starting with "/" is treated as a unix socket.
func NewRedisClient(p Parameters) *Redis {
	network := "tcp"
	addr := p.Addr
	if addr == "" {
		addr = DefaultSocket
	}
	if strings.HasPrefix(addr, "/") {
		network = "unix"
	}
	if p.Timeout <= 0 {
		p.Timeout = 2 * time.Second
	}

	return &Redis{
		client: redis.NewClient(&redis.Options{
			Network:      network,
			Addr:         addr,
			DB:           p.DB,
			DialTimeout:  p.Timeout,
			ReadTimeout:  p.Timeout,
			WriteTimeout: p.Timeout,
			MaxRetries:   1,
		}),
		timeout: p.Timeout,
	}
}

// HGet returns a single hash field
func (r *Redis) HGet(ctx context.Context, key, field string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	v, err := r.client.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("hget %s %s - %w", key, field, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("hget %s %s - %w", key, field, err)
	}
	return v, nil
}

// Exists reports whether key is present
func (r *Redis) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("exists %s - %w", key, err)
	}
	return n > 0, nil
}

// Close releases the underlying connection pool
func (r *Redis) Close() error {
	return r.client.Close()
}

// Key joins a table name and a key the way STATE_DB stores them
func Key(table, key string) string {
	return table + Separator + key
}
