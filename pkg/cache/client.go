// Licensed to Apache Software Foundation (ASF) under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Apache Software Foundation (ASF) licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package cache

import (
	"time"

	"github.com/apache/skywalking-queryforge/pkg/logger"
)

// DefaultTTL is applied when Put is called without an explicit TTL.
const DefaultTTL = 1800 * time.Second

// Client wraps a Store with a fail-open policy: a store failure is
// logged and reported as a miss or a false return, never as an error.
// A cache outage degrades the system to always-regenerate.
type Client struct {
	store      Store
	l          *logger.Logger
	defaultTTL time.Duration
}

// NewClient creates a fail-open Client. A non-positive defaultTTL picks
// DefaultTTL.
func NewClient(store Store, defaultTTL time.Duration) *Client {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Client{store: store, defaultTTL: defaultTTL, l: logger.GetLogger("cache")}
}

// Get returns the cached value and whether it was found.
func (c *Client) Get(key string) (string, bool) {
	value, ok, err := c.store.Get(key)
	if err != nil {
		c.l.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return "", false
	}
	return value, ok
}

// Put stores value under key. A zero ttl applies the default.
func (c *Client) Put(key, value string, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.store.Set(key, value, ttl); err != nil {
		c.l.Warn().Err(err).Str("key", key).Msg("cache put failed")
		return false
	}
	c.l.Debug().Str("key", key).Dur("ttl", ttl).Msg("cache put")
	return true
}

// Delete removes key, reporting whether it was present.
func (c *Client) Delete(key string) bool {
	ok, err := c.store.Delete(key)
	if err != nil {
		c.l.Warn().Err(err).Str("key", key).Msg("cache delete failed")
		return false
	}
	return ok
}

// Exists reports whether key is cached.
func (c *Client) Exists(key string) bool {
	ok, err := c.store.Exists(key)
	if err != nil {
		c.l.Warn().Err(err).Str("key", key).Msg("cache exists check failed")
		return false
	}
	return ok
}
