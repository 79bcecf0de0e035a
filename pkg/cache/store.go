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

// Package cache provides the content-addressable query result cache.
// The Store interface abstracts the backing key-value store; Client adds
// a fail-open policy on top of it, and QueryCache builds deterministic
// keys from structured intents.
package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/pkg/errors"
)

// Store is the backing key-value store. Implementations may fail; the
// Client above them absorbs those failures.
type Store interface {
	// Get returns the value and whether the key was present.
	Get(key string) (string, bool, error)
	// Set stores value under key for ttl.
	Set(key, value string, ttl time.Duration) error
	// Delete removes key, reporting whether it was present.
	Delete(key string) (bool, error)
	// Exists reports whether key is present.
	Exists(key string) (bool, error)
}

// defaultMemStoreSize bounds the number of entries held in memory.
const defaultMemStoreSize = 1024

type memEntry struct {
	value    string
	deadline time.Time
}

// MemStore is a bounded in-memory Store for embedding and tests. Expired
// entries are dropped lazily on read.
type MemStore struct {
	lru   simplelru.LRUCache
	now   func() time.Time
	mutex sync.Mutex
}

// NewMemStore creates a MemStore holding at most size entries; a
// non-positive size picks the default.
func NewMemStore(size int) (*MemStore, error) {
	if size <= 0 {
		size = defaultMemStoreSize
	}
	lru, err := simplelru.NewLRU(size, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create memory store")
	}
	return &MemStore{lru: lru, now: time.Now}, nil
}

// Get implements Store.
func (s *MemStore) Get(key string) (string, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	v, ok := s.lru.Get(key)
	if !ok {
		return "", false, nil
	}
	e := v.(memEntry)
	if s.now().After(e.deadline) {
		s.lru.Remove(key)
		return "", false, nil
	}
	return e.value, true, nil
}

// Set implements Store.
func (s *MemStore) Set(key, value string, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lru.Add(key, memEntry{value: value, deadline: s.now().Add(ttl)})
	return nil
}

// Delete implements Store.
func (s *MemStore) Delete(key string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.lru.Remove(key), nil
}

// Exists implements Store.
func (s *MemStore) Exists(key string) (bool, error) {
	_, ok, err := s.Get(key)
	return ok, err
}
