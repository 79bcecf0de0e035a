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

// Package registry defines the namespace-scoped metric name registry
// consumed by schema validation. The write path is owned by an external
// indexing job; this core only reads.
package registry

import (
	"sort"
	"sync"
)

// NameSet is a set of metric names.
type NameSet map[string]struct{}

// NewNameSet builds a NameSet from names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is in the set.
func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the names in ascending order.
func (s NameSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MetricRegistry is the namespace-scoped set of valid metric names. An
// unknown namespace yields an empty set, never an error.
type MetricRegistry interface {
	// GetMetricNames returns every valid metric name in the namespace.
	GetMetricNames(namespace string) (NameSet, error)
	// IsValidMetricName reports whether name exists in the namespace.
	IsValidMetricName(namespace, name string) (bool, error)
	// SetMetricNames replaces the name set of the namespace.
	SetMetricNames(namespace string, names NameSet) error
}

// MemRegistry is an in-memory MetricRegistry for embedding and tests.
type MemRegistry struct {
	namespaces map[string]NameSet
	mu         sync.RWMutex
}

// NewMemRegistry creates an empty in-memory registry.
func NewMemRegistry() *MemRegistry {
	return &MemRegistry{namespaces: make(map[string]NameSet)}
}

// GetMetricNames implements MetricRegistry.
func (r *MemRegistry) GetMetricNames(namespace string) (NameSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names, ok := r.namespaces[namespace]
	if !ok {
		return NameSet{}, nil
	}
	out := make(NameSet, len(names))
	for n := range names {
		out[n] = struct{}{}
	}
	return out, nil
}

// IsValidMetricName implements MetricRegistry.
func (r *MemRegistry) IsValidMetricName(namespace, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namespaces[namespace].Contains(name), nil
}

// SetMetricNames implements MetricRegistry.
func (r *MemRegistry) SetMetricNames(namespace string, names NameSet) error {
	cp := make(NameSet, len(names))
	for n := range names {
		cp[n] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = cp
	return nil
}
