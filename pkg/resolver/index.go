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

package resolver

import (
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/pkg/errors"

	"github.com/apache/skywalking-queryforge/pkg/logger"
	"github.com/apache/skywalking-queryforge/pkg/registry"
)

// defaultIndexSize bounds the number of namespaces cached at once. The
// distinct-namespace count is expected to be small and slow-changing.
const defaultIndexSize = 128

// namespaceIndex is a read-through cache of the valid-name list per
// namespace. The registry fetch happens outside the lock, so two callers
// racing on the same cold namespace may both fetch it; the fetch is
// idempotent and the second Add wins harmlessly.
type namespaceIndex struct {
	reg   registry.MetricRegistry
	cache simplelru.LRUCache
	l     *logger.Logger
	mu    sync.Mutex
}

// indexEntry holds both views of a namespace's valid names so strategies
// can iterate in order or test membership without rebuilding either.
type indexEntry struct {
	names []string
	set   registry.NameSet
}

func newNamespaceIndex(reg registry.MetricRegistry, size int, l *logger.Logger) (*namespaceIndex, error) {
	if size <= 0 {
		size = defaultIndexSize
	}
	cache, err := simplelru.NewLRU(size, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create namespace index")
	}
	return &namespaceIndex{reg: reg, cache: cache, l: l}, nil
}

func (i *namespaceIndex) entry(namespace string) (indexEntry, error) {
	i.mu.Lock()
	if v, ok := i.cache.Get(namespace); ok {
		i.mu.Unlock()
		return v.(indexEntry), nil
	}
	i.mu.Unlock()
	set, err := i.reg.GetMetricNames(namespace)
	if err != nil {
		return indexEntry{}, errors.Wrapf(err, "fetch metric names for namespace %s", namespace)
	}
	e := indexEntry{names: set.Sorted(), set: set}
	i.mu.Lock()
	i.cache.Add(namespace, e)
	i.mu.Unlock()
	i.l.Info().Str("namespace", namespace).Int("metric_count", len(e.names)).Msg("loaded metric index")
	return e, nil
}

// names returns the sorted valid metric names of namespace, loading them
// from the registry on first access.
func (i *namespaceIndex) names(namespace string) ([]string, error) {
	e, err := i.entry(namespace)
	return e.names, err
}

// set returns the valid metric names of namespace as a membership set.
func (i *namespaceIndex) set(namespace string) (registry.NameSet, error) {
	e, err := i.entry(namespace)
	return e.set, err
}
