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
	"strings"

	"github.com/apache/skywalking-queryforge/pkg/logger"
	"github.com/apache/skywalking-queryforge/pkg/registry"
)

// SubstringResolver returns every valid metric name of the namespace that
// occurs as a literal substring of the expression.
type SubstringResolver struct {
	index *namespaceIndex
	l     *logger.Logger
}

// NewSubstring creates a SubstringResolver. indexSize bounds the cached
// namespace count; zero picks the default.
func NewSubstring(reg registry.MetricRegistry, indexSize int) (*SubstringResolver, error) {
	l := logger.GetLogger("resolver", "substring")
	index, err := newNamespaceIndex(reg, indexSize, l)
	if err != nil {
		return nil, err
	}
	return &SubstringResolver{index: index, l: l}, nil
}

// Resolve implements Resolver.
func (r *SubstringResolver) Resolve(expression, namespace string) (registry.NameSet, error) {
	if strings.TrimSpace(expression) == "" {
		r.l.Debug().Msg("empty expression, returning empty set")
		return registry.NameSet{}, nil
	}
	if namespace == "" {
		r.l.Warn().Msg("namespace not provided")
		return registry.NameSet{}, nil
	}
	names, err := r.index.names(namespace)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		r.l.Warn().Str("namespace", namespace).Msg("no valid metrics for namespace")
		return registry.NameSet{}, nil
	}
	found := registry.NameSet{}
	for _, name := range names {
		if strings.Contains(expression, name) {
			found[name] = struct{}{}
		}
	}
	r.l.Info().Str("namespace", namespace).Int("metric_count", len(found)).Msg("substring matching done")
	return found, nil
}
