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
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/skywalking-queryforge/pkg/intent"
)

func newQueryCache(t *testing.T) *QueryCache {
	t.Helper()
	store, err := NewMemStore(0)
	require.NoError(t, err)
	return NewQueryCache(NewClient(store, 0))
}

func TestQueryCacheRoundTrip(t *testing.T) {
	qc := newQueryCache(t)
	in := intent.MetricsQueryIntent{Metric: "cpu.usage", MetricType: "gauge", Window: "5m"}

	_, ok := qc.Get("prod", QueryTypePromQL, in)
	assert.False(t, ok)

	require.True(t, qc.Put("prod", QueryTypePromQL, in, `avg(cpu_usage)`, 0))
	assert.True(t, qc.Exists("prod", QueryTypePromQL, in))

	got, ok := qc.Get("prod", QueryTypePromQL, in)
	require.True(t, ok)
	assert.Equal(t, `avg(cpu_usage)`, got)

	assert.True(t, qc.Invalidate("prod", QueryTypePromQL, in))
	_, ok = qc.Get("prod", QueryTypePromQL, in)
	assert.False(t, ok)
	assert.False(t, qc.Invalidate("prod", QueryTypePromQL, in))
}

func TestKeyDeterministic(t *testing.T) {
	qc := newQueryCache(t)
	in := intent.MetricsQueryIntent{
		Metric:     "cpu.usage",
		MetricType: "gauge",
		Filters:    map[string]string{"service": "payments", "env": "prod"},
		Window:     "5m",
		GroupBy:    []string{"host"},
	}
	// A struct and the equivalent map hash to the same key: the json form
	// is canonicalized before hashing.
	asMap := map[string]any{
		"metric":      "cpu.usage",
		"metric_type": "gauge",
		"filters":     map[string]any{"env": "prod", "service": "payments"},
		"window":      "5m",
		"group_by":    []any{"host"},
	}
	assert.Equal(t, qc.KeyFor("prod", QueryTypePromQL, in), qc.KeyFor("prod", QueryTypePromQL, asMap))
	assert.Equal(t, qc.KeyFor("prod", QueryTypePromQL, in), qc.KeyFor("prod", QueryTypePromQL, in))
}

func TestKeyFormat(t *testing.T) {
	qc := newQueryCache(t)
	in := intent.MetricsQueryIntent{Metric: "cpu.usage"}

	key := qc.KeyFor("", QueryTypePromQL, in)
	assert.Contains(t, key, "#default#promql#")
	assert.True(t, strings.HasPrefix(key, "querygen#"))

	parts := strings.Split(key, "#")
	require.Len(t, parts, 4)
	assert.Len(t, parts[3], 16)

	other := qc.KeyFor("", QueryTypePromQL, intent.MetricsQueryIntent{Metric: "memory.total"})
	assert.NotEqual(t, key, other)

	logKey := qc.KeyFor("prod", QueryTypeLogQL, in)
	assert.Contains(t, logKey, "#prod#logql#")
}

func TestMemStoreTTL(t *testing.T) {
	store, err := NewMemStore(0)
	require.NoError(t, err)
	now := time.Unix(1000, 0)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set("k", "v", time.Minute))
	_, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

// brokenStore errors on every operation.
type brokenStore struct{}

func (brokenStore) Get(string) (string, bool, error)        { return "", false, errors.New("down") }
func (brokenStore) Set(string, string, time.Duration) error { return errors.New("down") }
func (brokenStore) Delete(string) (bool, error)             { return false, errors.New("down") }
func (brokenStore) Exists(string) (bool, error)             { return false, errors.New("down") }

func TestFailOpen(t *testing.T) {
	qc := NewQueryCache(NewClient(brokenStore{}, 0))
	in := intent.MetricsQueryIntent{Metric: "cpu.usage"}

	got, ok := qc.Get("prod", QueryTypePromQL, in)
	assert.False(t, ok)
	assert.Empty(t, got)
	assert.False(t, qc.Put("prod", QueryTypePromQL, in, "q", 0))
	assert.False(t, qc.Invalidate("prod", QueryTypePromQL, in))
	assert.False(t, qc.Exists("prod", QueryTypePromQL, in))
}
