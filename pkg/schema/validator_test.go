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

package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/skywalking-queryforge/pkg/registry"
	"github.com/apache/skywalking-queryforge/pkg/resolver"
	"github.com/apache/skywalking-queryforge/pkg/validation"
)

// staticResolver returns a fixed name set or error and records calls.
type staticResolver struct {
	names registry.NameSet
	err   error
	calls int
}

func (r *staticResolver) Resolve(string, string) (registry.NameSet, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.names, nil
}

func newValidNamespace(t *testing.T, names ...string) *registry.MemRegistry {
	t.Helper()
	reg := registry.NewMemRegistry()
	require.NoError(t, reg.SetMetricNames("prod", registry.NewNameSet(names...)))
	return reg
}

func TestValidateEmptyExpression(t *testing.T) {
	reg := newValidNamespace(t, "cpu.usage")
	res := &staticResolver{names: registry.NewNameSet("cpu.usage")}
	v := NewValidator(reg, res, 0)

	for _, expr := range []string{"", "   ", "\t\n"} {
		got := v.Validate("prod", expr)
		assert.True(t, got.Valid)
		assert.Equal(t, validation.StageSchema, got.Stage)
	}
	// The resolver is never consulted for empty expressions.
	assert.Zero(t, res.calls)
}

func TestValidateBlankNamespace(t *testing.T) {
	reg := newValidNamespace(t, "cpu.usage")
	res := &staticResolver{names: registry.NewNameSet("cpu.usage")}
	v := NewValidator(reg, res, 0)

	got := v.Validate("  ", "cpu.usage")
	assert.False(t, got.Valid)
	assert.Contains(t, got.Err, "Namespace cannot be blank")
	assert.Zero(t, res.calls)
}

func TestValidateAllMetricsExist(t *testing.T) {
	reg := newValidNamespace(t, "cpu.usage", "memory.total")
	res := &staticResolver{names: registry.NewNameSet("cpu.usage", "memory.total")}
	v := NewValidator(reg, res, 0)

	got := v.Validate("prod", "cpu.usage / memory.total")
	assert.True(t, got.Valid)
	assert.Empty(t, got.InvalidMetrics)
}

func TestValidateInvalidMetric(t *testing.T) {
	reg := newValidNamespace(t, "cpu.usage", "memory.total")
	res := &staticResolver{names: registry.NewNameSet("cpu.usage", "disk.io")}
	v := NewValidator(reg, res, 0)

	got := v.Validate("prod", "cpu.usage + disk.io")
	assert.False(t, got.Valid)
	assert.Equal(t, []string{"disk.io"}, got.InvalidMetrics)
	assert.Equal(t, "Found 1 invalid metric(s) in namespace 'prod': 'disk.io'", got.Err)
}

func TestValidateNoMetricsFound(t *testing.T) {
	reg := newValidNamespace(t, "cpu.usage")
	res := &staticResolver{names: registry.NameSet{}}
	v := NewValidator(reg, res, 0)

	got := v.Validate("prod", "just words")
	assert.False(t, got.Valid)
	assert.Contains(t, got.Err, "No metrics found in expression")
}

func TestValidateResolverParseError(t *testing.T) {
	reg := newValidNamespace(t, "cpu.usage")
	res := &staticResolver{err: &resolver.ParseError{Reason: "unbalanced parentheses"}}
	v := NewValidator(reg, res, 0)

	got := v.Validate("prod", "((cpu.usage")
	assert.False(t, got.Valid)
	assert.Equal(t, "Expression parse error: unbalanced parentheses", got.Err)
}

func TestValidateResolverUnexpectedError(t *testing.T) {
	reg := newValidNamespace(t, "cpu.usage")
	res := &staticResolver{err: errors.New("connection refused")}
	v := NewValidator(reg, res, 0)

	got := v.Validate("prod", "cpu.usage")
	assert.False(t, got.Valid)
	assert.Contains(t, got.Err, "Unexpected parser error")
	assert.Contains(t, got.Err, "connection refused")
}

func TestBulkIndividualEquivalence(t *testing.T) {
	reg := newValidNamespace(t, "cpu.usage", "memory.total", "disk.io")
	resolved := registry.NewNameSet(
		"cpu.usage", "memory.total", "network.in", "network.out", "gpu.util", "disk.io")
	res := &staticResolver{names: resolved}

	// Threshold 1 forces the bulk path, a huge one the individual path.
	bulk := NewValidator(reg, res, 1).Validate("prod", "expr")
	individual := NewValidator(reg, res, 100).Validate("prod", "expr")

	assert.Equal(t, bulk.Valid, individual.Valid)
	if diff := cmp.Diff(bulk.InvalidMetrics, individual.InvalidMetrics); diff != "" {
		t.Errorf("bulk and individual paths disagree (-bulk +individual):\n%s", diff)
	}
	assert.Equal(t, []string{"gpu.util", "network.in", "network.out"}, bulk.InvalidMetrics)
}

func TestValidateOverflowMessage(t *testing.T) {
	reg := newValidNamespace(t, "cpu.usage")
	res := &staticResolver{names: registry.NewNameSet(
		"a.one", "b.two", "c.three", "d.four", "e.five", "f.six", "g.seven")}
	v := NewValidator(reg, res, 0)

	got := v.Validate("prod", "expr")
	assert.False(t, got.Valid)
	assert.Len(t, got.InvalidMetrics, 7)
	assert.Contains(t, got.Err, "and 2 more")
}
