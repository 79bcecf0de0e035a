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

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemRegistry(t *testing.T) {
	r := NewMemRegistry()

	names, err := r.GetMetricNames("unknown")
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, r.SetMetricNames("payments", NewNameSet("cpu.usage", "memory.total")))

	ok, err := r.IsValidMetricName("payments", "cpu.usage")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IsValidMetricName("payments", "disk.io")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.IsValidMetricName("unknown", "cpu.usage")
	require.NoError(t, err)
	assert.False(t, ok)

	names, err = r.GetMetricNames("payments")
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu.usage", "memory.total"}, names.Sorted())

	// Mutating the returned set must not leak into the registry.
	delete(names, "cpu.usage")
	ok, err = r.IsValidMetricName("payments", "cpu.usage")
	require.NoError(t, err)
	assert.True(t, ok)
}
