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

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaFailureMessage(t *testing.T) {
	tests := []struct {
		name    string
		invalid []string
		want    string
	}{
		{
			name:    "single metric",
			invalid: []string{"disk.io"},
			want:    "Found 1 invalid metric(s) in namespace 'payments': 'disk.io'",
		},
		{
			name:    "five metrics spelled out",
			invalid: []string{"a", "b", "c", "d", "e"},
			want:    "Found 5 invalid metric(s) in namespace 'payments': 'a', 'b', 'c', 'd', 'e'",
		},
		{
			name:    "overflow collapsed",
			invalid: []string{"a", "b", "c", "d", "e", "f", "g"},
			want:    "Found 7 invalid metrics in namespace 'payments': 'a', 'b', 'c', 'd', 'e', and 2 more",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := SchemaFailure(tt.invalid, "payments")
			assert.False(t, r.Valid)
			assert.Equal(t, StageSchema, r.Stage)
			assert.Equal(t, tt.want, r.Err)
			assert.Equal(t, tt.invalid, r.InvalidMetrics)
		})
	}
}

func TestSuccessInvariant(t *testing.T) {
	for _, r := range []Result{GenericSuccess(), SyntaxSuccess(), SchemaSuccess(), SemanticResult(true, true, false, "match", "ignored")} {
		assert.True(t, r.Valid)
		assert.Empty(t, r.Err)
		assert.Empty(t, r.InvalidMetrics)
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "syntax", StageSyntax.String())
	assert.Equal(t, "schema", StageSchema.String())
	assert.Equal(t, "semantic", StageSemantic.String())
	assert.Equal(t, "generic", StageGeneric.String())
}
