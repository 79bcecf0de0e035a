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

// Package schema validates that every metric name referenced by an
// expression exists in the caller's namespace.
package schema

import (
	"strings"

	"github.com/apache/skywalking-queryforge/pkg/logger"
	"github.com/apache/skywalking-queryforge/pkg/registry"
	"github.com/apache/skywalking-queryforge/pkg/resolver"
	"github.com/apache/skywalking-queryforge/pkg/validation"
)

// DefaultBulkFetchThreshold is the candidate-set size at which the
// validator switches from per-name lookups to one bulk fetch.
const DefaultBulkFetchThreshold = 5

// Validator checks the metric names of an expression against a
// namespace-scoped registry. Names are extracted by the injected
// resolver; membership checks go through the registry, per name below
// the bulk threshold and as one full fetch at or above it.
type Validator struct {
	reg           registry.MetricRegistry
	res           resolver.Resolver
	l             *logger.Logger
	bulkThreshold int
}

// NewValidator creates a schema Validator. A non-positive bulkThreshold
// picks the default.
func NewValidator(reg registry.MetricRegistry, res resolver.Resolver, bulkThreshold int) *Validator {
	if bulkThreshold <= 0 {
		bulkThreshold = DefaultBulkFetchThreshold
	}
	return &Validator{
		reg:           reg,
		res:           res,
		l:             logger.GetLogger("schema"),
		bulkThreshold: bulkThreshold,
	}
}

// Validate checks that every metric referenced by expression exists in
// namespace. Resolver failures come back as parse-error results, never
// as returned errors.
func (v *Validator) Validate(namespace, expression string) validation.Result {
	// Empty expression means there is nothing to check.
	if strings.TrimSpace(expression) == "" {
		v.l.Debug().Msg("empty expression, validation succeeded")
		return validation.SchemaSuccess()
	}
	if strings.TrimSpace(namespace) == "" {
		return validation.SchemaParseError("Namespace cannot be blank")
	}

	names, err := v.res.Resolve(expression, namespace)
	if err != nil {
		if perr, ok := resolver.AsParseError(err); ok {
			return validation.SchemaParseError("%s", perr.Error())
		}
		return validation.SchemaParseError("Unexpected parser error: %s", err.Error())
	}
	if len(names) == 0 {
		v.l.Warn().Str("namespace", namespace).Msg("no metrics found in expression, validation failed")
		return validation.SchemaParseError("No metrics found in expression")
	}

	invalid, err := v.findInvalid(namespace, names)
	if err != nil {
		return validation.SchemaParseError("Unexpected parser error: %s", err.Error())
	}
	if len(invalid) > 0 {
		v.l.Warn().
			Str("namespace", namespace).
			Int("invalid_count", len(invalid)).
			Int("total_metrics", len(names)).
			Msg("schema validation failed")
		return validation.SchemaFailure(invalid, namespace)
	}
	v.l.Info().Str("namespace", namespace).Int("metric_count", len(names)).Msg("schema validation succeeded")
	return validation.SchemaSuccess()
}

// findInvalid returns the sorted names missing from namespace. Both
// branches must agree for any input, which the tests assert.
func (v *Validator) findInvalid(namespace string, names registry.NameSet) ([]string, error) {
	if len(names) >= v.bulkThreshold {
		return v.findInvalidBulk(namespace, names)
	}
	return v.findInvalidIndividual(namespace, names)
}

func (v *Validator) findInvalidIndividual(namespace string, names registry.NameSet) ([]string, error) {
	invalid := make([]string, 0)
	for _, name := range names.Sorted() {
		ok, err := v.reg.IsValidMetricName(namespace, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			invalid = append(invalid, name)
		}
	}
	return invalid, nil
}

func (v *Validator) findInvalidBulk(namespace string, names registry.NameSet) ([]string, error) {
	valid, err := v.reg.GetMetricNames(namespace)
	if err != nil {
		return nil, err
	}
	invalid := make([]string, 0)
	for _, name := range names.Sorted() {
		if !valid.Contains(name) {
			invalid = append(invalid, name)
		}
	}
	return invalid, nil
}
