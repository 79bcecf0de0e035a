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

// Package resolver extracts candidate metric names from free-form metric
// expressions. Three interchangeable strategies are provided; the active
// one is a deployment-time choice made through the factory.
package resolver

import (
	"errors"
	"regexp"

	pkgerrors "github.com/pkg/errors"

	"github.com/apache/skywalking-queryforge/pkg/registry"
)

// metricNamePattern is the shape every accepted metric name must have.
var metricNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_.]*$`)

// tokenPattern matches identifier-like runs that could be metric names.
var tokenPattern = regexp.MustCompile(`[a-z][a-z0-9_.]+`)

// Resolver extracts candidate metric names from an expression within a
// namespace. A well-formed expression with no matches yields an empty
// set; an expression the strategy cannot process at all yields a
// *ParseError.
type Resolver interface {
	Resolve(expression, namespace string) (registry.NameSet, error)
}

// ParseError reports an expression the resolver could not process.
type ParseError struct {
	Cause  error
	Reason string
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return e.Reason + ": " + e.Cause.Error()
	}
	return e.Reason
}

// Unwrap returns the underlying cause, if any.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// AsParseError unwraps err into a *ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

// Strategy selects a resolver implementation.
type Strategy string

// Supported strategies.
const (
	StrategySubstring Strategy = "substring"
	StrategyFuzzy     Strategy = "fuzzy"
	StrategyExtractor Strategy = "extractor"
)

// Options tunes the constructed resolver. The zero value picks defaults.
type Options struct {
	// Extractor is the external collaborator for StrategyExtractor.
	Extractor Extractor
	// TopK caps fuzzy matches considered per token.
	TopK int
	// MinSimilarity is the 0-100 fuzzy acceptance cutoff.
	MinSimilarity float64
	// SuggestionLimit caps Suggestions output.
	SuggestionLimit int
	// IndexSize bounds the per-namespace name index.
	IndexSize int
}

// New builds the resolver for strategy. An unsupported strategy or a
// missing required dependency is a wiring bug and fails fast.
func New(strategy Strategy, reg registry.MetricRegistry, opts Options) (Resolver, error) {
	switch strategy {
	case StrategySubstring:
		if reg == nil {
			return nil, pkgerrors.New("substring resolver requires a metric registry")
		}
		return NewSubstring(reg, opts.IndexSize)
	case StrategyFuzzy:
		if reg == nil {
			return nil, pkgerrors.New("fuzzy resolver requires a metric registry")
		}
		return NewFuzzy(reg, opts)
	case StrategyExtractor:
		if reg == nil {
			return nil, pkgerrors.New("extractor resolver requires a metric registry")
		}
		if opts.Extractor == nil {
			return nil, pkgerrors.New("extractor resolver requires an extractor")
		}
		return NewExtractor(reg, opts.Extractor, opts)
	default:
		return nil, pkgerrors.Errorf("unsupported resolver strategy %q", strategy)
	}
}
