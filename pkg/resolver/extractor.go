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
	"math"
	"strings"

	"github.com/apache/skywalking-queryforge/pkg/logger"
	"github.com/apache/skywalking-queryforge/pkg/registry"
)

// Extractor pulls candidate metric names out of a raw expression. It is
// the integration point for external parsers such as a language-model
// based extraction service.
type Extractor interface {
	Extract(expression string) (ExtractionResponse, error)
}

// ExtractionResponse is what an Extractor returns before normalization.
type ExtractionResponse struct {
	MetricNames []string `json:"metric_names"`
	Confidence  float64  `json:"confidence"`
}

// Normalize cleans an extraction result in place: names are trimmed,
// lowercased, deduplicated preserving first occurrence, and dropped when
// they do not look like metric names. Confidence is clamped to [0, 1]
// with NaN coerced to 0.
func (r *ExtractionResponse) Normalize() {
	seen := make(map[string]struct{}, len(r.MetricNames))
	cleaned := make([]string, 0, len(r.MetricNames))
	for _, name := range r.MetricNames {
		name = strings.ToLower(strings.TrimSpace(name))
		if !metricNamePattern.MatchString(name) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}
	r.MetricNames = cleaned
	switch {
	case math.IsNaN(r.Confidence) || r.Confidence < 0:
		r.Confidence = 0
	case r.Confidence > 1:
		r.Confidence = 1
	}
}

// ExtractorResolver delegates name extraction to an Extractor and then
// filters the candidates against the namespace registry.
type ExtractorResolver struct {
	extractor Extractor
	index     *namespaceIndex
	l         *logger.Logger
}

// NewExtractor creates an ExtractorResolver around the given Extractor.
func NewExtractor(reg registry.MetricRegistry, extractor Extractor, opts Options) (*ExtractorResolver, error) {
	l := logger.GetLogger("resolver", "extractor")
	index, err := newNamespaceIndex(reg, opts.IndexSize, l)
	if err != nil {
		return nil, err
	}
	return &ExtractorResolver{extractor: extractor, index: index, l: l}, nil
}

// Resolve implements Resolver. Extraction failures are surfaced as
// *ParseError so that callers can report them as expression parse errors.
func (r *ExtractorResolver) Resolve(expression, namespace string) (registry.NameSet, error) {
	if strings.TrimSpace(expression) == "" {
		r.l.Debug().Msg("empty expression, returning empty set")
		return registry.NameSet{}, nil
	}
	if namespace == "" {
		r.l.Warn().Msg("namespace not provided")
		return registry.NameSet{}, nil
	}
	resp, err := r.extractor.Extract(expression)
	if err != nil {
		return nil, &ParseError{Cause: err, Reason: err.Error()}
	}
	resp.Normalize()
	r.l.Debug().
		Int("candidates", len(resp.MetricNames)).
		Float64("confidence", resp.Confidence).
		Msg("extraction normalized")

	valid, err := r.index.set(namespace)
	if err != nil {
		return nil, err
	}
	found := registry.NameSet{}
	for _, name := range resp.MetricNames {
		if valid.Contains(name) {
			found[name] = struct{}{}
		}
	}
	r.l.Info().Str("namespace", namespace).Int("metric_count", len(found)).Msg("extractor resolution done")
	return found, nil
}
