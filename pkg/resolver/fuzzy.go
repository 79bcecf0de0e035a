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
	"sort"
	"strings"

	"github.com/xrash/smetrics"

	"github.com/apache/skywalking-queryforge/pkg/logger"
	"github.com/apache/skywalking-queryforge/pkg/registry"
)

// Fuzzy matching defaults.
const (
	defaultTopK            = 10
	defaultMinSimilarity   = 60.0
	defaultSuggestionLimit = 5
)

// Match is a fuzzy candidate with its 0-100 similarity score.
type Match struct {
	Name  string
	Score float64
}

// FuzzyResolver extracts metric names by approximate matching. Exact
// substring hits are a fast path that skips fuzzy scoring entirely. A
// fuzzy candidate is only accepted if it also occurs verbatim in the
// expression, which guards against matches that are not actually present.
type FuzzyResolver struct {
	index           *namespaceIndex
	l               *logger.Logger
	topK            int
	minSimilarity   float64
	suggestionLimit int
}

// NewFuzzy creates a FuzzyResolver with the given options; zero option
// fields pick defaults.
func NewFuzzy(reg registry.MetricRegistry, opts Options) (*FuzzyResolver, error) {
	l := logger.GetLogger("resolver", "fuzzy")
	index, err := newNamespaceIndex(reg, opts.IndexSize, l)
	if err != nil {
		return nil, err
	}
	r := &FuzzyResolver{
		index:           index,
		l:               l,
		topK:            opts.TopK,
		minSimilarity:   opts.MinSimilarity,
		suggestionLimit: opts.SuggestionLimit,
	}
	if r.topK <= 0 {
		r.topK = defaultTopK
	}
	if r.minSimilarity <= 0 {
		r.minSimilarity = defaultMinSimilarity
	}
	if r.suggestionLimit <= 0 {
		r.suggestionLimit = defaultSuggestionLimit
	}
	return r, nil
}

// Resolve implements Resolver.
func (r *FuzzyResolver) Resolve(expression, namespace string) (registry.NameSet, error) {
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
	if len(found) > 0 {
		r.l.Info().Str("namespace", namespace).Int("metric_count", len(found)).Msg("substring fast path hit")
		return found, nil
	}

	tokens := tokenPattern.FindAllString(strings.ToLower(expression), -1)
	if len(tokens) == 0 {
		r.l.Debug().Msg("no metric-like tokens in expression")
		return registry.NameSet{}, nil
	}
	for _, token := range tokens {
		for _, m := range r.topMatches(token, names) {
			if strings.Contains(expression, m.Name) {
				found[m.Name] = struct{}{}
				r.l.Debug().Str("token", token).Str("name", m.Name).Float64("score", m.Score).Msg("fuzzy match accepted")
			}
		}
	}
	r.l.Info().Str("namespace", namespace).Int("metric_count", len(found)).Msg("fuzzy matching done")
	return found, nil
}

// Suggestions returns the best-scoring candidates across all tokens of
// the expression, for "did you mean" rendering. It never affects Resolve.
func (r *FuzzyResolver) Suggestions(expression, namespace string) ([]Match, error) {
	if strings.TrimSpace(expression) == "" || namespace == "" {
		return nil, nil
	}
	names, err := r.index.names(namespace)
	if err != nil {
		return nil, err
	}
	tokens := tokenPattern.FindAllString(strings.ToLower(expression), -1)
	best := make(map[string]float64)
	for _, token := range tokens {
		for _, m := range r.topMatches(token, names) {
			if m.Score > best[m.Name] {
				best[m.Name] = m.Score
			}
		}
	}
	matches := make([]Match, 0, len(best))
	for name, score := range best {
		matches = append(matches, Match{Name: name, Score: score})
	}
	sortMatches(matches)
	if len(matches) > r.suggestionLimit {
		matches = matches[:r.suggestionLimit]
	}
	return matches, nil
}

// topMatches scores token against every candidate name and keeps at most
// topK entries at or above the similarity cutoff, best first.
func (r *FuzzyResolver) topMatches(token string, names []string) []Match {
	matches := make([]Match, 0, r.topK)
	for _, name := range names {
		score := similarityRatio(token, name)
		if score >= r.minSimilarity {
			matches = append(matches, Match{Name: name, Score: score})
		}
	}
	sortMatches(matches)
	if len(matches) > r.topK {
		matches = matches[:r.topK]
	}
	return matches
}

func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Name < matches[j].Name
	})
}

// similarityRatio is the indel similarity of a and b on a 0-100 scale:
// substitutions cost 2, so the ratio degrades to 0 for disjoint strings.
func similarityRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return 100 * (1 - float64(dist)/float64(len(a)+len(b)))
}
