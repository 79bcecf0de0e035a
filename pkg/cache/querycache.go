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
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/apache/skywalking-queryforge/pkg/logger"
)

// QueryType tags the query language a cached result belongs to.
type QueryType string

// Supported query types.
const (
	QueryTypePromQL QueryType = "promql"
	QueryTypeLogQL  QueryType = "logql"
	QueryTypeSplunk QueryType = "splunk"
	QueryTypeCypher QueryType = "cypher"
)

const (
	keyPrefix        = "querygen"
	keySeparator     = "#"
	defaultNamespace = "default"
	intentHashLen    = 16
)

// QueryCache caches generated queries keyed by namespace, query type and
// a deterministic hash of the structured intent.
type QueryCache struct {
	client *Client
	l      *logger.Logger
}

// NewQueryCache creates a QueryCache on top of a fail-open Client.
func NewQueryCache(client *Client) *QueryCache {
	return &QueryCache{client: client, l: logger.GetLogger("cache", "querygen")}
}

// KeyFor returns the cache key for the intent. It is pure: equal intents
// yield equal keys regardless of field order, and no state is touched.
// Format: querygen#<namespace-or-default>#<query_type>#<intent-hash>.
func (q *QueryCache) KeyFor(namespace string, queryType QueryType, intent any) string {
	if namespace == "" {
		namespace = defaultNamespace
	}
	sum := sha256.Sum256(canonicalJSON(intent))
	hash := hex.EncodeToString(sum[:])[:intentHashLen]
	return strings.Join([]string{keyPrefix, namespace, string(queryType), hash}, keySeparator)
}

// Get returns the cached query for the intent, if any.
func (q *QueryCache) Get(namespace string, queryType QueryType, intent any) (string, bool) {
	key := q.KeyFor(namespace, queryType, intent)
	query, ok := q.client.Get(key)
	if ok {
		q.l.Info().Str("namespace", namespace).Str("query_type", string(queryType)).Msg("cache HIT")
	} else {
		q.l.Info().Str("namespace", namespace).Str("query_type", string(queryType)).Msg("cache MISS")
	}
	return query, ok
}

// Put caches a generated query. A zero ttl applies the client default.
func (q *QueryCache) Put(namespace string, queryType QueryType, intent any, query string, ttl time.Duration) bool {
	key := q.KeyFor(namespace, queryType, intent)
	ok := q.client.Put(key, query, ttl)
	if ok {
		q.l.Info().Str("namespace", namespace).Str("query_type", string(queryType)).Msg("cached query")
	}
	return ok
}

// Invalidate removes the cached query for the intent.
func (q *QueryCache) Invalidate(namespace string, queryType QueryType, intent any) bool {
	return q.client.Delete(q.KeyFor(namespace, queryType, intent))
}

// Exists reports whether a query is cached for the intent.
func (q *QueryCache) Exists(namespace string, queryType QueryType, intent any) bool {
	return q.client.Exists(q.KeyFor(namespace, queryType, intent))
}
