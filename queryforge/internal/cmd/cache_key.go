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

package cmd

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/apache/skywalking-queryforge/pkg/cache"
)

func newCacheKeyCmd() *cobra.Command {
	var namespace string
	var queryType string
	var intentJSON string
	cmd := &cobra.Command{
		Use:   "cache-key",
		Short: "Compute the cache key of a query intent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var intent map[string]any
			if err := json.Unmarshal([]byte(intentJSON), &intent); err != nil {
				return errors.Wrap(err, "parse intent json")
			}
			store, err := cache.NewMemStore(0)
			if err != nil {
				return err
			}
			qc := cache.NewQueryCache(cache.NewClient(store, 0))
			cmd.Println(qc.KeyFor(namespace, cache.QueryType(queryType), intent))
			return nil
		},
	}
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "the namespace of the intent")
	cmd.Flags().StringVarP(&queryType, "type", "t", "promql", "query type: promql, logql, splunk or cypher")
	cmd.Flags().StringVarP(&intentJSON, "intent", "i", "{}", "the intent as a json object")
	return cmd
}
