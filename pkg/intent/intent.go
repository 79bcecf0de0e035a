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

// Package intent holds the structured query intents the generation layer
// produces. Intents are value objects: the validation and caching code
// reads them but never mutates them. Cache keys hash the JSON form, so
// the json tags here are part of the key contract.
package intent

// AggregationFunctionSuggestion recommends an aggregation function for a
// metric, with any parameters that function needs.
type AggregationFunctionSuggestion struct {
	FunctionName string         `json:"function_name"`
	Params       map[string]any `json:"params,omitempty"`
}

// MetricsQueryIntent is a structured request for a metrics query.
type MetricsQueryIntent struct {
	Metric                 string                          `json:"metric"`
	MetricType             string                          `json:"metric_type"`
	Filters                map[string]string               `json:"filters,omitempty"`
	Window                 string                          `json:"window"`
	GroupBy                []string                        `json:"group_by,omitempty"`
	AggregationSuggestions []AggregationFunctionSuggestion `json:"aggregation_suggestions,omitempty"`
}

// LogQueryIntent is a structured request for a log query.
type LogQueryIntent struct {
	Description  string   `json:"description"`
	Backend      string   `json:"backend"`
	Patterns     []string `json:"patterns,omitempty"`
	ServiceLabel string   `json:"service_label"`
	Service      string   `json:"service,omitempty"`
	DefaultLevel string   `json:"default_level"`
	Limit        int      `json:"limit"`
	Namespace    string   `json:"namespace,omitempty"`
}
