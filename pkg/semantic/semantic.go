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

// Package semantic declares the interface to the external semantic
// validator. The decision logic lives outside this module; the pipeline
// only consumes verdicts through this contract.
package semantic

// Result is a semantic validator verdict.
type Result struct {
	// Explanation is the validator's human-readable reasoning.
	Explanation string
	// Err carries the failure message when Valid is false.
	Err string
	// Valid reports whether the query is semantically acceptable.
	Valid bool
	// IntentMatch reports whether the query fully realizes the intent.
	IntentMatch bool
	// PartialMatch reports whether the query realizes part of the intent.
	PartialMatch bool
}

// Validator judges whether a generated query agrees with the structured
// intent it was generated from.
type Validator interface {
	Validate(intent any, query string) (Result, error)
}
