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

// Package validation defines the stage-tagged result type shared by all
// query validators. A Result is always returned by value; validation
// outcomes are never surfaced as errors.
package validation

import (
	"fmt"
	"strings"
)

// Stage discriminates which validator produced a Result.
type Stage int

// Stages a Result can originate from.
const (
	StageGeneric Stage = iota
	StageSyntax
	StageSchema
	StageSemantic
)

// String returns the lowercase stage tag.
func (s Stage) String() string {
	switch s {
	case StageSyntax:
		return "syntax"
	case StageSchema:
		return "schema"
	case StageSemantic:
		return "semantic"
	default:
		return "generic"
	}
}

// Result is the outcome of one validation stage. Valid==true implies
// Err=="" and InvalidMetrics is empty. Stage-specific fields are only
// meaningful for the matching Stage value: Line/Column/Context for
// StageSyntax, InvalidMetrics for StageSchema, IntentMatch/PartialMatch/
// Explanation for StageSemantic.
type Result struct {
	Err            string
	Context        string
	Explanation    string
	InvalidMetrics []string
	Stage          Stage
	Line           int
	Column         int
	Valid          bool
	IntentMatch    bool
	PartialMatch   bool
}

// GenericSuccess reports a pipeline run in which every executed stage passed.
func GenericSuccess() Result {
	return Result{Stage: StageGeneric, Valid: true}
}

// GenericFailure reports a failure not owned by a specific stage.
func GenericFailure(format string, args ...interface{}) Result {
	return Result{Stage: StageGeneric, Err: fmt.Sprintf(format, args...)}
}

// SyntaxSuccess reports a syntactically well-formed query.
func SyntaxSuccess() Result {
	return Result{Stage: StageSyntax, Valid: true}
}

// SyntaxFailure reports a syntax error. Line and column are 1-indexed;
// zero means the parser did not report a position. Context is a rendered
// excerpt around the failure point and may be empty.
func SyntaxFailure(msg string, line, column int, context string) Result {
	return Result{Stage: StageSyntax, Err: msg, Line: line, Column: column, Context: context}
}

// SchemaSuccess reports that every referenced metric exists.
func SchemaSuccess() Result {
	return Result{Stage: StageSchema, Valid: true}
}

// SchemaFailure reports metrics missing from the namespace. invalidMetrics
// must already be sorted and deduplicated by the caller.
func SchemaFailure(invalidMetrics []string, namespace string) Result {
	return Result{
		Stage:          StageSchema,
		Err:            schemaErrorMessage(invalidMetrics, namespace),
		InvalidMetrics: invalidMetrics,
	}
}

// SchemaParseError reports that the resolver could not process the
// expression. It is a non-fatal schema result, not a thrown error.
func SchemaParseError(format string, args ...interface{}) Result {
	return Result{Stage: StageSchema, Err: "Expression parse error: " + fmt.Sprintf(format, args...)}
}

// SemanticResult wraps a semantic validator verdict into a Result.
func SemanticResult(valid, intentMatch, partialMatch bool, explanation, errMsg string) Result {
	if valid {
		errMsg = ""
	}
	return Result{
		Stage:        StageSemantic,
		Valid:        valid,
		Err:          errMsg,
		IntentMatch:  intentMatch,
		PartialMatch: partialMatch,
		Explanation:  explanation,
	}
}

// maxDisplayedMetrics caps how many invalid names are spelled out in a
// schema error message.
const maxDisplayedMetrics = 5

func schemaErrorMessage(invalidMetrics []string, namespace string) string {
	count := len(invalidMetrics)
	if count == 0 {
		return ""
	}
	displayed := invalidMetrics
	if count > maxDisplayedMetrics {
		displayed = invalidMetrics[:maxDisplayedMetrics]
	}
	quoted := make([]string, 0, len(displayed))
	for _, m := range displayed {
		quoted = append(quoted, "'"+m+"'")
	}
	metrics := strings.Join(quoted, ", ")
	if count > maxDisplayedMetrics {
		return fmt.Sprintf("Found %d invalid metrics in namespace '%s': %s, and %d more",
			count, namespace, metrics, count-maxDisplayedMetrics)
	}
	return fmt.Sprintf("Found %d invalid metric(s) in namespace '%s': %s", count, namespace, metrics)
}
