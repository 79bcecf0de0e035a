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

//nolint:govet // ignore fieldalignment in this file; layout is the LogQL grammar
package syntax

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// logQLQuery is the root of the LogQL grammar: either a vector aggregation
// over a range aggregation, a range aggregation, or a plain log pipeline.
type logQLQuery struct {
	Agg    *logVectorAgg    `parser:"  @@"`
	Metric *logRangeAgg     `parser:"| @@"`
	Log    *logSelectorExpr `parser:"| @@"`
}

type logVectorAgg struct {
	Op       string       `parser:"@('sum' | 'avg' | 'min' | 'max' | 'count')"`
	Grouping *logGrouping `parser:"@@?"`
	Inner    *logRangeAgg `parser:"'(' @@ ')'"`
}

type logGrouping struct {
	Mode   string   `parser:"@('by' | 'without')"`
	Labels []string `parser:"'(' ( @Ident ( ',' @Ident )* )? ')'"`
}

type logRangeAgg struct {
	Op    string        `parser:"@('rate' | 'count_over_time' | 'bytes_rate' | 'bytes_over_time' | 'sum_over_time' | 'avg_over_time' | 'min_over_time' | 'max_over_time')"`
	Inner *logRangeExpr `parser:"'(' @@ ')'"`
}

type logRangeExpr struct {
	Selector *logSelectorExpr `parser:"@@"`
	Range    string           `parser:"'[' @Duration ']'"`
}

type logSelectorExpr struct {
	Selector *logStreamSelector `parser:"@@"`
	Stages   []*logStage        `parser:"@@*"`
}

type logStreamSelector struct {
	Matchers []*logLabelMatcher `parser:"'{' ( @@ ( ',' @@ )* )? '}'"`
}

type logLabelMatcher struct {
	Label string `parser:"@Ident"`
	Op    string `parser:"@('=' | '!=' | '=~' | '!~')"`
	Value string `parser:"@String"`
}

type logStage struct {
	Filter *logLineFilter `parser:"  @@"`
	Pipe   *logPipeStage  `parser:"| '|' @@"`
}

type logLineFilter struct {
	Op    string `parser:"@('|=' | '!=' | '|~' | '!~')"`
	Match string `parser:"@String"`
}

type logPipeStage struct {
	Parser      *string          `parser:"  @('json' | 'logfmt' | 'unpack')"`
	Pattern     *logPatternStage `parser:"| @@"`
	LineFormat  *logLineFormat   `parser:"| @@"`
	LabelFormat *logLabelFormat  `parser:"| @@"`
	Filter      *logLabelFilter  `parser:"| @@"`
}

type logPatternStage struct {
	Kind string `parser:"@('pattern' | 'regexp')"`
	Arg  string `parser:"@String"`
}

type logLineFormat struct {
	Format string `parser:"'line_format' @String"`
}

type logLabelFormat struct {
	Pairs []*logLabelFormatPair `parser:"'label_format' @@ ( ',' @@ )*"`
}

type logLabelFormatPair struct {
	Dst string `parser:"@Ident '='"`
	Src string `parser:"@(Ident | String)"`
}

type logLabelFilter struct {
	Label string `parser:"@Ident"`
	Op    string `parser:"@('==' | '=' | '!=' | '=~' | '!~' | '>=' | '>' | '<=' | '<')"`
	Value string `parser:"@(String | Number | Duration)"`
}

func buildLogQLParser() (*participle.Parser[logQLQuery], error) {
	return participle.Build[logQLQuery](
		participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
			{Name: "Duration", Pattern: `\d+(\.\d+)?(ns|us|ms|s|m|h|d|w|y)`},
			{Name: "Number", Pattern: `\d+(\.\d+)?`},
			{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"|` + "`[^`]*`"},
			{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
			{Name: "Operators", Pattern: `\|=|\|~|!=|!~|=~|==|>=|<=|[|={}\[\](),<>]`},
			{Name: "whitespace", Pattern: `\s+`},
		})),
		participle.UseLookahead(2),
	)
}

// NewLogQL creates the LogQL syntax validator.
func NewLogQL() Validator {
	return newGrammarValidator(LanguageLogQL, buildLogQLParser)
}
