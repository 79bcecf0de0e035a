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

//nolint:govet // ignore fieldalignment in this file; layout is the PromQL grammar
package syntax

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// promQLQuery is the root of the PromQL grammar. Binary operators are
// layered by precedence; each layer is a left-folded chain.
type promQLQuery struct {
	Expr *promOrExpr `parser:"@@"`
}

type promOrExpr struct {
	Left *promAndExpr  `parser:"@@"`
	Rest []*promOrTail `parser:"@@*"`
}

type promOrTail struct {
	Op    string       `parser:"@('or' | 'unless')"`
	Right *promAndExpr `parser:"@@"`
}

type promAndExpr struct {
	Left *promCmpExpr   `parser:"@@"`
	Rest []*promAndTail `parser:"@@*"`
}

type promAndTail struct {
	Op    string       `parser:"@'and'"`
	Right *promCmpExpr `parser:"@@"`
}

type promCmpExpr struct {
	Left *promAddExpr   `parser:"@@"`
	Rest []*promCmpTail `parser:"@@*"`
}

type promCmpTail struct {
	Op    string       `parser:"@('==' | '!=' | '>=' | '<=' | '>' | '<')"`
	Bool  bool         `parser:"@'bool'?"`
	Right *promAddExpr `parser:"@@"`
}

type promAddExpr struct {
	Left *promMulExpr   `parser:"@@"`
	Rest []*promAddTail `parser:"@@*"`
}

type promAddTail struct {
	Op    string       `parser:"@('+' | '-')"`
	Right *promMulExpr `parser:"@@"`
}

type promMulExpr struct {
	Left *promUnaryExpr `parser:"@@"`
	Rest []*promMulTail `parser:"@@*"`
}

type promMulTail struct {
	Op    string         `parser:"@('*' | '/' | '%' | '^')"`
	Right *promUnaryExpr `parser:"@@"`
}

type promUnaryExpr struct {
	Sign    string           `parser:"@('-' | '+')?"`
	Postfix *promPostfixExpr `parser:"@@"`
}

// promPostfixExpr attaches the optional range and offset modifiers.
type promPostfixExpr struct {
	Atom   *promAtom `parser:"@@"`
	Range  string    `parser:"( '[' @Duration ']' )?"`
	Offset string    `parser:"( 'offset' @Duration )?"`
}

type promAtom struct {
	Number   *string           `parser:"  @Number"`
	Agg      *promAggExpr      `parser:"| @@"`
	Call     *promCallExpr     `parser:"| @@"`
	Selector *promSelector     `parser:"| @@"`
	Bare     *promBareSelector `parser:"| @@"`
	Sub      *promOrExpr       `parser:"| '(' @@ ')'"`
}

type promAggExpr struct {
	Op   string        `parser:"@('sum' | 'avg' | 'min' | 'max' | 'count' | 'topk' | 'bottomk' | 'quantile' | 'stddev' | 'stdvar' | 'count_values' | 'group')"`
	Pre  *promGrouping `parser:"@@?"`
	Args []*promOrExpr `parser:"'(' @@ ( ',' @@ )* ')'"`
	Post *promGrouping `parser:"@@?"`
}

type promGrouping struct {
	Mode   string   `parser:"@('by' | 'without')"`
	Labels []string `parser:"'(' ( @Ident ( ',' @Ident )* )? ')'"`
}

type promCallExpr struct {
	Func string        `parser:"@Ident"`
	Args []*promOrExpr `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
}

type promSelector struct {
	Metric   string              `parser:"@Ident"`
	Matchers []*promLabelMatcher `parser:"( '{' ( @@ ( ',' @@ )* )? '}' )?"`
}

type promBareSelector struct {
	Matchers []*promLabelMatcher `parser:"'{' ( @@ ( ',' @@ )* )? '}'"`
}

type promLabelMatcher struct {
	Label string `parser:"@Ident"`
	Op    string `parser:"@('=' | '!=' | '=~' | '!~')"`
	Value string `parser:"@String"`
}

func buildPromQLParser() (*participle.Parser[promQLQuery], error) {
	return participle.Build[promQLQuery](
		participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
			{Name: "Duration", Pattern: `\d+(ms|s|m|h|d|w|y)`},
			{Name: "Number", Pattern: `\d+(\.\d+)?([eE][-+]?\d+)?`},
			{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`},
			{Name: "Ident", Pattern: `[a-zA-Z_:][a-zA-Z0-9_:]*`},
			{Name: "Operators", Pattern: `==|!=|>=|<=|=~|!~|[-+*/%^=<>(){}\[\],]`},
			{Name: "whitespace", Pattern: `\s+`},
		})),
		participle.UseLookahead(2),
	)
}

// NewPromQL creates the PromQL syntax validator.
func NewPromQL() Validator {
	return newGrammarValidator(LanguagePromQL, buildPromQLParser)
}
