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

//nolint:govet // ignore fieldalignment in this file; layout is the SPL grammar
package syntax

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// splQuery is the root of the simplified Splunk SPL grammar: an initial
// search expression followed by piped commands.
type splQuery struct {
	Search *splSearch    `parser:"'search'? @@"`
	Pipes  []*splCommand `parser:"( '|' @@ )*"`
}

type splSearch struct {
	Terms []*splTerm `parser:"@@+"`
}

type splTerm struct {
	KV   *splComparison `parser:"  @@"`
	Bare string         `parser:"| @(Ident | String | Number)"`
}

type splComparison struct {
	Field string `parser:"@Ident"`
	Op    string `parser:"@('=' | '!=' | '>=' | '>' | '<=' | '<')"`
	Value string `parser:"@(Ident | String | Number)"`
}

type splCommand struct {
	Name string    `parser:"@Ident"`
	Args []*splArg `parser:"@@*"`
}

// splArg is deliberately permissive; SPL command argument shapes vary too
// widely to enumerate, so anything that tokenizes is accepted.
type splArg struct {
	By   *splByClause   `parser:"  @@"`
	KV   *splComparison `parser:"| @@"`
	Func *splFuncCall   `parser:"| @@"`
	Word string         `parser:"| @(Ident | String | Number | '-' | ',' | '*')"`
}

type splByClause struct {
	Fields []string `parser:"'by' @Ident ( ',' @Ident )*"`
}

type splFuncCall struct {
	Name string   `parser:"@Ident '('"`
	Args []string `parser:"( @(Ident | String | Number | '*') ( ',' @(Ident | String | Number | '*') )* )? ')'"`
}

func buildSPLParser() (*participle.Parser[splQuery], error) {
	return participle.Build[splQuery](
		participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
			{Name: "Number", Pattern: `\d+(\.\d+)?`},
			{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
			{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
			{Name: "Operators", Pattern: `!=|>=|<=|[|=<>(),*\-+/]`},
			{Name: "whitespace", Pattern: `\s+`},
		})),
		participle.UseLookahead(2),
	)
}

// NewSPL creates the Splunk SPL syntax validator.
func NewSPL() Validator {
	return newGrammarValidator(LanguageSPL, buildSPLParser)
}
