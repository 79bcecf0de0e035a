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

//nolint:govet // ignore fieldalignment in this file; layout is the Cypher grammar
package syntax

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// cypherQuery is the root of the simplified Cypher grammar: MATCH clauses,
// an optional WHERE, a RETURN, and optional ordering and paging.
type cypherQuery struct {
	Match   []*cypherMatch `parser:"@@+"`
	Where   *cypherWhere   `parser:"@@?"`
	Return  *cypherReturn  `parser:"@@"`
	OrderBy *cypherOrderBy `parser:"@@?"`
	Skip    *string        `parser:"( 'SKIP' @Number )?"`
	Limit   *string        `parser:"( 'LIMIT' @Number )?"`
}

type cypherMatch struct {
	Optional bool             `parser:"@'OPTIONAL'? 'MATCH'"`
	Patterns []*cypherPattern `parser:"@@ ( ',' @@ )*"`
}

type cypherPattern struct {
	Head *cypherNode  `parser:"@@"`
	Tail []*cypherHop `parser:"@@*"`
}

type cypherHop struct {
	Rel  *cypherRel  `parser:"@@"`
	Node *cypherNode `parser:"@@"`
}

type cypherNode struct {
	Var    *string      `parser:"'(' @Ident?"`
	Labels []string     `parser:"( ':' @Ident )*"`
	Props  *cypherProps `parser:"@@? ')'"`
}

type cypherRel struct {
	LeftArrow  bool             `parser:"( @'<-' | '-' )"`
	Detail     *cypherRelDetail `parser:"@@?"`
	RightArrow bool             `parser:"( @'->' | '-' )"`
}

type cypherRelDetail struct {
	Var   *string      `parser:"'[' @Ident?"`
	Types []string     `parser:"( ':' @Ident ( '|' @Ident )* )?"`
	Props *cypherProps `parser:"@@? ']'"`
}

type cypherProps struct {
	Entries []*cypherPropEntry `parser:"'{' ( @@ ( ',' @@ )* )? '}'"`
}

type cypherPropEntry struct {
	Key   string       `parser:"@Ident ':'"`
	Value *cypherValue `parser:"@@"`
}

type cypherValue struct {
	Str  *string `parser:"  @String"`
	Num  *string `parser:"| @Number"`
	Bool *string `parser:"| @('TRUE' | 'FALSE')"`
	Null bool    `parser:"| @'NULL'"`
}

type cypherWhere struct {
	Expr *cypherOrExpr `parser:"'WHERE' @@"`
}

type cypherOrExpr struct {
	Left *cypherAndExpr  `parser:"@@"`
	Rest []*cypherOrTail `parser:"@@*"`
}

type cypherOrTail struct {
	Op    string         `parser:"@'OR'"`
	Right *cypherAndExpr `parser:"@@"`
}

type cypherAndExpr struct {
	Left *cypherCondition `parser:"@@"`
	Rest []*cypherAndTail `parser:"@@*"`
}

type cypherAndTail struct {
	Op    string           `parser:"@'AND'"`
	Right *cypherCondition `parser:"@@"`
}

type cypherCondition struct {
	Not   *cypherCondition  `parser:"  'NOT' @@"`
	Paren *cypherOrExpr     `parser:"| '(' @@ ')'"`
	Cmp   *cypherComparison `parser:"| @@"`
}

type cypherComparison struct {
	Left  *cypherOperand `parser:"@@"`
	Op    string         `parser:"@('=' | '<>' | '<=' | '>=' | '<' | '>')"`
	Right *cypherOperand `parser:"@@"`
}

type cypherOperand struct {
	Func *cypherFunc `parser:"  @@"`
	Prop *cypherPath `parser:"| @@"`
	Str  *string     `parser:"| @String"`
	Num  *string     `parser:"| @Number"`
	Bool *string     `parser:"| @('TRUE' | 'FALSE')"`
}

type cypherFunc struct {
	Name string         `parser:"@Ident"`
	Args *cypherArgList `parser:"'(' @@? ')'"`
}

type cypherArgList struct {
	Star bool             `parser:"  @'*'"`
	Args []*cypherOperand `parser:"| @@ ( ',' @@ )*"`
}

type cypherPath struct {
	Parts []string `parser:"@Ident ( '.' @Ident )*"`
}

type cypherReturn struct {
	Distinct bool              `parser:"'RETURN' @'DISTINCT'?"`
	Body     *cypherReturnBody `parser:"@@"`
}

type cypherReturnBody struct {
	Star  bool             `parser:"  @'*'"`
	Items []*cypherRetItem `parser:"| @@ ( ',' @@ )*"`
}

type cypherRetItem struct {
	Expr  *cypherOperand `parser:"@@"`
	Alias *string        `parser:"( 'AS' @Ident )?"`
}

type cypherOrderBy struct {
	Items []*cypherSortItem `parser:"'ORDER' 'BY' @@ ( ',' @@ )*"`
}

type cypherSortItem struct {
	Expr *cypherPath `parser:"@@"`
	Dir  *string     `parser:"@('ASC' | 'DESC')?"`
}

func buildCypherParser() (*participle.Parser[cypherQuery], error) {
	return participle.Build[cypherQuery](
		participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
			{Name: "Keyword", Pattern: `(?i)\b(OPTIONAL|MATCH|WHERE|RETURN|WITH|ORDER|BY|ASC|DESC|LIMIT|SKIP|AS|AND|OR|NOT|DISTINCT|TRUE|FALSE|NULL)\b`},
			{Name: "Number", Pattern: `\d+(\.\d+)?`},
			{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`},
			{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
			{Name: "Operators", Pattern: `<>|<=|>=|<-|->|[-=<>:,.|(){}\[\]*+/]`},
			{Name: "whitespace", Pattern: `\s+`},
		})),
		participle.CaseInsensitive("Keyword"),
		participle.UseLookahead(2),
	)
}

// NewCypher creates the Cypher syntax validator.
func NewCypher() Validator {
	return newGrammarValidator(LanguageCypher, buildCypherParser)
}
