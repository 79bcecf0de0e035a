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

// Package syntax provides grammar-based syntax validators for the supported
// query languages. Each language owns an independent Participle grammar;
// validators share no state with each other.
package syntax

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"

	"github.com/apache/skywalking-queryforge/pkg/logger"
	"github.com/apache/skywalking-queryforge/pkg/validation"
)

// Supported language display names. They appear verbatim in error messages.
const (
	LanguagePromQL = "PromQL"
	LanguageLogQL  = "LogQL"
	LanguageSPL    = "Splunk SPL"
	LanguageCypher = "Cypher"
)

// contextSpan is the number of bytes rendered on each side of a syntax
// error location.
const contextSpan = 80

// Validator checks one query language for syntactic well-formedness.
type Validator interface {
	Language() string
	Validate(query string) validation.Result
}

// grammarValidator wraps a Participle parser for one language. The parser
// is built lazily on first use; a broken grammar surfaces from the first
// Validate call rather than from the constructor.
type grammarValidator[G any] struct {
	parser   *participle.Parser[G]
	build    func() (*participle.Parser[G], error)
	l        *logger.Logger
	buildErr error
	language string
	once     sync.Once
}

func newGrammarValidator[G any](language string, build func() (*participle.Parser[G], error)) *grammarValidator[G] {
	return &grammarValidator[G]{
		language: language,
		build:    build,
		l:        logger.GetLogger("syntax", strings.ToLower(strings.ReplaceAll(language, " ", "-"))),
	}
}

func (v *grammarValidator[G]) Language() string {
	return v.language
}

func (v *grammarValidator[G]) Validate(query string) validation.Result {
	if strings.TrimSpace(query) == "" {
		return validation.SyntaxFailure(v.language+" query cannot be empty", 0, 0, "")
	}
	v.once.Do(func() {
		v.parser, v.buildErr = v.build()
	})
	if v.buildErr != nil {
		return validation.SyntaxFailure(fmt.Sprintf("%s parser error: %v", v.language, v.buildErr), 0, 0, "")
	}
	if _, err := v.parser.ParseString("", query); err != nil {
		return v.failure(query, err)
	}
	return validation.SyntaxSuccess()
}

func (v *grammarValidator[G]) failure(query string, err error) validation.Result {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		msg := fmt.Sprintf("Invalid %s syntax", v.language)
		if pos.Line > 0 && pos.Column > 0 {
			msg = fmt.Sprintf("%s at line %d, column %d", msg, pos.Line, pos.Column)
		}
		v.l.Debug().Err(err).Msg("parse error")
		return validation.SyntaxFailure(msg, pos.Line, pos.Column, renderContext(query, pos.Offset))
	}
	v.l.Debug().Err(err).Msg("parser error")
	return validation.SyntaxFailure(fmt.Sprintf("%s parser error: %v", v.language, err), 0, 0, "")
}

// renderContext returns a one-line excerpt around offset with a caret
// marking the failure point, best-effort.
func renderContext(query string, offset int) string {
	if offset < 0 || offset > len(query) {
		offset = len(query)
	}
	start := offset - contextSpan
	if start < 0 {
		start = 0
	}
	end := offset + contextSpan
	if end > len(query) {
		end = len(query)
	}
	before := query[start:offset]
	after := query[offset:end]
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	if i := strings.IndexByte(after, '\n'); i >= 0 {
		after = after[:i]
	}
	return before + after + "\n" + strings.Repeat(" ", len(before)) + "^"
}
