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

// Package pipeline chains syntax, schema and semantic validation with
// short-circuit semantics: the first failing stage produces the final
// result and later stages never run.
package pipeline

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"

	"github.com/apache/skywalking-queryforge/pkg/logger"
	"github.com/apache/skywalking-queryforge/pkg/schema"
	"github.com/apache/skywalking-queryforge/pkg/semantic"
	"github.com/apache/skywalking-queryforge/pkg/syntax"
	"github.com/apache/skywalking-queryforge/pkg/validation"
)

// Config holds the per-stage enable flags and the schema bulk threshold.
// It is read once at construction and never mutated during validation.
type Config struct {
	EnableSyntax   bool
	EnableSchema   bool
	EnableSemantic bool
	BulkThreshold  int
}

// DefaultConfig enables syntax and schema validation with the default
// bulk threshold; semantic validation is opt-in.
func DefaultConfig() Config {
	return Config{
		EnableSyntax:  true,
		EnableSchema:  true,
		BulkThreshold: schema.DefaultBulkFetchThreshold,
	}
}

// FlagSet returns the flags binding this config.
func (c *Config) FlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("validation", pflag.ContinueOnError)
	fs.BoolVar(&c.EnableSyntax, "enable-syntax", c.EnableSyntax, "run the syntax validation stage")
	fs.BoolVar(&c.EnableSchema, "enable-schema", c.EnableSchema, "run the schema validation stage")
	fs.BoolVar(&c.EnableSemantic, "enable-semantic", c.EnableSemantic, "run the semantic validation stage")
	fs.IntVar(&c.BulkThreshold, "bulk-threshold", c.BulkThreshold,
		"candidate count at which schema validation fetches the namespace in bulk")
	return fs
}

// Validate reports every invalid config field at once.
func (c Config) Validate() error {
	var err error
	if c.BulkThreshold < 1 {
		err = multierr.Append(err, errors.New("bulk-threshold must be at least 1"))
	}
	return err
}

// Pipeline runs the configured validation stages in order. A nil stage
// validator disables that stage regardless of config.
type Pipeline struct {
	syntax   syntax.Validator
	schema   *schema.Validator
	semantic semantic.Validator
	l        *logger.Logger
	cfg      Config
}

// New creates a Pipeline. Any validator may be nil; its stage is then
// skipped.
func New(cfg Config, syn syntax.Validator, sch *schema.Validator, sem semantic.Validator) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:      cfg,
		syntax:   syn,
		schema:   sch,
		semantic: sem,
		l:        logger.GetLogger("pipeline"),
	}, nil
}

// Run validates query for namespace. intent may be nil, in which case
// the semantic stage is skipped. The returned result is exactly the one
// produced by the failing (or last executed) stage; if nothing ran, a
// generic success.
func (p *Pipeline) Run(namespace, query string, intent any) validation.Result {
	ran := false
	if p.cfg.EnableSyntax && p.syntax != nil {
		ran = true
		if r := p.syntax.Validate(query); !r.Valid {
			p.l.Info().Str("stage", r.Stage.String()).Str("error", r.Err).Msg("validation stopped")
			return r
		}
	}
	if p.cfg.EnableSchema && p.schema != nil {
		ran = true
		if r := p.schema.Validate(namespace, query); !r.Valid {
			p.l.Info().Str("stage", r.Stage.String()).Str("error", r.Err).Msg("validation stopped")
			return r
		}
	}
	if p.cfg.EnableSemantic && p.semantic != nil && intent != nil {
		ran = true
		verdict, err := p.semantic.Validate(intent, query)
		if err != nil {
			p.l.Warn().Err(err).Msg("semantic validator failed")
			return validation.SemanticResult(false, false, false, "", err.Error())
		}
		r := validation.SemanticResult(verdict.Valid, verdict.IntentMatch, verdict.PartialMatch,
			verdict.Explanation, verdict.Err)
		if !r.Valid {
			p.l.Info().Str("stage", r.Stage.String()).Str("error", r.Err).Msg("validation stopped")
			return r
		}
		return r
	}
	if !ran {
		p.l.Debug().Msg("no validation stages enabled")
	}
	return validation.GenericSuccess()
}
