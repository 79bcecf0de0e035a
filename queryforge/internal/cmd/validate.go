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
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/apache/skywalking-queryforge/pkg/syntax"
	"github.com/apache/skywalking-queryforge/pkg/validation"
)

func newValidateCmd() *cobra.Command {
	var language string
	var query string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the syntax of a query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := validatorFor(language)
			if err != nil {
				return err
			}
			result := v.Validate(query)
			printResult(cmd, result)
			if !result.Valid {
				return errors.New("validation failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "promql", "query language: promql, logql, spl or cypher")
	cmd.Flags().StringVarP(&query, "query", "q", "", "the query to validate")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func validatorFor(language string) (syntax.Validator, error) {
	switch language {
	case "promql":
		return syntax.NewPromQL(), nil
	case "logql":
		return syntax.NewLogQL(), nil
	case "spl":
		return syntax.NewSPL(), nil
	case "cypher":
		return syntax.NewCypher(), nil
	default:
		return nil, errors.Errorf("unsupported language %q", language)
	}
}

func printResult(cmd *cobra.Command, r validation.Result) {
	if r.Valid {
		cmd.Println("valid")
		return
	}
	cmd.Println("invalid:", r.Err)
	if r.Line > 0 {
		cmd.Println(fmt.Sprintf("at line %d, column %d", r.Line, r.Column))
	}
	if r.Context != "" {
		cmd.Println(r.Context)
	}
}
