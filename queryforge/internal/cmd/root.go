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

// Package cmd implements the queryforge command line tool.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/apache/skywalking-queryforge/pkg/config"
	"github.com/apache/skywalking-queryforge/pkg/logger"
	"github.com/apache/skywalking-queryforge/pkg/version"
)

// NewRoot returns the root command.
func NewRoot() *cobra.Command {
	logging := logger.Logging{}
	cmd := &cobra.Command{
		Use:               "queryforge",
		DisableAutoGenTag: true,
		Version:           version.Build(),
		Short:             "queryforge validates observability queries against grammars and metric schemas",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load("queryforge", cmd.Flags()); err != nil {
				return err
			}
			return logger.Init(logging)
		},
	}
	cmd.PersistentFlags().StringVar(&logging.Env, "logging-env", "prod", "the logging environment: prod or dev")
	cmd.PersistentFlags().StringVar(&logging.Level, "logging-level", "info", "the root logging level")
	cmd.PersistentFlags().StringSliceVar(&logging.Modules, "logging-modules", nil, "modules with a distinct logging level")
	cmd.PersistentFlags().StringSliceVar(&logging.Levels, "logging-levels", nil, "levels of the distinct modules")
	cmd.AddCommand(newValidateCmd(), newCacheKeyCmd())
	return cmd
}
