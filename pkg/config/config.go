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

// Package config layers a config file and environment variables under
// command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// envPrefix namespaces the environment variables bound to flags.
const envPrefix = "QUERYFORGE"

// Load fills unset flags in fs from a config file named name (searched
// in the working directory) and from QUERYFORGE_* environment variables.
// Flags set explicitly on the command line always win.
func Load(name string, fs *pflag.FlagSet) error {
	v := viper.New()
	v.SetConfigName(name)
	v.AddConfigPath(".")

	// A missing config file is fine; a malformed one is not.
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return BindFlags(fs, v, envPrefix)
}

// BindFlags binds each flag to its viper key and env-var equivalent.
// Dashes become underscores in the variable name, so --bulk-threshold
// reads QUERYFORGE_BULK_THRESHOLD.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper, envPrefix string) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			err = multierr.Append(err, v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)))
		}
		if !f.Changed && v.IsSet(f.Name) {
			err = multierr.Append(err, fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))))
		}
	})
	return err
}
