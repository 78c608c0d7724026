// skylark
// (C) 2024, The skylark authors
//
// The skylark authors and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
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

	"github.com/spf13/cobra"

	"github.com/skylark-qa/skylark/internal/logger"
	"github.com/skylark-qa/skylark/pkg/config"
)

// NewCmdEnvs creates a new envs command
func NewCmdEnvs() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "envs",
		Short: "List the available environments",
		Long:  `List every environment a record exists for, with the url and browser each one resolves to`,
		RunE:  runEnvs(&dir),
	}

	cmd.PersistentFlags().StringVar(&dir, "config-dir", "environments", "directory holding the environment records")

	return cmd
}

// runEnvs is the entry point of the envs command
func runEnvs(dir *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		log := logger.NewLogger()
		ctx := logger.IntoContext(cmd.Context(), log)

		source := config.NewFileSource(config.FileSourceConfig{Dir: *dir})
		names := source.List()
		if len(names) == 0 {
			return fmt.Errorf("no environment records found in %q", *dir)
		}

		out := cmd.OutOrStdout()
		resolver := config.NewResolver(source)
		for _, name := range names {
			cfg, err := resolver.Resolve(ctx, name, nil)
			if err != nil {
				fmt.Fprintf(out, "%-12s invalid: %v\n", name, err)
				continue
			}
			fmt.Fprintf(out, "%-12s %s (%s)\n", cfg.Environment, cfg.BaseURL, cfg.Browser)
		}
		return nil
	}
}
