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
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skylark-qa/skylark/internal/helper"
	"github.com/skylark-qa/skylark/internal/logger"
	"github.com/skylark-qa/skylark/pkg/config"
	"github.com/skylark-qa/skylark/pkg/preflight"
)

// NewCmdResolve creates a new resolve command
func NewCmdResolve() *cobra.Command {
	flagMapping := config.FlagsNameMapping{
		Env:      "env",
		Browser:  "browser",
		Headless: "headless",

		SourceType:           "sourceType",
		SourceDir:            "sourceDir",
		SourceHttpUrl:        "sourceHttpUrl",
		SourceHttpToken:      "sourceHttpToken",
		SourceHttpTimeout:    "sourceHttpTimeout",
		SourceHttpRetryCount: "sourceHttpRetryCount",
		SourceHttpRetryDelay: "sourceHttpRetryDelay",
	}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve an environment configuration",
		Long: `Resolve the effective configuration of an environment the same way a
test session would: defaults, the environment record, environment variables
and the flags of this invocation, later sources winning. The resolved
configuration is printed with credentials redacted.`,
		RunE: resolve(&flagMapping),
	}

	NewFlag(flagMapping.Env, "env").StringP("e").Bind(cmd, "",
		"environment to resolve. Falls back to TEST_ENV, then to the default environment")
	NewFlag(flagMapping.Browser, "browser").StringP("b").Bind(cmd, "",
		"browser to use, beats the record and environment variables")
	NewFlag(flagMapping.Headless, "headless").Bool().Bind(cmd, false,
		"run the browser headless, beats the record and environment variables")

	NewFlag(flagMapping.SourceType, "source").String().Bind(cmd, "file",
		"defines the source type environment records are loaded from. The fallback is the file source")
	NewFlag(flagMapping.SourceDir, "config-dir").String().Bind(cmd, "environments",
		"file source: the directory holding the environment records")
	NewFlag(flagMapping.SourceHttpUrl, "http-url").String().Bind(cmd, "",
		"http source: the url where to get the remote environment records")
	NewFlag(flagMapping.SourceHttpToken, "http-token").String().Bind(cmd, "",
		"http source: bearer token to authenticate the http endpoint")
	NewFlag(flagMapping.SourceHttpTimeout, "http-timeout").Int().Bind(cmd, 30,
		"http source: the timeout for the http request in seconds")
	NewFlag(flagMapping.SourceHttpRetryCount, "http-retry-count").Int().Bind(cmd, 3,
		"http source: amount of retries trying to load the record")
	NewFlag(flagMapping.SourceHttpRetryDelay, "http-retry-delay").Int().Bind(cmd, 1,
		"http source: the initial delay between retries in seconds")

	cmd.PersistentFlags().Bool("check", false,
		"probe the resolved base url before printing the configuration")

	return cmd
}

// resolve is the entry point of the resolve command
func resolve(fm *config.FlagsNameMapping) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		log := logger.NewLogger()
		ctx := logger.IntoContext(cmd.Context(), log)

		source, err := config.NewSource(sourceConfig(fm))
		if err != nil {
			return err
		}

		// Only flags the caller actually set become invocation-time
		// overrides; a flag left at its default defines nothing.
		overrides := &config.Draft{}
		if cmd.PersistentFlags().Changed("browser") {
			b := viper.GetString(fm.Browser)
			overrides.Browser = &b
		}
		if cmd.PersistentFlags().Changed("headless") {
			h := viper.GetBool(fm.Headless)
			overrides.Headless = &h
		}

		cfg, err := config.NewResolver(source).Resolve(ctx, viper.GetString(fm.Env), overrides)
		if err != nil {
			return err
		}

		if check, _ := cmd.PersistentFlags().GetBool("check"); check {
			if err := preflight.Run(ctx, cfg); err != nil {
				return err
			}
		}

		printConfig(cmd, cfg)
		return nil
	}
}

// sourceConfig builds the source configuration from the bound flags
func sourceConfig(fm *config.FlagsNameMapping) config.SourceConfig {
	return config.SourceConfig{
		Type: viper.GetString(fm.SourceType),
		File: config.FileSourceConfig{
			Dir: viper.GetString(fm.SourceDir),
		},
		Http: config.HttpSourceConfig{
			Url:     viper.GetString(fm.SourceHttpUrl),
			Token:   viper.GetString(fm.SourceHttpToken),
			Timeout: time.Duration(viper.GetInt(fm.SourceHttpTimeout)) * time.Second,
			RetryCfg: helper.RetryConfig{
				Count: viper.GetInt(fm.SourceHttpRetryCount),
				Delay: time.Duration(viper.GetInt(fm.SourceHttpRetryDelay)) * time.Second,
			},
		},
	}
}

func printConfig(cmd *cobra.Command, cfg *config.EnvironmentConfig) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Environment:       %s\n", cfg.Environment)
	fmt.Fprintf(out, "Base URL:          %s\n", cfg.BaseURL)
	fmt.Fprintf(out, "Username:          %s\n", config.Redact(cfg.Username))
	fmt.Fprintf(out, "Password:          ***\n")
	fmt.Fprintf(out, "Browser:           %s\n", cfg.Browser)
	fmt.Fprintf(out, "Headless:          %t\n", cfg.Headless)
	fmt.Fprintf(out, "Timeout:           %ds\n", cfg.Timeout)
	fmt.Fprintf(out, "Implicit wait:     %ds\n", cfg.ImplicitWait)
	fmt.Fprintf(out, "Page load timeout: %ds\n", cfg.PageLoadTimeout)
	fmt.Fprintf(out, "Window size:       %s\n", cfg.WindowSize.String())
	fmt.Fprintf(out, "Screenshots dir:   %s\n", cfg.ScreenshotsDir)
}
