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

// Package preflight verifies the application under test is reachable before
// a session spends time starting browsers. A run against a dead base url
// fails here, once, instead of once per test.
package preflight

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skylark-qa/skylark/internal/helper"
	"github.com/skylark-qa/skylark/internal/httpclient"
	"github.com/skylark-qa/skylark/internal/logger"
	"github.com/skylark-qa/skylark/pkg/config"
)

// DefaultRetry is the retry configuration for the reachability probe.
var DefaultRetry = helper.RetryConfig{
	Count: 3,
	Delay: time.Second,
}

// Run probes the base url of the resolved configuration with a single GET,
// retrying transient failures with exponential backoff. The configuration's
// timeout bounds each attempt.
func Run(ctx context.Context, cfg *config.EnvironmentConfig) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx).With("base_url", cfg.BaseURL)

	probe := helper.Retry(func(ctx context.Context) error {
		return fetch(ctx, cfg)
	}, DefaultRetry)

	if err := probe(ctx); err != nil {
		log.Error("Target is not reachable", "error", err)
		return fmt.Errorf("preflight for environment %q failed: %w", cfg.Environment, err)
	}
	log.Info("Target is reachable")
	return nil
}

func fetch(ctx context.Context, cfg *config.EnvironmentConfig) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.BaseURL, http.NoBody)
	if err != nil {
		return err
	}

	res, err := httpclient.FromContext(ctx).Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	// any page served is good enough, the target only has to answer
	if res.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("target answered with status %s", res.Status)
	}
	return nil
}
