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

package config

import (
	"context"
	"fmt"
	"os"

	"github.com/skylark-qa/skylark/internal/helper"
	"github.com/skylark-qa/skylark/internal/logger"
)

// Resolver is the query interface the rest of the framework consumes
// configuration through. It owns the source and the session-scope store;
// downstream components never see raw source or parse errors, only a
// resolved configuration or the resolution error surfaced here.
type Resolver struct {
	source Source
	store  *Store
}

// NewResolver creates a resolver reading environment records from the given
// source, with an empty session cache.
func NewResolver(source Source) *Resolver {
	return &Resolver{
		source: source,
		store:  NewStore(),
	}
}

// Resolve returns the validated configuration for the named environment.
// An empty name falls back to the TEST_ENV environment variable, then to the
// default environment. The first call for a name performs the full
// source -> overrides -> merge -> validate resolution; later calls return
// the cached instance without re-reading any source.
func (r *Resolver) Resolve(ctx context.Context, name string, cli *Draft) (*EnvironmentConfig, error) {
	if name == "" {
		name = os.Getenv(EnvVarEnvironment)
	}
	if name == "" {
		name = DefaultEnvironment
	}
	return r.store.Get(ctx, name, func(ctx context.Context, name string) (*EnvironmentConfig, error) {
		return r.resolve(ctx, name, cli)
	})
}

// resolve performs one full resolution for the named environment.
func (r *Resolver) resolve(ctx context.Context, name string, cli *Draft) (*EnvironmentConfig, error) {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx).With("environment", name)

	record, err := r.source.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	fileDraft, err := helper.Decode[Draft](record)
	if err != nil {
		log.Error("Environment record does not decode", "error", err)
		return nil, &ParseError{Name: name, Err: err}
	}

	envDraft, err := EnvOverrides()
	if err != nil {
		log.Error("Invalid override", "error", err)
		return nil, err
	}

	draft := Merge(cli, envDraft, &fileDraft)
	// the name resolution ran under is the environment's identity, whatever
	// the record calls itself
	draft.Environment = name

	cfg, err := Validate(draft)
	if err != nil {
		log.Error("Configuration failed validation", "error", err)
		return nil, fmt.Errorf("environment %q: %w", name, err)
	}

	if cfg.PageLoadTimeout < cfg.Timeout {
		log.Warn("page_load_timeout is below timeout, page waits may give up before element waits do",
			"page_load_timeout", cfg.PageLoadTimeout, "timeout", cfg.Timeout)
	}

	log.Info("Resolved environment configuration", "config", cfg)
	return cfg, nil
}
