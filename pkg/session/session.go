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

// Package session orchestrates one test run: resolve the environment
// configuration, verify the target answers, hand the driver provider its
// capabilities and report the outcome to the notification channel. Test
// discovery and scheduling belong to the host test runner, not to this
// package.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/skylark-qa/skylark/internal/logger"
	"github.com/skylark-qa/skylark/pkg/browser"
	"github.com/skylark-qa/skylark/pkg/config"
	"github.com/skylark-qa/skylark/pkg/notify"
	"github.com/skylark-qa/skylark/pkg/preflight"
)

// Session creates runs against a resolved environment. The same session, and
// with it the same configuration cache, serves every run of a process.
type Session struct {
	resolver  *config.Resolver
	provider  browser.Provider
	notifier  notify.Notifier
	notifyCfg notify.Config
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier attaches a notification channel. Without one, finished runs
// are only logged.
func WithNotifier(n notify.Notifier, cfg notify.Config) Option {
	return func(s *Session) {
		s.notifier = n
		s.notifyCfg = cfg
	}
}

// New creates a session using the given resolver and driver provider.
func New(resolver *config.Resolver, provider browser.Provider, opts ...Option) *Session {
	s := &Session{
		resolver: resolver,
		provider: provider,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run is one started test run: a validated configuration and a live browser.
type Run struct {
	Config  *config.EnvironmentConfig
	Driver  browser.Driver
	session *Session
	started time.Time
}

// Start resolves the named environment, probes the target and starts a
// browser navigated to the base url. Overrides are the invocation-time
// layer, they beat every other configuration source.
func (s *Session) Start(ctx context.Context, env string, overrides *config.Draft) (*Run, error) {
	log := logger.FromContext(ctx)

	cfg, err := s.resolver.Resolve(ctx, env, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve environment configuration: %w", err)
	}

	if err := preflight.Run(ctx, cfg); err != nil {
		return nil, err
	}

	drv, err := s.provider.Provide(ctx, browser.FromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", cfg.Browser, err)
	}

	if err := drv.Navigate(ctx, cfg.BaseURL); err != nil {
		_ = drv.Quit(ctx)
		return nil, fmt.Errorf("failed to open %s: %w", cfg.BaseURL, err)
	}

	log.Info("Session started", "config", cfg)
	return &Run{
		Config:  cfg,
		Driver:  drv,
		session: s,
		started: time.Now(),
	}, nil
}

// Finish quits the browser and, when notifications are enabled and
// configured, reports the summary to the channel. The summary's environment
// and duration are filled in from the run when left empty.
func (r *Run) Finish(ctx context.Context, summary notify.RunSummary) error {
	log := logger.FromContext(ctx)

	if err := r.Driver.Quit(ctx); err != nil {
		log.Warn("Failed to quit browser", "error", err)
	}

	if summary.Environment == "" {
		summary.Environment = r.Config.Environment
	}
	if summary.Duration == 0 {
		summary.Duration = time.Since(r.started)
	}
	if summary.FinishedAt.IsZero() {
		summary.FinishedAt = time.Now()
	}

	s := r.session
	if s.notifier == nil || !s.notifyCfg.Enabled || !s.notifyCfg.IsConfigured() {
		log.Info("Run finished, notifications disabled or not configured", "status", string(summary.Status))
		return nil
	}
	if err := s.notifyCfg.Validate(); err != nil {
		return fmt.Errorf("notification settings invalid: %w", err)
	}

	if err := s.notifier.Notify(ctx, notify.FormatMessage(summary)); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	log.Info("Run finished and reported", "status", string(summary.Status))
	return nil
}
