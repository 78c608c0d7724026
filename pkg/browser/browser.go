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

// Package browser translates a resolved environment configuration into the
// capabilities a driver provider needs to start a browser. The provider
// itself is an external collaborator; no automation is implemented here.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/skylark-qa/skylark/pkg/config"
)

// Capabilities describe how the driver provider must start a browser for one
// test session.
type Capabilities struct {
	Name            string
	Headless        bool
	WindowSize      config.WindowSize
	ImplicitWait    time.Duration
	PageLoadTimeout time.Duration
	Args            []string
}

// FromConfig builds the capabilities for a validated configuration. Timeouts
// are converted from the configuration's seconds to durations; chromium-based
// browsers get the argument list a CI container needs.
func FromConfig(cfg *config.EnvironmentConfig) Capabilities {
	caps := Capabilities{
		Name:            cfg.Browser,
		Headless:        cfg.Headless,
		WindowSize:      cfg.WindowSize,
		ImplicitWait:    time.Duration(cfg.ImplicitWait) * time.Second,
		PageLoadTimeout: time.Duration(cfg.PageLoadTimeout) * time.Second,
	}

	switch cfg.Browser {
	case config.BrowserChrome, config.BrowserEdge:
		caps.Args = chromiumArgs(cfg)
	case config.BrowserFirefox:
		if cfg.Headless {
			caps.Args = []string{"-headless"}
		}
	}
	return caps
}

func chromiumArgs(cfg *config.EnvironmentConfig) []string {
	args := []string{
		"--no-sandbox",
		"--disable-dev-shm-usage",
		"--disable-gpu",
		fmt.Sprintf("--window-size=%d,%d", cfg.WindowSize.Width, cfg.WindowSize.Height),
	}
	if cfg.Headless {
		args = append(args, "--headless")
	}
	return args
}

// Driver is the handle to a running browser, supplied by a Provider.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	Screenshot(ctx context.Context) ([]byte, error)
	Quit(ctx context.Context) error
}

// Provider supplies a driver for the given capabilities. Implementations
// wrap a concrete automation backend (a local webdriver, a grid, a remote
// provider).
type Provider interface {
	Provide(ctx context.Context, caps Capabilities) (Driver, error)
}
