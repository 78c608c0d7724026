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

// Package config resolves the environment configuration a test session runs
// against. Values are merged from four precedence layers, invocation-time
// overrides > environment variables > persisted environment record >
// compiled-in defaults, validated as a whole and cached per environment name
// for the lifetime of the process.
package config

import (
	"fmt"
	"log/slog"
)

// Supported browsers. Any other value is a validation error, never a silent
// fallback to the default.
const (
	BrowserChrome  = "chrome"
	BrowserFirefox = "firefox"
	BrowserEdge    = "edge"
	BrowserSafari  = "safari"
)

// SupportedBrowsers is the set of browser names a resolved configuration may
// carry.
var SupportedBrowsers = []string{BrowserChrome, BrowserFirefox, BrowserEdge, BrowserSafari}

// Compiled-in defaults. Every configuration field has one, so a merged draft
// is always fully populated.
const (
	DefaultEnvironment     = "prod"
	DefaultBaseURL         = "https://www.saucedemo.com/"
	DefaultUsername        = "standard_user"
	DefaultPassword        = "secret_sauce"
	DefaultTimeout         = 10
	DefaultBrowser         = BrowserChrome
	DefaultHeadless        = false
	DefaultWindowWidth     = 1920
	DefaultWindowHeight    = 1080
	DefaultImplicitWait    = 3
	DefaultPageLoadTimeout = 20
	DefaultScreenshotsDir  = "screenshots"
)

// WindowSize is the browser window dimension in pixels.
type WindowSize struct {
	Width  int
	Height int
}

func (w WindowSize) String() string {
	return fmt.Sprintf("%dx%d", w.Width, w.Height)
}

// EnvironmentConfig is the resolved configuration for one test run. A value
// handed out by the resolver has passed validation and is immutable from then
// on; it is shared read-only across test workers without synchronization.
//
// Timeout, ImplicitWait and PageLoadTimeout are in seconds. Username and
// Password are secrets and are never logged in full, see LogValue.
type EnvironmentConfig struct {
	Environment     string
	BaseURL         string
	Username        string
	Password        string
	Timeout         int
	Browser         string
	Headless        bool
	WindowSize      WindowSize
	ImplicitWait    int
	PageLoadTimeout int
	ScreenshotsDir  string
}

// LogValue implements slog.LogValuer so a configuration can be logged without
// leaking credentials.
func (c EnvironmentConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("environment", c.Environment),
		slog.String("base_url", c.BaseURL),
		slog.String("username", Redact(c.Username)),
		slog.String("password", "***"),
		slog.Int("timeout", c.Timeout),
		slog.String("browser", c.Browser),
		slog.Bool("headless", c.Headless),
		slog.String("window_size", c.WindowSize.String()),
		slog.Int("implicit_wait", c.ImplicitWait),
		slog.Int("page_load_timeout", c.PageLoadTimeout),
		slog.String("screenshots_dir", c.ScreenshotsDir),
	)
}

// Redact shortens a credential to its first two characters so it can appear
// in logs and CLI output without being recoverable.
func Redact(s string) string {
	if len(s) <= 2 {
		return "***"
	}
	return s[:2] + "***"
}

// Defaults returns the compiled-in default configuration, the lowest
// precedence layer of the merge.
func Defaults() EnvironmentConfig {
	return EnvironmentConfig{
		Environment:     DefaultEnvironment,
		BaseURL:         DefaultBaseURL,
		Username:        DefaultUsername,
		Password:        DefaultPassword,
		Timeout:         DefaultTimeout,
		Browser:         DefaultBrowser,
		Headless:        DefaultHeadless,
		WindowSize:      WindowSize{Width: DefaultWindowWidth, Height: DefaultWindowHeight},
		ImplicitWait:    DefaultImplicitWait,
		PageLoadTimeout: DefaultPageLoadTimeout,
		ScreenshotsDir:  DefaultScreenshotsDir,
	}
}

// WindowSizeDraft mirrors WindowSize with optional fields.
type WindowSizeDraft struct {
	Width  *int `mapstructure:"width"`
	Height *int `mapstructure:"height"`
}

// Draft is the intermediate configuration record of a single precedence
// layer. Every field is optional; a nil field means the layer does not define
// it. Drafts only exist inside a resolution call and are discarded after the
// merge, they are never handed out in place of a validated
// EnvironmentConfig.
type Draft struct {
	Environment     *string          `mapstructure:"environment"`
	BaseURL         *string          `mapstructure:"base_url"`
	Username        *string          `mapstructure:"username"`
	Password        *string          `mapstructure:"password"`
	Timeout         *int             `mapstructure:"timeout"`
	Browser         *string          `mapstructure:"browser"`
	Headless        *bool            `mapstructure:"headless"`
	WindowSize      *WindowSizeDraft `mapstructure:"window_size"`
	ImplicitWait    *int             `mapstructure:"implicit_wait"`
	PageLoadTimeout *int             `mapstructure:"page_load_timeout"`
	ScreenshotsDir  *string          `mapstructure:"screenshots_dir"`
}
