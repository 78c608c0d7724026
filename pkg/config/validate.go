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
	"net/url"
	"slices"
)

// Validate checks every invariant of a fully populated draft configuration
// and returns it as the validated, from here on immutable, configuration. On
// failure the returned ValidationError lists every violated field, not just
// the first one found.
//
// Validate is a pure function: no I/O, no side effects. Whether
// page_load_timeout should exceed timeout is deliberately not checked here;
// the resolver logs a warning for that combination instead.
func Validate(draft EnvironmentConfig) (*EnvironmentConfig, error) {
	var violations []FieldError

	if draft.Environment == "" {
		violations = append(violations, FieldError{Field: "environment", Value: draft.Environment, Reason: "must not be empty"})
	}
	if !isAbsoluteURL(draft.BaseURL) {
		violations = append(violations, FieldError{Field: "base_url", Value: draft.BaseURL, Reason: "must be an absolute url with scheme and host"})
	}
	if draft.Timeout <= 0 {
		violations = append(violations, FieldError{Field: "timeout", Value: draft.Timeout, Reason: "must be positive"})
	}
	if draft.ImplicitWait <= 0 {
		violations = append(violations, FieldError{Field: "implicit_wait", Value: draft.ImplicitWait, Reason: "must be positive"})
	}
	if draft.PageLoadTimeout <= 0 {
		violations = append(violations, FieldError{Field: "page_load_timeout", Value: draft.PageLoadTimeout, Reason: "must be positive"})
	}
	if !slices.Contains(SupportedBrowsers, draft.Browser) {
		violations = append(violations, FieldError{Field: "browser", Value: draft.Browser, Reason: "unsupported browser"})
	}
	if draft.WindowSize.Width <= 0 {
		violations = append(violations, FieldError{Field: "window_size.width", Value: draft.WindowSize.Width, Reason: "must be positive"})
	}
	if draft.WindowSize.Height <= 0 {
		violations = append(violations, FieldError{Field: "window_size.height", Value: draft.WindowSize.Height, Reason: "must be positive"})
	}
	if draft.ScreenshotsDir == "" {
		violations = append(violations, FieldError{Field: "screenshots_dir", Value: draft.ScreenshotsDir, Reason: "must not be empty"})
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	validated := draft
	return &validated, nil
}

// isAbsoluteURL reports whether s parses as a url with scheme and host.
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
