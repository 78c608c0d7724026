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
	"fmt"
	"os"
	"strconv"
	"strings"
)

// The recognized environment variables. Variables outside this set are
// ignored by the override resolver.
const (
	EnvVarEnvironment = "TEST_ENV"
	EnvVarBrowser     = "TEST_BROWSER"
	EnvVarHeadless    = "TEST_HEADLESS"
	EnvVarTimeout     = "TEST_TIMEOUT"
	EnvVarBaseURL     = "TEST_BASE_URL"
	EnvVarCI          = "CI"
)

// EnvVarFields is the fixed table mapping recognized environment variables to
// the configuration field they override. TEST_ENV is not listed: it selects
// the environment name before resolution starts rather than overriding a
// field of the record. CI=true forces headless at this precedence layer.
var EnvVarFields = map[string]string{
	EnvVarBrowser:  "browser",
	EnvVarHeadless: "headless",
	EnvVarTimeout:  "timeout",
	EnvVarBaseURL:  "base_url",
}

const originEnv = "environment variable"

// EnvOverrides reads the recognized environment variables and converts each
// present value to the type of its target field. A value that cannot be
// converted fails the whole resolution with an OverrideTypeError.
func EnvOverrides() (*Draft, error) {
	d := &Draft{}

	if v, ok := os.LookupEnv(EnvVarBrowser); ok {
		b := strings.TrimSpace(v)
		d.Browser = &b
	}
	if v, ok := os.LookupEnv(EnvVarBaseURL); ok {
		u := strings.TrimSpace(v)
		d.BaseURL = &u
	}
	if v, ok := os.LookupEnv(EnvVarHeadless); ok {
		b, err := parseBool(v)
		if err != nil {
			return nil, &OverrideTypeError{Field: "headless", Value: v, Origin: originEnv}
		}
		d.Headless = &b
	}
	if v, ok := os.LookupEnv(EnvVarTimeout); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, &OverrideTypeError{Field: "timeout", Value: v, Origin: originEnv}
		}
		d.Timeout = &n
	}

	// CI pipelines have no display; force headless. An explicit TEST_HEADLESS
	// loses against CI within this layer, invocation-time overrides still win.
	if v, ok := os.LookupEnv(EnvVarCI); ok {
		if ci, err := parseBool(v); err == nil && ci {
			headless := true
			d.Headless = &headless
		}
	}

	return d, nil
}

// parseBool converts the accepted boolean forms, case-insensitive
// true/false/1/0. Anything else is an error, a typo like "ture" must not
// silently become false.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}
