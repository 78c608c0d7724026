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

package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylark-qa/skylark/pkg/config"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.EnvironmentConfig)
		assert func(t *testing.T, caps Capabilities)
	}{
		{
			name:   "chrome defaults",
			mutate: func(cfg *config.EnvironmentConfig) {},
			assert: func(t *testing.T, caps Capabilities) {
				assert.Equal(t, config.BrowserChrome, caps.Name)
				assert.False(t, caps.Headless)
				assert.Contains(t, caps.Args, "--no-sandbox")
				assert.Contains(t, caps.Args, "--window-size=1920,1080")
				assert.NotContains(t, caps.Args, "--headless")
			},
		},
		{
			name: "chrome headless",
			mutate: func(cfg *config.EnvironmentConfig) {
				cfg.Headless = true
			},
			assert: func(t *testing.T, caps Capabilities) {
				assert.Contains(t, caps.Args, "--headless")
			},
		},
		{
			name: "edge gets chromium args",
			mutate: func(cfg *config.EnvironmentConfig) {
				cfg.Browser = config.BrowserEdge
			},
			assert: func(t *testing.T, caps Capabilities) {
				assert.Contains(t, caps.Args, "--disable-gpu")
			},
		},
		{
			name: "firefox headless",
			mutate: func(cfg *config.EnvironmentConfig) {
				cfg.Browser = config.BrowserFirefox
				cfg.Headless = true
			},
			assert: func(t *testing.T, caps Capabilities) {
				assert.Equal(t, []string{"-headless"}, caps.Args)
			},
		},
		{
			name: "safari gets no args",
			mutate: func(cfg *config.EnvironmentConfig) {
				cfg.Browser = config.BrowserSafari
			},
			assert: func(t *testing.T, caps Capabilities) {
				assert.Empty(t, caps.Args)
			},
		},
		{
			name: "timeouts become durations",
			mutate: func(cfg *config.EnvironmentConfig) {
				cfg.ImplicitWait = 5
				cfg.PageLoadTimeout = 45
			},
			assert: func(t *testing.T, caps Capabilities) {
				assert.Equal(t, 5*time.Second, caps.ImplicitWait)
				assert.Equal(t, 45*time.Second, caps.PageLoadTimeout)
			},
		},
		{
			name: "custom window size",
			mutate: func(cfg *config.EnvironmentConfig) {
				cfg.WindowSize = config.WindowSize{Width: 1280, Height: 720}
			},
			assert: func(t *testing.T, caps Capabilities) {
				assert.Contains(t, caps.Args, "--window-size=1280,720")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(&cfg)

			validated, err := config.Validate(cfg)
			require.NoError(t, err)

			tt.assert(t, FromConfig(validated))
		})
	}
}
