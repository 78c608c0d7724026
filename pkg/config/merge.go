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

// Merge combines the given draft layers in descending precedence: for each
// field the first layer defining it wins, and any field no layer defines
// comes from the compiled-in defaults. Nil layers are skipped. The result is
// a fully populated draft configuration that has not been validated yet;
// malformed values are left for the validator so every problem is reported
// together.
func Merge(layers ...*Draft) EnvironmentConfig {
	cfg := Defaults()
	// lowest precedence first, higher layers overwrite
	for i := len(layers) - 1; i >= 0; i-- {
		apply(&cfg, layers[i])
	}
	return cfg
}

func apply(cfg *EnvironmentConfig, d *Draft) {
	if d == nil {
		return
	}
	if d.Environment != nil {
		cfg.Environment = *d.Environment
	}
	if d.BaseURL != nil {
		cfg.BaseURL = *d.BaseURL
	}
	if d.Username != nil {
		cfg.Username = *d.Username
	}
	if d.Password != nil {
		cfg.Password = *d.Password
	}
	if d.Timeout != nil {
		cfg.Timeout = *d.Timeout
	}
	if d.Browser != nil {
		cfg.Browser = *d.Browser
	}
	if d.Headless != nil {
		cfg.Headless = *d.Headless
	}
	if d.WindowSize != nil {
		if d.WindowSize.Width != nil {
			cfg.WindowSize.Width = *d.WindowSize.Width
		}
		if d.WindowSize.Height != nil {
			cfg.WindowSize.Height = *d.WindowSize.Height
		}
	}
	if d.ImplicitWait != nil {
		cfg.ImplicitWait = *d.ImplicitWait
	}
	if d.PageLoadTimeout != nil {
		cfg.PageLoadTimeout = *d.PageLoadTimeout
	}
	if d.ScreenshotsDir != nil {
		cfg.ScreenshotsDir = *d.ScreenshotsDir
	}
}
