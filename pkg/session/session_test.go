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

package session

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"github.com/skylark-qa/skylark/pkg/browser"
	"github.com/skylark-qa/skylark/pkg/config"
	"github.com/skylark-qa/skylark/pkg/notify"
)

type fakeDriver struct {
	navigated string
	quit      bool
}

func (d *fakeDriver) Navigate(_ context.Context, url string) error {
	d.navigated = url
	return nil
}

func (d *fakeDriver) Screenshot(context.Context) ([]byte, error) {
	return nil, nil
}

func (d *fakeDriver) Quit(context.Context) error {
	d.quit = true
	return nil
}

type fakeProvider struct {
	caps   browser.Capabilities
	driver *fakeDriver
	err    error
}

func (p *fakeProvider) Provide(_ context.Context, caps browser.Capabilities) (browser.Driver, error) {
	p.caps = caps
	if p.err != nil {
		return nil, p.err
	}
	p.driver = &fakeDriver{}
	return p.driver, nil
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (n *fakeNotifier) Notify(_ context.Context, message string) error {
	n.messages = append(n.messages, message)
	return n.err
}

func newTestResolver(t *testing.T, files map[string]string) *config.Resolver {
	t.Helper()
	fs := memfs.New()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}
	return config.NewResolver(config.NewFileSourceFS(fs))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{config.EnvVarEnvironment, config.EnvVarBrowser, config.EnvVarHeadless, config.EnvVarTimeout, config.EnvVarBaseURL, config.EnvVarCI} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func notifyConfig() notify.Config {
	return notify.Config{
		AccountSID: "ACdeadbeefdeadbeefdeadbeefdeadbeef",
		AuthToken:  "0123456789abcdef0123456789abcdef",
		FromNumber: notify.DefaultFromNumber,
		ToNumber:   "whatsapp:+491700000000",
		Enabled:    true,
	}
}

func TestSession_Start(t *testing.T) {
	clearEnv(t)
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	httpmock.RegisterResponder(http.MethodGet, "https://app.test/",
		httpmock.NewStringResponder(http.StatusOK, ""))

	resolver := newTestResolver(t, map[string]string{
		"staging.json": `{"environment": "staging", "base_url": "https://app.test/", "browser": "firefox"}`,
	})
	provider := &fakeProvider{}
	s := New(resolver, provider)

	run, err := s.Start(context.Background(), "staging", &config.Draft{Headless: boolPtr(true)})
	require.NoError(t, err)

	require.Equal(t, config.BrowserFirefox, provider.caps.Name)
	require.True(t, provider.caps.Headless)
	require.Equal(t, "https://app.test/", provider.driver.navigated)
	require.Equal(t, "staging", run.Config.Environment)
}

func TestSession_Start_UnknownEnvironment(t *testing.T) {
	clearEnv(t)
	resolver := newTestResolver(t, map[string]string{"prod.json": `{}`})
	s := New(resolver, &fakeProvider{})

	_, err := s.Start(context.Background(), "nosuchenv", nil)
	require.ErrorIs(t, err, config.ErrSourceNotFound)
}

func TestSession_Start_ProviderFailure(t *testing.T) {
	clearEnv(t)
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	httpmock.RegisterResponder(http.MethodGet, "https://app.test/",
		httpmock.NewStringResponder(http.StatusOK, ""))

	resolver := newTestResolver(t, map[string]string{
		"staging.json": `{"base_url": "https://app.test/"}`,
	})
	s := New(resolver, &fakeProvider{err: errors.New("no chromedriver")})

	_, err := s.Start(context.Background(), "staging", nil)
	require.ErrorContains(t, err, "no chromedriver")
}

func TestRun_Finish_Notifies(t *testing.T) {
	clearEnv(t)
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	httpmock.RegisterResponder(http.MethodGet, "https://app.test/",
		httpmock.NewStringResponder(http.StatusOK, ""))

	resolver := newTestResolver(t, map[string]string{
		"staging.json": `{"environment": "staging", "base_url": "https://app.test/"}`,
	})
	provider := &fakeProvider{}
	notifier := &fakeNotifier{}
	s := New(resolver, provider, WithNotifier(notifier, notifyConfig()))

	run, err := s.Start(context.Background(), "staging", nil)
	require.NoError(t, err)

	err = run.Finish(context.Background(), notify.RunSummary{
		Status:       notify.StatusPassed,
		Total:        5,
		DashboardURL: "https://reports.test/run/1",
	})
	require.NoError(t, err)

	require.True(t, provider.driver.quit)
	require.Len(t, notifier.messages, 1)
	require.Contains(t, notifier.messages[0], "*Environment:* staging")
	require.Contains(t, notifier.messages[0], "https://reports.test/run/1")
}

func TestRun_Finish_NotificationsNotConfigured(t *testing.T) {
	clearEnv(t)
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	httpmock.RegisterResponder(http.MethodGet, "https://app.test/",
		httpmock.NewStringResponder(http.StatusOK, ""))

	resolver := newTestResolver(t, map[string]string{
		"staging.json": `{"base_url": "https://app.test/"}`,
	})
	provider := &fakeProvider{}
	notifier := &fakeNotifier{}
	// credentials missing: finishing must succeed without a delivery attempt
	s := New(resolver, provider, WithNotifier(notifier, notify.Config{Enabled: true}))

	run, err := s.Start(context.Background(), "staging", nil)
	require.NoError(t, err)

	require.NoError(t, run.Finish(context.Background(), notify.RunSummary{Status: notify.StatusFailed}))
	require.Empty(t, notifier.messages)
	require.True(t, provider.driver.quit)
}

func boolPtr(b bool) *bool {
	return &b
}
