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

package notify

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		AccountSID: "ACdeadbeefdeadbeefdeadbeefdeadbeef",
		AuthToken:  "0123456789abcdef0123456789abcdef",
		FromNumber: DefaultFromNumber,
		ToNumber:   "whatsapp:+491700000000",
		Enabled:    true,
		MaxRetries: 2,
		Timeout:    time.Second,
	}
}

const testApiUrl = "https://api.twilio.com/2010-04-01/Accounts/ACdeadbeefdeadbeefdeadbeefdeadbeef/Messages.json"

func TestTwilioNotifier_Notify(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	cfg := testConfig()
	httpmock.RegisterResponder(http.MethodPost, testApiUrl,
		func(req *http.Request) (*http.Response, error) {
			sid, token, ok := req.BasicAuth()
			require.True(t, ok)
			require.Equal(t, cfg.AccountSID, sid)
			require.Equal(t, cfg.AuthToken, token)

			require.NoError(t, req.ParseForm())
			require.Equal(t, cfg.ToNumber, req.PostForm.Get("To"))
			require.Equal(t, "*Skylark Test Report*", req.PostForm.Get("Body"))
			return httpmock.NewStringResponse(http.StatusCreated, `{}`), nil
		})

	n := NewTwilioNotifier(cfg)
	require.NoError(t, n.Notify(context.Background(), "*Skylark Test Report*"))
	require.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestTwilioNotifier_Notify_RetriesServerErrors(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	calls := 0
	httpmock.RegisterResponder(http.MethodPost, testApiUrl,
		func(*http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return httpmock.NewStringResponse(http.StatusBadGateway, ""), nil
			}
			return httpmock.NewStringResponse(http.StatusCreated, `{}`), nil
		})

	cfg := testConfig()
	cfg.MaxRetries = 2

	n := NewTwilioNotifier(cfg)
	require.NoError(t, n.Notify(context.Background(), "hello"))
	require.Equal(t, 2, calls)
}

func TestTwilioNotifier_Notify_RejectedIsNotRetried(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testApiUrl,
		httpmock.NewStringResponder(http.StatusUnauthorized, `{"message": "authenticate"}`))

	n := NewTwilioNotifier(testConfig())
	err := n.Notify(context.Background(), "hello")
	require.ErrorContains(t, err, "rejected with status 401")
	require.Equal(t, 1, httpmock.GetTotalCallCount())
}
