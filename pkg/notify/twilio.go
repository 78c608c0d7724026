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
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skylark-qa/skylark/internal/helper"
	"github.com/skylark-qa/skylark/internal/httpclient"
	"github.com/skylark-qa/skylark/internal/logger"
)

// twilioApiUrl is the message endpoint, parameterized with the account SID.
const twilioApiUrl = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

var _ Notifier = (*TwilioNotifier)(nil)

// TwilioNotifier delivers messages over the Twilio WhatsApp API.
type TwilioNotifier struct {
	cfg Config
}

// NewTwilioNotifier creates a notifier for the given settings. The settings
// are expected to be validated by the caller.
func NewTwilioNotifier(cfg Config) *TwilioNotifier {
	return &TwilioNotifier{cfg: cfg}
}

// Notify sends the message, retrying transient failures with an exponential
// backoff. A rejected request (a 4xx answer) is not retried, bad credentials
// do not get better on the second attempt.
func (n *TwilioNotifier) Notify(ctx context.Context, message string) error {
	var terminal error
	err := helper.Retry(func(ctx context.Context) error {
		err := n.send(ctx, message)
		if _, ok := err.(*rejectedError); ok {
			terminal = err
			return nil
		}
		return err
	}, helper.RetryConfig{
		Count: n.cfg.MaxRetries,
		Delay: time.Second,
	})(ctx)
	if terminal != nil {
		return terminal
	}
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	return nil
}

// rejectedError is an answer from the API that retrying cannot fix.
type rejectedError struct {
	status int
	body   string
}

func (e *rejectedError) Error() string {
	return fmt.Sprintf("notification rejected with status %d: %s", e.status, e.body)
}

func (n *TwilioNotifier) send(ctx context.Context, message string) error {
	log := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	form := url.Values{}
	form.Set("From", n.cfg.FromNumber)
	form.Set("To", n.cfg.ToNumber)
	form.Set("Body", message)

	endpoint := fmt.Sprintf(twilioApiUrl, n.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(n.cfg.AccountSID, n.cfg.AuthToken)

	res, err := httpclient.FromContext(ctx).Do(req)
	if err != nil {
		log.Warn("Failed to reach notification API", "error", err)
		return fmt.Errorf("failed to reach notification api: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		log.Debug("Notification delivered", "to", n.cfg.ToNumber)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	if res.StatusCode >= 400 && res.StatusCode < 500 {
		return &rejectedError{status: res.StatusCode, body: string(body)}
	}
	return fmt.Errorf("notification api answered status %d", res.StatusCode)
}
