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

// Package notify reports run outcomes over WhatsApp: it resolves and
// validates the Twilio settings, renders the message text and delivers it
// through the Twilio messages API. Other channels plug in behind the
// Notifier interface.
package notify

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/skylark-qa/skylark/pkg/config"
)

// The environment variables notification credentials are read from. They are
// never persisted in environment records; CI injects them as secrets.
const (
	EnvVarAccountSID = "TWILIO_ACCOUNT_SID"
	EnvVarAuthToken  = "TWILIO_AUTH_TOKEN"
	EnvVarFrom       = "TWILIO_WHATSAPP_FROM"
	EnvVarTo         = "TWILIO_WHATSAPP_TO"
)

// DefaultFromNumber is the Twilio WhatsApp sandbox sender.
const DefaultFromNumber = "whatsapp:+14155238886"

// Config holds the resolved notification settings for one run.
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	ToNumber   string
	Enabled    bool
	MaxRetries int
	Timeout    time.Duration
}

// NewConfigFromEnv resolves the notification settings from the process
// environment. Credentials have no compiled-in defaults; a run without them
// simply reports itself as not configured.
func NewConfigFromEnv(lookup func(string) (string, bool)) Config {
	cfg := Config{
		FromNumber: DefaultFromNumber,
		Enabled:    true,
		MaxRetries: 3,
		Timeout:    30 * time.Second,
	}
	if v, ok := lookup(EnvVarAccountSID); ok {
		cfg.AccountSID = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvVarAuthToken); ok {
		cfg.AuthToken = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvVarFrom); ok && strings.TrimSpace(v) != "" {
		cfg.FromNumber = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvVarTo); ok {
		cfg.ToNumber = strings.TrimSpace(v)
	}
	return cfg
}

// IsConfigured reports whether every credential required for delivery is
// present.
func (c Config) IsConfigured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != "" && c.ToNumber != ""
}

// Validate checks the credential formats. Like configuration validation, all
// problems are reported together.
func (c Config) Validate() error {
	var violations []config.FieldError

	if !strings.HasPrefix(c.AccountSID, "AC") {
		violations = append(violations, config.FieldError{Field: "account_sid", Value: redactSID(c.AccountSID), Reason: "must start with AC"})
	}
	if len(c.AuthToken) < 32 {
		violations = append(violations, config.FieldError{Field: "auth_token", Value: "***", Reason: "must be at least 32 characters"})
	}
	if !strings.HasPrefix(c.FromNumber, "whatsapp:+") {
		violations = append(violations, config.FieldError{Field: "from_number", Value: c.FromNumber, Reason: "must look like whatsapp:+1234567890"})
	}
	if !strings.HasPrefix(c.ToNumber, "whatsapp:+") {
		violations = append(violations, config.FieldError{Field: "to_number", Value: c.ToNumber, Reason: "must look like whatsapp:+1234567890"})
	}

	if len(violations) > 0 {
		return &config.ValidationError{Violations: violations}
	}
	return nil
}

// LogValue implements slog.LogValuer; credentials are redacted.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("account_sid", redactSID(c.AccountSID)),
		slog.String("auth_token", "***"),
		slog.String("from_number", c.FromNumber),
		slog.String("to_number", c.ToNumber),
		slog.Bool("enabled", c.Enabled),
		slog.Bool("configured", c.IsConfigured()),
	)
}

func redactSID(sid string) string {
	if len(sid) <= 10 {
		return "***"
	}
	return sid[:10] + "..."
}

// Notifier delivers a rendered run notification. Implementations wrap a
// concrete delivery channel; the framework only hands them the message.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
