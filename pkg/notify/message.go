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
	"fmt"
	"strings"
	"time"
)

// Status is the outcome of a finished test session.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// RunSummary is what a finished session reports to the notification channel.
type RunSummary struct {
	Environment  string
	Status       Status
	Total        int
	Failed       int
	Duration     time.Duration
	DashboardURL string
	FinishedAt   time.Time
}

// FormatMessage renders the WhatsApp notification text for a finished run.
// WhatsApp renders *bold* markers, hence the asterisks.
func FormatMessage(s RunSummary) string {
	var b strings.Builder

	switch s.Status {
	case StatusPassed:
		b.WriteString("*UI tests passed*\n")
	default:
		b.WriteString("*UI tests FAILED*\n")
	}

	fmt.Fprintf(&b, "*Environment:* %s\n", s.Environment)
	fmt.Fprintf(&b, "*Result:* %d/%d passed\n", s.Total-s.Failed, s.Total)
	if s.Duration > 0 {
		fmt.Fprintf(&b, "*Duration:* %s\n", s.Duration.Round(time.Second))
	}
	if s.DashboardURL != "" {
		fmt.Fprintf(&b, "*Dashboard:* %s\n", s.DashboardURL)
	}
	if !s.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "*Finished:* %s\n", s.FinishedAt.Format("2006-01-02 15:04:05"))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
