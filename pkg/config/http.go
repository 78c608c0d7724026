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
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skylark-qa/skylark/internal/helper"
	"github.com/skylark-qa/skylark/internal/httpclient"
	"github.com/skylark-qa/skylark/internal/logger"
)

var _ Source = (*HttpSource)(nil)

// HttpSource loads environment records from a remote endpoint, one record per
// environment at <url>/<name>.json. Transient transport failures are retried
// with exponential backoff; a missing record or a malformed body is
// deterministic and fails immediately.
type HttpSource struct {
	cfg HttpSourceConfig
}

// NewHttpSource creates a new http source.
func NewHttpSource(cfg HttpSourceConfig) *HttpSource {
	return &HttpSource{cfg: cfg}
}

// Load gets the record for the named environment from the remote endpoint.
func (s *HttpSource) Load(ctx context.Context, name string) (map[string]any, error) {
	if name == "" {
		return nil, errors.New("environment name must not be empty")
	}

	var record map[string]any
	var terminal error
	getRecordRetry := helper.Retry(func(ctx context.Context) error {
		rec, err := s.fetch(ctx, name)
		if err != nil {
			var pe *ParseError
			if errors.Is(err, ErrSourceNotFound) || errors.As(err, &pe) {
				// deterministic, retrying cannot help
				terminal = err
				return nil
			}
			return err
		}
		record = rec
		return nil
	}, s.cfg.RetryCfg)

	if err := getRecordRetry(ctx); err != nil {
		return nil, fmt.Errorf("failed to get environment record %q: %w", name, err)
	}
	if terminal != nil {
		return nil, terminal
	}
	return record, nil
}

// fetch performs a single request for the record of the named environment.
func (s *HttpSource) fetch(ctx context.Context, name string) (map[string]any, error) {
	url := fmt.Sprintf("%s/%s.json", strings.TrimSuffix(s.cfg.Url, "/"), name)
	log := logger.FromContext(ctx).With("url", url)

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		log.Error("Could not create http GET request", "error", err.Error())
		return nil, err
	}
	if s.cfg.Token != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", s.cfg.Token))
	}

	res, err := httpclient.FromContext(ctx).Do(req) //nolint:bodyclose
	if err != nil {
		log.Error("Http get request failed", "error", err.Error())
		return nil, err
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			log.Error("Failed to close response body", "error", cerr.Error())
		}
	}(res.Body)

	if res.StatusCode == http.StatusNotFound {
		log.Error("No record for environment", "environment", name)
		return nil, fmt.Errorf("environment %q: %w", name, ErrSourceNotFound)
	}
	if res.StatusCode != http.StatusOK {
		log.Error("Http get request failed", "status", res.Status)
		return nil, fmt.Errorf("request failed, status is %s", res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Error("Could not read response body", "error", err.Error())
		return nil, err
	}

	var record map[string]any
	if err := yaml.Unmarshal(body, &record); err != nil {
		log.Error("Could not unmarshal response", "error", err.Error())
		return nil, &ParseError{Name: name, Err: err}
	}
	return record, nil
}
