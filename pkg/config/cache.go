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
	"sync"
)

// Store memoizes validated configurations per environment name for the
// lifetime of a test session. An entry, once stored, is returned unchanged
// for every later call with the same name, even if the underlying record
// changes on disk: a session keeps a fixed environment view so every test in
// the run sees the same configuration.
//
// Entries are never evicted; the key space is bounded by the handful of
// environments a single run touches. A Store is an explicit object rather
// than a package-level singleton so tests can construct isolated instances.
type Store struct {
	mu      sync.Mutex
	entries map[string]*EnvironmentConfig
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries: map[string]*EnvironmentConfig{},
	}
}

// Get returns the cached configuration for the named environment, calling
// resolve on first use. The lock is held across resolve, so concurrent
// callers for the same uncached name cannot race into two divergent
// resolutions: resolution runs at most once per name per process. Resolution
// is a local read plus pure compute, holding the lock that long is cheap.
//
// A failed resolution is not stored; the error is returned as-is.
func (s *Store) Get(ctx context.Context, name string, resolve func(context.Context, string) (*EnvironmentConfig, error)) (*EnvironmentConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg, ok := s.entries[name]; ok {
		return cfg, nil
	}

	cfg, err := resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	s.entries[name] = cfg
	return cfg, nil
}

// Len returns the number of cached environments.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
