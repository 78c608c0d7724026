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
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// newTestFS builds an in-memory environments directory from the given
// file name to content mapping.
func newTestFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func TestFileSource_Load(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		env     string
		want    map[string]any
		wantErr error
	}{
		{
			name:  "loads json record",
			files: map[string]string{"prod.json": `{"environment": "prod", "browser": "chrome", "timeout": 10}`},
			env:   "prod",
			want:  map[string]any{"environment": "prod", "browser": "chrome", "timeout": 10},
		},
		{
			name:  "loads yaml record",
			files: map[string]string{"staging.yaml": "environment: staging\nheadless: true\n"},
			env:   "staging",
			want:  map[string]any{"environment": "staging", "headless": true},
		},
		{
			name:    "no record for name",
			files:   map[string]string{"prod.json": `{}`},
			env:     "nosuchenv",
			wantErr: ErrSourceNotFound,
		},
		{
			name:    "name matched case sensitively",
			files:   map[string]string{"prod.json": `{}`},
			env:     "PROD",
			wantErr: ErrSourceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFileSourceFS(newTestFS(t, tt.files))
			got, err := s.Load(context.Background(), tt.env)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileSource_Load_MalformedRecord(t *testing.T) {
	s := NewFileSourceFS(newTestFS(t, map[string]string{
		"broken.json": `{"environment": "broken", `,
	}))

	_, err := s.Load(context.Background(), "broken")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "broken", pe.Name)
}

func TestFileSource_Load_EmptyName(t *testing.T) {
	s := NewFileSourceFS(newTestFS(t, nil))
	_, err := s.Load(context.Background(), "")
	require.Error(t, err)
}

func TestFileSource_NotFoundListsAvailable(t *testing.T) {
	s := NewFileSourceFS(newTestFS(t, map[string]string{
		"dev.json":     `{}`,
		"staging.json": `{}`,
	}))

	_, err := s.Load(context.Background(), "qa")
	require.ErrorIs(t, err, ErrSourceNotFound)
	require.Contains(t, err.Error(), "dev")
	require.Contains(t, err.Error(), "staging")
}

func TestFileSource_List(t *testing.T) {
	s := NewFileSourceFS(newTestFS(t, map[string]string{
		"prod.json":    `{}`,
		"dev.yaml":     "{}",
		"staging.yml":  "{}",
		"notes.txt":    "not a record",
		"preprod.json": `{}`,
	}))

	got := s.List()
	want := []string{"dev", "preprod", "prod", "staging"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestFileSource_HasNoSideEffects(t *testing.T) {
	fs := newTestFS(t, map[string]string{"prod.json": `{"browser": "edge"}`})
	s := NewFileSourceFS(fs)

	first, err := s.Load(context.Background(), "prod")
	require.NoError(t, err)

	// a loader must not cache; a changed file is visible on the next read
	require.NoError(t, util.WriteFile(fs, "prod.json", []byte(`{"browser": "firefox"}`), 0o644))
	second, err := s.Load(context.Background(), "prod")
	require.NoError(t, err)

	require.Equal(t, "edge", first["browser"])
	require.Equal(t, "firefox", second["browser"])
	require.False(t, errors.Is(err, ErrSourceNotFound))
}
