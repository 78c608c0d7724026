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
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/skylark-qa/skylark/internal/logger"
)

var _ Source = (*FileSource)(nil)

// recordExtensions are the accepted environment record file extensions, in
// lookup order. JSON is a YAML subset, so one codec parses both.
var recordExtensions = []string{".json", ".yaml", ".yml"}

// FileSource loads environment records from a directory holding one file per
// environment, named after it. The environment name is matched
// case-sensitively against the file name.
type FileSource struct {
	fs billy.Filesystem
}

// NewFileSource creates a file source rooted at the configured directory.
func NewFileSource(cfg FileSourceConfig) *FileSource {
	dir := cfg.Dir
	if dir == "" {
		dir = "environments"
	}
	return &FileSource{fs: osfs.New(dir)}
}

// NewFileSourceFS creates a file source on the provided filesystem. Used by
// tests to run against an in-memory filesystem.
func NewFileSourceFS(fs billy.Filesystem) *FileSource {
	return &FileSource{fs: fs}
}

// Load reads and parses the record for the named environment. The returned
// mapping holds the fields exactly as persisted; nothing is defaulted here.
func (s *FileSource) Load(ctx context.Context, name string) (map[string]any, error) {
	log := logger.FromContext(ctx)
	if name == "" {
		return nil, errors.New("environment name must not be empty")
	}

	b, err := s.read(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Error("No record for environment", "environment", name)
			return nil, fmt.Errorf("environment %q: %w; available environments: %v", name, ErrSourceNotFound, s.List())
		}
		return nil, fmt.Errorf("failed to read environment record %q: %w", name, err)
	}

	var record map[string]any
	if err := yaml.Unmarshal(b, &record); err != nil {
		log.Error("Failed to parse environment record", "environment", name, "error", err)
		return nil, &ParseError{Name: name, Err: err}
	}
	return record, nil
}

// read returns the raw record content, trying each accepted extension.
func (s *FileSource) read(name string) ([]byte, error) {
	for _, ext := range recordExtensions {
		b, err := util.ReadFile(s.fs, name+ext)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return nil, os.ErrNotExist
}

// List returns the names of all environments a record exists for, sorted.
func (s *FileSource) List() []string {
	entries, err := s.fs.ReadDir(".")
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, ext := range recordExtensions {
			if strings.HasSuffix(e.Name(), ext) {
				names = append(names, strings.TrimSuffix(e.Name(), ext))
				break
			}
		}
	}
	sort.Strings(names)
	return names
}
