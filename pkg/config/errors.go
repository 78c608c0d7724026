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
	"errors"
	"fmt"
	"strings"
)

// ErrSourceNotFound is returned when no environment record exists for the
// requested environment name. It is distinct from a validation failure: the
// session cannot start at all.
var ErrSourceNotFound = errors.New("environment record not found")

// ParseError is returned when a persisted environment record is not
// well-formed structured data, or its fields cannot be decoded into the
// draft configuration.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("environment record %q is malformed: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// OverrideTypeError is returned when an override value cannot be converted
// to the type of the configuration field it targets. Origin names the
// precedence layer the faulty value came from.
type OverrideTypeError struct {
	Field  string
	Value  string
	Origin string
}

func (e *OverrideTypeError) Error() string {
	return fmt.Sprintf("%s override for %q: cannot convert %q", e.Origin, e.Field, e.Value)
}

// FieldError describes a single violated invariant of a draft configuration.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s=%v: %s", e.Field, e.Value, e.Reason)
}

// ValidationError aggregates every invariant violation found in a draft
// configuration, so a single fix-and-rerun resolves all issues instead of
// surfacing them one at a time.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		reasons = append(reasons, v.String())
	}
	return fmt.Sprintf("invalid configuration: %s", strings.Join(reasons, "; "))
}
