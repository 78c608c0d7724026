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

package helper

import "github.com/mitchellh/mapstructure"

// Decode takes an input of any type and attempts to decode it into a value of
// type T, leveraging the mapstructure package. It is used to turn the loosely
// typed key/value records read from configuration sources into the strongly
// typed structs the rest of the framework works with.
//
// WeaklyTypedInput is enabled so that e.g. a numeric value persisted as a
// string still decodes into an int field. Structurally broken input (a string
// where a mapping is expected, text in a boolean field) still fails and the
// error is returned to the caller.
func Decode[T any](input any) (T, error) {
	var result T
	config := &mapstructure.DecoderConfig{
		Metadata:         nil,
		WeaklyTypedInput: true,
		Result:           &result,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return result, err
	}

	if err := decoder.Decode(input); err != nil {
		return result, err
	}

	return result, nil
}
