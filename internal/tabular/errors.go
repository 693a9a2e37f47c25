// Copyright 2025 Veil
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tabular

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports an invalid pipeline setting such as a
	// non-positive chunk size.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrUnsupportedFormat reports a format outside csv, json and parquet.
	// It is raised at both the source and the target selection points.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrMalformedInput reports content that cannot be parsed as the
	// claimed format.
	ErrMalformedInput = errors.New("malformed input")
)

// FieldNotFoundError is returned when a requested field is absent from the
// data's columns.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found in the data", e.Field)
}
