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
	"fmt"
	"strings"
)

// Format is one of the tabular file formats the pipeline understands.
type Format string

const (
	FormatCsv     Format = "csv"
	FormatJson    Format = "json"
	FormatParquet Format = "parquet"
)

var supportedFormats = map[Format]struct{}{
	FormatCsv:     {},
	FormatJson:    {},
	FormatParquet: {},
}

// ParseFormat normalizes and validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

func (f Format) Validate() error {
	if _, ok := supportedFormats[f]; !ok {
		return fmt.Errorf("%w: %q is not supported, expected one of csv, json, parquet", ErrUnsupportedFormat, string(f))
	}
	return nil
}

func (f Format) String() string {
	return string(f)
}
