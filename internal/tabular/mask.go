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

import "slices"

// MaskValue is the fixed redaction constant substituted for every value of a
// masked field, regardless of the original type.
const MaskValue = "***"

// MaskBatch overwrites every cell of each named column with MaskValue. All
// other columns are left untouched. A field absent from the batch columns
// aborts the whole batch with a FieldNotFoundError.
func MaskBatch(b *Batch, fields []string) error {
	for _, field := range fields {
		idx := slices.Index(b.Columns, field)
		if idx == -1 {
			return &FieldNotFoundError{Field: field}
		}
		for _, row := range b.Rows {
			row[idx] = MaskValue
		}
	}
	return nil
}
