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

// Batch is a bounded, rectangular slice of tabular data processed as one
// unit. Columns keeps the source order; every row has exactly one cell per
// column. Cells are untyped text: the CSV intermediate form is text, and
// scalar typing is re-inferred only at format conversion time.
type Batch struct {
	Columns []string
	Rows    [][]string
}

// BatchReader yields row batches in file order. Readers perform a single
// forward pass and are not restartable. Next returns io.EOF when the source
// is exhausted; every batch holds the reader's chunk size of rows except
// possibly the last one.
type BatchReader interface {
	Next() (*Batch, error)
}
