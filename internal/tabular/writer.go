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
	"encoding/csv"
	"fmt"
	"io"
)

// ChunkWriter appends row batches to the output in CSV wire form. Appends
// are strictly ordered; the writer never seeks backward.
type ChunkWriter struct {
	w *csv.Writer
}

func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{w: csv.NewWriter(w)}
}

// Write serializes a batch as delimited text. The column-name header line
// is emitted iff isFirst is true.
func (cw *ChunkWriter) Write(b *Batch, isFirst bool) error {
	if isFirst {
		if err := cw.w.Write(b.Columns); err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}
	}
	for _, row := range b.Rows {
		if err := cw.w.Write(row); err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}
	cw.w.Flush()
	return cw.w.Error()
}
