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

type csvReader struct {
	r         *csv.Reader
	chunkSize int
	columns   []string
	started   bool
	emitted   bool
	done      bool
}

// NewCSVReader reads delimited text incrementally. The header row is
// consumed once and becomes the column set of every batch; it never appears
// as a data row.
func NewCSVReader(r io.Reader, chunkSize int) BatchReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0
	return &csvReader{r: cr, chunkSize: chunkSize}
}

func (c *csvReader) Next() (*Batch, error) {
	if c.done {
		return nil, io.EOF
	}
	if !c.started {
		header, err := c.r.Read()
		if err == io.EOF {
			c.done = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}
		c.columns = header
		c.started = true
	}

	rows := make([][]string, 0, c.chunkSize)
	for len(rows) < c.chunkSize {
		record, err := c.r.Read()
		if err == io.EOF {
			c.done = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}
		rows = append(rows, record)
	}

	// A header-only file still yields one empty batch so the header is
	// written downstream.
	if len(rows) == 0 && c.emitted {
		return nil, io.EOF
	}
	c.emitted = true
	return &Batch{Columns: c.columns, Rows: rows}, nil
}
