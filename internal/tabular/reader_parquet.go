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
	"io"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

type parquetReader struct {
	groups    []parquet.RowGroup
	columns   []string
	rows      parquet.Rows
	buf       []parquet.Row
	chunkSize int
}

// NewParquetReader iterates the file's row groups with chunkSize-bounded
// read buffers and adapts each native batch into the common row-batch
// shape. The binary content is consumed directly; no pre-flattening to CSV
// happens upstream.
func NewParquetReader(r io.ReaderAt, size int64, chunkSize int) (BatchReader, error) {
	file, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}
	fields := file.Schema().Fields()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name()
	}
	return &parquetReader{
		groups:    file.RowGroups(),
		columns:   columns,
		buf:       make([]parquet.Row, chunkSize),
		chunkSize: chunkSize,
	}, nil
}

func (p *parquetReader) Next() (*Batch, error) {
	rows := make([][]string, 0, p.chunkSize)
	for len(rows) < p.chunkSize {
		if p.rows == nil {
			if len(p.groups) == 0 {
				break
			}
			p.rows = p.groups[0].Rows()
			p.groups = p.groups[1:]
		}
		n, err := p.rows.ReadRows(p.buf[:p.chunkSize-len(rows)])
		for _, row := range p.buf[:n] {
			rows = append(rows, p.rowToCells(row))
		}
		if err == io.EOF {
			if closeErr := p.rows.Close(); closeErr != nil {
				return nil, fmt.Errorf("closing parquet row group: %w", closeErr)
			}
			p.rows = nil
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}
	}
	if len(rows) == 0 {
		return nil, io.EOF
	}
	return &Batch{Columns: p.columns, Rows: rows}, nil
}

func (p *parquetReader) rowToCells(row parquet.Row) []string {
	cells := make([]string, len(p.columns))
	for _, value := range row {
		if value.Column() < 0 || value.Column() >= len(cells) {
			continue
		}
		cells[value.Column()] = formatParquetValue(value)
	}
	return cells
}

func formatParquetValue(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
