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
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/cast"
	"github.com/tidwall/sjson"
)

type scalarKind int

const (
	kindInt scalarKind = iota
	kindFloat
	kindBool
	kindString
)

// Convert re-encodes a complete CSV-form buffer into JSON lines or parquet.
// This step is not streaming: the whole table is materialized in memory,
// which is a documented limitation for large non-CSV targets. The CSV
// intermediate is untyped text, so scalar types are re-inferred per column
// (int64, then float64, then bool, falling back to string).
func Convert(csvData []byte, target Format) (*bytes.Buffer, error) {
	if target != FormatJson && target != FormatParquet {
		return nil, fmt.Errorf("%w: %q, only json and parquet targets are allowed", ErrUnsupportedFormat, string(target))
	}

	records, err := csv.NewReader(bytes.NewReader(csvData)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}
	if len(records) == 0 {
		return &bytes.Buffer{}, nil
	}
	columns, rows := records[0], records[1:]
	kinds := inferColumnKinds(columns, rows)

	if target == FormatJson {
		return encodeJsonLines(columns, rows, kinds)
	}
	return encodeParquet(columns, rows, kinds)
}

func inferColumnKinds(columns []string, rows [][]string) []scalarKind {
	kinds := make([]scalarKind, len(columns))
	for idx := range columns {
		kinds[idx] = inferKind(rows, idx)
	}
	return kinds
}

func inferKind(rows [][]string, idx int) scalarKind {
candidates:
	for _, kind := range []scalarKind{kindInt, kindFloat, kindBool} {
		for _, row := range rows {
			if !cellParsesAs(row[idx], kind) {
				continue candidates
			}
		}
		return kind
	}
	return kindString
}

func cellParsesAs(cell string, kind scalarKind) bool {
	var err error
	switch kind {
	case kindInt:
		_, err = cast.ToInt64E(cell)
	case kindFloat:
		_, err = cast.ToFloat64E(cell)
	case kindBool:
		_, err = cast.ToBoolE(cell)
	}
	return err == nil
}

// cellValue returns the typed scalar for a cell; inference guarantees every
// cell of the column parses as the column kind.
func cellValue(cell string, kind scalarKind) any {
	switch kind {
	case kindInt:
		return cast.ToInt64(cell)
	case kindFloat:
		return cast.ToFloat64(cell)
	case kindBool:
		return cast.ToBool(cell)
	default:
		return cell
	}
}

func encodeJsonLines(columns []string, rows [][]string, kinds []scalarKind) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	for _, row := range rows {
		line := []byte("{}")
		var err error
		for idx, col := range columns {
			line, err = sjson.SetBytes(line, escapeJsonPath(col), cellValue(row[idx], kinds[idx]))
			if err != nil {
				return nil, fmt.Errorf("encoding json line: %w", err)
			}
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return &buf, nil
}

// escapeJsonPath neutralizes sjson path syntax so a column name is always
// treated as a single literal key.
func escapeJsonPath(col string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`)
	return r.Replace(col)
}

func encodeParquet(columns []string, rows [][]string, kinds []scalarKind) (*bytes.Buffer, error) {
	group := parquet.Group{}
	for idx, col := range columns {
		group[col] = parquetNode(kinds[idx])
	}
	schema := parquet.NewSchema("table", group)

	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		record := make(map[string]any, len(columns))
		for idx, col := range columns {
			record[col] = cellValue(row[idx], kinds[idx])
		}
		out[i] = record
	}

	var buf bytes.Buffer
	w := parquet.NewGenericWriter[map[string]any](&buf, schema)
	if len(out) > 0 {
		if _, err := w.Write(out); err != nil {
			return nil, fmt.Errorf("writing parquet rows: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing parquet writer: %w", err)
	}
	return &buf, nil
}

func parquetNode(kind scalarKind) parquet.Node {
	switch kind {
	case kindInt:
		return parquet.Int(64)
	case kindFloat:
		return parquet.Leaf(parquet.DoubleType)
	case kindBool:
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}
